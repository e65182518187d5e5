//go:build windows

package wallpaper

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

// nativeSetter calls SystemParametersInfoW directly.
type nativeSetter struct{}

func (nativeSetter) SetWallpaper(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("invalid wallpaper path: %w", err)
	}

	r, _, callErr := procSystemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendChange,
	)
	if r == 0 {
		return fmt.Errorf("SystemParametersInfoW failed: %w", callErr)
	}
	return nil
}

func platformDefault(_ time.Duration) (Setter, error) {
	if err := procSystemParametersInfoW.Find(); err != nil {
		return nil, fmt.Errorf("user32 unavailable: %w", err)
	}
	return nativeSetter{}, nil
}
