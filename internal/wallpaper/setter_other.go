//go:build !linux && !darwin && !windows

package wallpaper

import "time"

func platformDefault(_ time.Duration) (Setter, error) {
	return nil, ErrUnsupportedPlatform
}
