//go:build linux

package wallpaper

import (
	"time"

	"github.com/dokzlo13/wallslapper/internal/executor"
)

// GNOME keeps separate keys for the light and dark variants.
var defaultCommands = [][]string{
	{"gsettings", "set", "org.gnome.desktop.background", "picture-uri", "file://" + PathPlaceholder},
	{"gsettings", "set", "org.gnome.desktop.background", "picture-uri-dark", "file://" + PathPlaceholder},
}

func platformDefault(timeout time.Duration) (Setter, error) {
	return NewCommandSetter(&executor.DefaultExecutor{}, defaultCommands, timeout), nil
}
