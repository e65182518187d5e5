//go:build darwin

package wallpaper

import (
	"time"

	"github.com/dokzlo13/wallslapper/internal/executor"
)

var defaultCommands = [][]string{
	{"osascript", "-e", `tell application "System Events" to tell every desktop to set picture to "` + PathPlaceholder + `"`},
}

func platformDefault(timeout time.Duration) (Setter, error) {
	return NewCommandSetter(&executor.DefaultExecutor{}, defaultCommands, timeout), nil
}
