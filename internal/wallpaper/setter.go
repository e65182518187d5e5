// Package wallpaper applies an image file as the desktop background.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/executor"
)

// PathPlaceholder is replaced with the image path in command arguments.
const PathPlaceholder = "{path}"

// DefaultCommandTimeout bounds a single external command invocation.
const DefaultCommandTimeout = 30 * time.Second

// ErrUnsupportedPlatform is returned when no built-in setter exists and no commands are configured.
var ErrUnsupportedPlatform = errors.New("no built-in wallpaper setter for this platform, configure wallpaper.commands")

// Setter applies an image as the desktop wallpaper.
type Setter interface {
	SetWallpaper(path string) error
}

// CommandSetter runs one or more external commands to set the wallpaper.
// Each command is an argv list; "{path}" in any argument is substituted.
type CommandSetter struct {
	exec     executor.Executor
	commands [][]string
	timeout  time.Duration
}

// NewCommandSetter creates a setter running commands in order.
func NewCommandSetter(exec executor.Executor, commands [][]string, timeout time.Duration) *CommandSetter {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &CommandSetter{
		exec:     exec,
		commands: commands,
		timeout:  timeout,
	}
}

// SetWallpaper runs every configured command; the first failure aborts.
func (s *CommandSetter) SetWallpaper(path string) error {
	if len(s.commands) == 0 {
		return errors.New("no wallpaper commands configured")
	}

	for _, argv := range s.commands {
		if len(argv) == 0 {
			continue
		}
		args := make([]string, len(argv)-1)
		for i, a := range argv[1:] {
			args[i] = strings.ReplaceAll(a, PathPlaceholder, path)
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		out, err := s.exec.CombinedOutput(ctx, argv[0], args...)
		cancel()
		if err != nil {
			return fmt.Errorf("%s failed: %w (output: %s)", argv[0], err, strings.TrimSpace(string(out)))
		}

		log.Debug().Str("command", argv[0]).Strs("args", args).Msg("Wallpaper command succeeded")
	}

	return nil
}

// New returns a CommandSetter when commands are given, otherwise the platform default.
func New(commands [][]string, timeout time.Duration) (Setter, error) {
	if len(commands) > 0 {
		return NewCommandSetter(&executor.DefaultExecutor{}, commands, timeout), nil
	}
	return platformDefault(timeout)
}
