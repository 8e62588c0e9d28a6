package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrUnsupportedPlatform is returned when no default Downloads folder is known
// for the running operating system.
var ErrUnsupportedPlatform = errors.New("unsupported platform for default output directory")

// DownloadsDir returns the user's Downloads folder for the running platform.
// It is evaluated on every call so environment changes are honoured.
func DownloadsDir() (string, error) {
	return downloadsDirFor(runtime.GOOS, os.Getenv)
}

func downloadsDirFor(goos string, getenv func(string) string) (string, error) {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly":
		home := strings.TrimSpace(getenv("HOME"))
		if home == "" {
			return "", errors.New("resolve downloads directory: HOME is not set")
		}
		return filepath.Join(home, "Downloads"), nil
	case "windows":
		profile := strings.TrimSpace(getenv("USERPROFILE"))
		if profile == "" {
			return "", errors.New("resolve downloads directory: USERPROFILE is not set")
		}
		return strings.TrimRight(profile, `\/`) + `\Downloads`, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}
