package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// NovaDirName is the per-user state directory under $HOME.
const NovaDirName = ".nova"

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// NovaDir returns ~/.nova.
func NovaDir() string {
	return filepath.Join(UserHomeDir(), NovaDirName)
}

// NovaPath joins name onto ~/.nova.
func NovaPath(name string) string {
	return filepath.Join(NovaDir(), name)
}

// ExpandPath resolves a leading ~/ and cleans relative paths.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// EnsurePrivateDir creates dir (and parents) and restricts it to the owner.
func EnsurePrivateDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	// MkdirAll leaves existing directories untouched; tighten them too.
	_ = os.Chmod(dir, 0o700)
	return nil
}
