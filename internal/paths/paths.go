package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/tmplorg/internal/errors"
)

// AppName names the per-user configuration directory.
const AppName = "tmplorg"

// Default layout, relative to the project root.
const (
	// DefaultStagingDir holds the flat template files and the index.
	DefaultStagingDir = "tmp"
	// DefaultIndexFile is the template index.
	DefaultIndexFile = "tmp/index"
	// DefaultResourcesDir is the resource store the layout is built into.
	DefaultResourcesDir = "crates/netcli_core/resources"
	// DefaultTemplatesDir is relative to the resources directory.
	DefaultTemplatesDir = "templates"
	// DefaultRegistryFile is relative to the resources directory.
	DefaultRegistryFile = "registry.json"
)

// rootMarkers identify a project root during discovery, checked in order.
var rootMarkers = []string{"Cargo.toml", "go.mod"}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0755) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the per-user configuration directory for tmplorg.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ExpandHome replaces a leading "~" or "~/" in path with the user's home
// directory. Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Resolve returns path made absolute against base. Absolute paths and
// home-relative paths are not joined to base.
func Resolve(base, path string) (string, error) {
	if strings.ContainsRune(path, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

// FindProjectRoot walks up from start to the first directory containing a
// project marker (Cargo.toml or go.mod). It reports false if no ancestor
// has one.
func FindProjectRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		for _, marker := range rootMarkers {
			if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
				return dir, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ProjectRoot returns the project root for the working directory: the
// nearest ancestor with a project marker, or the working directory itself.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "determining working directory")
	}
	if root, ok := FindProjectRoot(wd); ok {
		return root, nil
	}
	return wd, nil
}
