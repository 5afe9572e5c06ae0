package completion

import (
	"os"
	"path/filepath"
)

// Entry is one directory listing entry
type Entry struct {
	Name string
	Dir  bool // true for directories and links that resolve to one
}

// FS lists directories for path completion
type FS interface {
	ReadDir(dir string) ([]Entry, error)
	HomeDir() (string, error)
	// RealPath resolves path to an absolute path without symlinks
	RealPath(path string) (string, error)
}

// OSFS implements FS on the local filesystem.
type OSFS struct{}

// ReadDir lists dir. Symlinks are classified by their target.
func (OSFS) ReadDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		e := Entry{Name: de.Name(), Dir: de.IsDir()}
		if de.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(filepath.Join(dir, de.Name())); err == nil {
				e.Dir = fi.IsDir()
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// HomeDir returns the user's home directory
func (OSFS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// RealPath returns the absolute, symlink-free form of path
func (OSFS) RealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
