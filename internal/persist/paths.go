package persist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
)

// sniffLen is the number of header bytes filetype needs to match any type
const sniffLen = 261

// ResolvePath expands environment variables and a leading ~ in p and
// returns an absolute, cleaned path
func ResolvePath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("resolve path: empty path")
	}
	expanded, err := homedir.Expand(os.ExpandEnv(p))
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	return abs, nil
}

// ResolveOverlayImage turns an overlay image reference of a slot into an
// absolute path. References may use $ENV variables and ~, and relative
// references are resolved against the directory of the group file. The
// file must exist and look like an image.
func ResolveOverlayImage(groupPath, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(os.ExpandEnv(ref))
	if err != nil {
		return "", fmt.Errorf("overlay image %q: %w", ref, err)
	}
	if !filepath.IsAbs(expanded) && groupPath != "" {
		expanded = filepath.Join(filepath.Dir(groupPath), expanded)
	}
	path := filepath.Clean(expanded)

	ok, err := isImage(path)
	if err != nil {
		return "", fmt.Errorf("overlay image %q: %w", ref, err)
	}
	if !ok {
		return "", fmt.Errorf("overlay image %q: %w", ref, ErrNotImage)
	}
	return path, nil
}

func isImage(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.IsImage(head[:n]), nil
}
