package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expressgen/expressgen/internal/defs"
)

// resolvePath joins a slash-separated relative path onto root and verifies
// the result stays inside root.
func resolvePath(root, relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	absPath := filepath.Join(absRoot, cleaned)
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrPathTraversal, relPath)
	}
	return absPath, nil
}

// writeFile writes data to relPath under root, replacing any existing file.
// Missing parent folders are created.
func writeFile(root, relPath string, data []byte) error {
	path, err := resolvePath(root, relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(relPath), err)
	}
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	return nil
}

// ensureDir creates relPath under root if needed. It reports whether the
// folder was created.
func ensureDir(root, relPath string) (bool, error) {
	path, err := resolvePath(root, relPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s: %w", relPath, ErrNotADirectory)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", relPath, err)
	}
	if err := os.MkdirAll(path, defs.DirPerm); err != nil {
		return false, fmt.Errorf("mkdir %s: %w", relPath, err)
	}
	return true, nil
}
