package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the provided vault directory,
// always using forward slashes.
func VaultRelative(vaultDir, target string) (string, error) {
	base := NormalizePath(vaultDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Within reports whether target is the vault directory itself or lies below it.
func Within(vaultDir, target string) bool {
	rel, err := VaultRelative(vaultDir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// StrictlyWithin is Within minus the vault directory itself.
func StrictlyWithin(vaultDir, target string) bool {
	rel, err := VaultRelative(vaultDir, target)
	if err != nil || rel == "." {
		return false
	}
	return Within(vaultDir, target)
}

// SplitCategory splits a note path into its top-level directory (the category,
// empty for notes directly in the vault), the optional subfolder, and the file name.
func SplitCategory(vaultDir, target string) (category, subfolder, name string, err error) {
	rel, err := VaultRelative(vaultDir, target)
	if err != nil {
		return "", "", "", err
	}

	rel = strings.TrimPrefix(rel, "./")
	if rel == "." || rel == "" {
		return "", "", "", nil
	}

	parts := strings.Split(rel, "/")
	switch len(parts) {
	case 1:
		return "", "", parts[0], nil
	case 2:
		return parts[0], "", parts[1], nil
	default:
		return parts[0], strings.Join(parts[1:len(parts)-1], "/"), parts[len(parts)-1], nil
	}
}

// IsHidden reports whether a directory entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
