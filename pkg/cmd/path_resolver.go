package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/pathutil"
	"github.com/Paintersrp/knot/internal/state"
)

// ResolveVaultPath turns a note argument into an absolute path inside the
// vault. Relative paths are taken from the vault root, or from the category
// named by the command's --category flag when it is set.
func ResolveVaultPath(cmd *cobra.Command, s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	vaultDir := filepath.Clean(s.Config.VaultDir)
	if s.Config.VaultDir == "" {
		return "", fmt.Errorf("vault directory is not configured")
	}
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	var resolved string
	if filepath.IsAbs(arg) {
		resolved = filepath.Clean(arg)
	} else {
		resolved = resolveRelative(vaultDir, categoryFlag(cmd), arg)
	}

	if !pathutil.StrictlyWithin(vaultDir, resolved) {
		return "", fmt.Errorf("%w: %q is not inside %q", handler.ErrOutsideVault, resolved, vaultDir)
	}

	return resolved, nil
}

func resolveRelative(vaultDir, category, arg string) string {
	relPath := filepath.Clean(arg)
	if relPath == "." {
		relPath = ""
	}

	if category == "" || category == constants.RootCategory {
		return filepath.Join(vaultDir, relPath)
	}

	firstSegment := relPath
	if idx := strings.Index(relPath, string(filepath.Separator)); idx != -1 {
		firstSegment = relPath[:idx]
	}

	if firstSegment == category {
		return filepath.Join(vaultDir, relPath)
	}

	return filepath.Join(vaultDir, category, relPath)
}

func categoryFlag(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	flag := cmd.Flags().Lookup("category")
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
