package note

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/pathutil"
)

type hookContext struct {
	File     string
	Vault    string
	Relative string
	Filename string
}

func RunPreOpenHooks(cfg *config.Config, path string) error {
	return executeHookCommands("pre_open", cfg.Hooks.PreOpen, cfg.VaultDir, path)
}

func RunPostOpenHooks(cfg *config.Config, path string) error {
	return executeHookCommands("post_open", cfg.Hooks.PostOpen, cfg.VaultDir, path)
}

// RunPostCreateHooks runs after a note file has been written.
func RunPostCreateHooks(cfg *config.Config, path string) error {
	return executeHookCommands("post_create", cfg.Hooks.PostCreate, cfg.VaultDir, path)
}

func executeHookCommands(phase string, commands []config.CommandTemplate, vault, path string) error {
	if len(commands) == 0 {
		return nil
	}

	ctx := newHookContext(vault, path)
	for _, command := range commands {
		cmd, wait, name := buildHookCommand(command, ctx)
		if cmd == nil {
			continue
		}

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("%s hook %q failed to start: %w", phase, name, err)
		}

		if wait {
			if err := cmd.Wait(); err != nil {
				return fmt.Errorf("%s hook %q failed: %w", phase, name, err)
			}
			continue
		}

		if err := cmd.Process.Release(); err != nil {
			return fmt.Errorf("%s hook %q release failed: %w", phase, name, err)
		}
	}

	return nil
}

func buildHookCommand(template config.CommandTemplate, ctx hookContext) (*exec.Cmd, bool, string) {
	execName := strings.TrimSpace(applyHookPlaceholders(template.Exec, ctx))
	if execName == "" {
		return nil, false, ""
	}

	args := make([]string, 0, len(template.Args))
	for _, arg := range template.Args {
		args = append(args, applyHookPlaceholders(arg, ctx))
	}
	cmd := exec.Command(execName, args...)

	if template.Silence != nil && *template.Silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	wait := true
	if template.Wait != nil {
		wait = *template.Wait
	}

	return cmd, wait, execName
}

func newHookContext(vault, path string) hookContext {
	relative, err := pathutil.VaultRelative(vault, path)
	if err != nil {
		relative = path
	}

	return hookContext{
		File:     path,
		Vault:    vault,
		Relative: relative,
		Filename: filepath.Base(path),
	}
}

func applyHookPlaceholders(value string, ctx hookContext) string {
	return strings.NewReplacer(
		"{file}", ctx.File,
		"{vault}", ctx.Vault,
		"{relative}", ctx.Relative,
		"{filename}", ctx.Filename,
	).Replace(value)
}
