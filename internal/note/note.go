// Package note launches the configured editor on vault notes.
package note

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/pathutil"
)

// EditorFinishedMsg is sent to the UI once the editor handed off by OpenCmd
// has exited.
type EditorFinishedMsg struct {
	Path string
	Err  error
}

// EditorLaunch bundles the prepared command along with whether the caller
// should wait for it to exit before returning control to the UI.
type EditorLaunch struct {
	Cmd  *exec.Cmd
	Wait bool
}

type editorCommand struct {
	command string
	args    []string
	wait    bool
	silence bool
}

func (cmd editorCommand) launch() *EditorLaunch {
	return newEditorLaunch(cmd.command, cmd.args, cmd.wait, cmd.silence)
}

type editorTemplateContext struct {
	File     string
	Vault    string
	Relative string
	Filename string
	Editor   string
	BaseCmd  string
	BaseArgs []string
}

// EditorLaunchForPath prepares an editor command for the provided path without
// starting it.
func EditorLaunchForPath(path string, cfg *config.Config) (*EditorLaunch, error) {
	editor := strings.TrimSpace(cfg.Editor)
	baseCmd, baseErr := buildEditorCommand(path, editor, cfg.NvimArgs)

	if template := cfg.EditorTemplate; strings.TrimSpace(template.Exec) != "" {
		ctx := buildEditorTemplateContext(path, editor, cfg.VaultDir, baseCmd)
		wrapped, err := applyEditorTemplate(template, ctx, baseCmd)
		if err != nil {
			return nil, err
		}
		return wrapped.launch(), nil
	}

	if baseErr != nil {
		return nil, baseErr
	}

	return baseCmd.launch(), nil
}

func buildEditorCommand(path, editor, nvimArgs string) (*editorCommand, error) {
	switch editor {
	case "nvim":
		return buildNvimCommand(path, nvimArgs), nil
	case "vim", "nano", "helix", "hx":
		return &editorCommand{command: editor, args: []string{path}, wait: true}, nil
	case "vscode", "code":
		return buildVSCodeCommand(path)
	case "custom":
		return nil, fmt.Errorf("custom editor requires an editor_template command")
	case "":
		return nil, fmt.Errorf("editor not configured")
	default:
		return nil, fmt.Errorf("unsupported editor: %s", editor)
	}
}

func buildNvimCommand(path, extra string) *editorCommand {
	args := []string{"nvim"}
	if extra = strings.TrimSpace(extra); extra != "" {
		args = append(args, strings.Fields(extra)...)
	}
	args = append(args, path)
	return &editorCommand{command: args[0], args: args[1:], wait: true}
}

// VS Code returns immediately unless asked to wait for the file to close.
func buildVSCodeCommand(path string) (*editorCommand, error) {
	switch runtime.GOOS {
	case "darwin", "linux":
		return &editorCommand{command: "code", args: []string{"--wait", path}, wait: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "code", "--wait", path}, wait: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func buildEditorTemplateContext(path, editor, vault string, base *editorCommand) editorTemplateContext {
	relative, err := pathutil.VaultRelative(vault, path)
	if err != nil {
		relative = path
	}

	ctx := editorTemplateContext{
		File:     path,
		Vault:    vault,
		Relative: relative,
		Filename: filepath.Base(path),
		Editor:   editor,
		BaseCmd:  editor,
	}

	if base != nil {
		if base.command != "" {
			ctx.BaseCmd = base.command
		}
		ctx.BaseArgs = append(ctx.BaseArgs, base.args...)
	}

	return ctx
}

func applyEditorTemplate(template config.CommandTemplate, ctx editorTemplateContext, base *editorCommand) (*editorCommand, error) {
	execName := strings.TrimSpace(expandEditorPlaceholders(template.Exec, ctx))
	if execName == "" {
		return nil, fmt.Errorf("editor_template.exec must not be empty")
	}

	args := expandTemplateArgs(template.Args, ctx, base)

	wait := true
	silence := false
	if base != nil {
		wait = base.wait
		silence = base.silence
	}
	if template.Wait != nil {
		wait = *template.Wait
	}
	if template.Silence != nil {
		silence = *template.Silence
	}

	return &editorCommand{command: execName, args: args, wait: wait, silence: silence}, nil
}

func expandTemplateArgs(raw []string, ctx editorTemplateContext, base *editorCommand) []string {
	if len(raw) == 0 {
		return nil
	}

	var joined string
	if base != nil {
		joined = strings.Join(base.args, " ")
	}

	args := make([]string, 0, len(raw))
	for _, token := range raw {
		if strings.TrimSpace(token) == "{args}" {
			if base != nil {
				args = append(args, base.args...)
			}
			continue
		}

		expanded := expandEditorPlaceholders(token, ctx)
		expanded = strings.ReplaceAll(expanded, "{args}", joined)
		args = append(args, expanded)
	}

	return args
}

func expandEditorPlaceholders(value string, ctx editorTemplateContext) string {
	return strings.NewReplacer(
		"{file}", ctx.File,
		"{vault}", ctx.Vault,
		"{relative}", ctx.Relative,
		"{filename}", ctx.Filename,
		"{cmd}", ctx.BaseCmd,
		"{editor}", ctx.Editor,
	).Replace(value)
}

// OpenCmd hands the terminal to the editor for path. Rendering is suspended
// while a waiting editor runs and resumes once it exits; the result arrives as
// an EditorFinishedMsg.
func OpenCmd(path string, cfg *config.Config) tea.Cmd {
	finished := func(err error) tea.Msg {
		return EditorFinishedMsg{Path: path, Err: err}
	}

	launch, err := EditorLaunchForPath(path, cfg)
	if err != nil {
		return func() tea.Msg { return finished(err) }
	}

	if err := RunPreOpenHooks(cfg, path); err != nil {
		return func() tea.Msg { return finished(fmt.Errorf("pre-open hook failed: %w", err)) }
	}

	if !launch.Wait {
		return func() tea.Msg {
			if err := launch.Cmd.Start(); err != nil {
				return finished(fmt.Errorf("failed to start editor: %w", err))
			}
			return finished(postOpen(cfg, path))
		}
	}

	return tea.ExecProcess(launch.Cmd, func(err error) tea.Msg {
		if err != nil {
			return finished(fmt.Errorf("editor exited: %w", err))
		}
		return finished(postOpen(cfg, path))
	})
}

// OpenFromPath opens the note in the configured editor in the foreground.
func OpenFromPath(path string, cfg *config.Config) error {
	launch, err := EditorLaunchForPath(path, cfg)
	if err != nil {
		return err
	}

	if err := RunPreOpenHooks(cfg, path); err != nil {
		return fmt.Errorf("pre-open hook failed: %w", err)
	}

	if launch.Wait {
		if launch.Cmd.Stdin == nil {
			launch.Cmd.Stdin = os.Stdin
		}
		if launch.Cmd.Stdout == nil {
			launch.Cmd.Stdout = os.Stdout
		}
		if launch.Cmd.Stderr == nil {
			launch.Cmd.Stderr = os.Stderr
		}
	}

	if err := launch.Cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	if launch.Wait {
		if err := launch.Cmd.Wait(); err != nil {
			return fmt.Errorf("editor exited: %w", err)
		}
	}

	return postOpen(cfg, path)
}

func postOpen(cfg *config.Config, path string) error {
	if err := RunPostOpenHooks(cfg, path); err != nil {
		return fmt.Errorf("post-open hook failed: %w", err)
	}
	return nil
}

func newEditorLaunch(command string, args []string, wait bool, silence bool) *EditorLaunch {
	cmd := exec.Command(command, args...)
	if silence {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	return &EditorLaunch{Cmd: cmd, Wait: wait}
}
