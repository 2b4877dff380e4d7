package sync

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// FinishedMsg is delivered to the UI after a sync handoff returns.
type FinishedMsg struct {
	Result Result
	Err    error
}

// Handoff runs a sync in the foreground terminal. It satisfies
// tea.ExecCommand so the UI can suspend rendering around it.
type Handoff struct {
	ctx    context.Context
	syncer *Syncer
	pause  bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	result Result
}

func NewHandoff(ctx context.Context, syncer *Syncer, pause bool) *Handoff {
	return &Handoff{
		ctx:    ctx,
		syncer: syncer,
		pause:  pause,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (h *Handoff) SetStdin(r io.Reader)  { h.stdin = r }
func (h *Handoff) SetStdout(w io.Writer) { h.stdout = w }
func (h *Handoff) SetStderr(w io.Writer) { h.stderr = w }

func (h *Handoff) Result() Result {
	return h.result
}

func (h *Handoff) Run() error {
	out := termenv.NewOutput(h.stdout)

	fmt.Fprintln(h.stdout, out.String("Syncing "+h.syncer.Dir).Bold())

	h.syncer.Stdout = h.stdout
	h.syncer.Stderr = h.stderr
	h.result = h.syncer.Run(h.ctx)

	err := h.result.Err()
	if err != nil {
		fmt.Fprintln(h.stdout, out.String("✗ Sync failed: "+err.Error()).Foreground(out.Color("1")).Bold())
	} else {
		fmt.Fprintln(h.stdout, out.String("✔ Sync complete: "+h.result.Message).Foreground(out.Color("2")).Bold())
	}

	if h.pause && isTerminal(h.stdin) {
		fmt.Fprint(h.stdout, "\nPress [ENTER] to return")
		_, _ = bufio.NewReader(h.stdin).ReadString('\n')
	}

	return err
}

// Cmd suspends the program, runs the sync, and reports a FinishedMsg.
func Cmd(ctx context.Context, syncer *Syncer, pause bool) tea.Cmd {
	h := NewHandoff(ctx, syncer, pause)
	return tea.Exec(h, func(err error) tea.Msg {
		return FinishedMsg{Result: h.Result(), Err: err}
	})
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
