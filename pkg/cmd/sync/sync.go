package sync

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/logging"
	"github.com/Paintersrp/knot/internal/state"
	gitsync "github.com/Paintersrp/knot/internal/sync"
)

func NewCmdSync(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Commit and push the vault with git.",
		Long: heredoc.Doc(`
			Runs a manual sync of the vault: git add -A, a commit stamped with
			the current time, then git push. The vault is initialised as a git
			repository first when needed. Remote and branch come from the
			sync section of the config.
		`),
		Example: "knot sync",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer := gitsync.New(s.Vault, s.Config.Sync, logging.For(s.Logger, "sync"))
			syncer.Stdout = cmd.OutOrStdout()
			syncer.Stderr = cmd.ErrOrStderr()

			result := syncer.Run(cmd.Context())
			Summarize(cmd.OutOrStdout(), result)
			return result.Err()
		},
	}

	return cmd
}

// Summarize prints one line per git step and the overall verdict.
func Summarize(w io.Writer, r gitsync.Result) {
	fmt.Fprintf(w, "\n%s\n", r.Message)
	for _, step := range r.Steps {
		status := "ok"
		if step.Err != nil {
			status = fmt.Sprintf("failed (exit %d)", step.ExitCode)
		}
		fmt.Fprintf(w, "  git %-40s %s\n", strings.Join(step.Args, " "), status)
	}

	if r.OK() {
		fmt.Fprintf(w, "Sync complete in %s\n", r.Finished.Sub(r.Started).Round(time.Millisecond))
		return
	}
	fmt.Fprintln(w, "Sync failed")
}
