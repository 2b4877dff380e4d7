package open

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/fzf"
	"github.com/Paintersrp/knot/internal/note"
	"github.com/Paintersrp/knot/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Fuzzy find a note and open it in the editor.",
		Long: heredoc.Doc(`
			Lists every note in the vault in a fuzzy finder with a preview
			window. The selected note is opened with the configured editor.
			An optional query pre-fills the finder.
		`),
		Example: heredoc.Doc(`
			knot open
			knot o standup
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, strings.Join(args, " "))
		},
	}

	return cmd
}

func run(cmd *cobra.Command, s *state.State, query string) error {
	finder := fzf.NewFuzzyFinder(s.Handler, "Select a note to open.")

	selected, err := finder.Find(query)
	if errors.Is(err, fzf.ErrNoSelection) {
		fmt.Fprintln(cmd.OutOrStdout(), "No note selected")
		return nil
	}
	if err != nil {
		return err
	}

	return note.OpenFromPath(selected.Path, s.Config)
}
