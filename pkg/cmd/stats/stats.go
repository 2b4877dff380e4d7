package stats

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/state"
	"github.com/Paintersrp/knot/internal/vault"
	cmdutil "github.com/Paintersrp/knot/pkg/cmd"
)

func NewCmdStats(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [note]",
		Short: "Show word counts and reading time.",
		Long: heredoc.Doc(`
			Prints the word count and estimated reading time of one note, or
			totals for the whole vault when no note is given. Reading time
			uses reading_speed from the config (words per minute).
		`),
		Example: heredoc.Doc(`
			knot stats
			knot stats work/plan.md
			knot stats -c work plan.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := s.OpenVault()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				path, err := cmdutil.ResolveVaultPath(cmd, s, args[0])
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), args[0], v.ComputeStats(path))
				return nil
			}

			notes, err := s.Handler.WalkNotes(nil)
			if err != nil {
				return err
			}
			total := Total(v, notes)
			fmt.Fprintf(cmd.OutOrStdout(), "%d notes\n", len(notes))
			printStats(cmd.OutOrStdout(), "total", total)
			return nil
		},
	}

	cmd.Flags().StringP("category", "c", "", "Category the note path is relative to")

	return cmd
}

// Total sums the words of every note and estimates the combined reading time.
func Total(v *vault.State, notes []handler.Note) vault.Stats {
	var total vault.Stats
	for _, n := range notes {
		total.Words += v.ComputeStats(n.Path).Words
	}
	total.Minutes = v.ReadingMinutes(total.Words)
	return total
}

func printStats(w io.Writer, label string, st vault.Stats) {
	fmt.Fprintf(w, "%s: %d words, ~%d min read\n", label, st.Words, st.Minutes)
}
