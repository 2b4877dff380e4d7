package list

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/pathutil"
	"github.com/Paintersrp/knot/internal/state"
)

type options struct {
	category string
	since    string
}

func NewCmdList(s *state.State) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first.",
		Long: heredoc.Doc(`
			Prints every note in the vault with its modification time, newest
			first. Narrow the output to one category, or to notes changed
			since a date. Dates are parsed loosely: "2024-03-01",
			"March 1, 2024" and "03/01/2024 14:00" all work.
		`),
		Example: heredoc.Doc(`
			knot list
			knot list --category work --since 2024-03-01
			knot ls -c "[Root]"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := ParseSince(opts.since)
			if err != nil {
				return err
			}

			notes, err := s.Handler.WalkNotes(nil)
			if err != nil {
				return err
			}

			notes = Filter(s.Vault, notes, opts.category, since)
			Print(cmd.OutOrStdout(), s.Vault, notes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Only list notes in this category")
	cmd.Flags().StringVarP(&opts.since, "since", "s", "", "Only list notes modified since this date")

	return cmd
}

// ParseSince reads a loosely formatted date in local time. Empty means no
// lower bound.
func ParseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since date %q: %w", value, err)
	}

	return t, nil
}

// Filter keeps notes in category (all when empty) modified at or after
// since, ordered newest first.
func Filter(vaultDir string, notes []handler.Note, category string, since time.Time) []handler.Note {
	var kept []handler.Note
	for _, n := range notes {
		if !since.IsZero() && n.ModTime.Before(since) {
			continue
		}

		if category != "" {
			cat, _, _, err := pathutil.SplitCategory(vaultDir, n.Path)
			if err != nil {
				continue
			}
			if cat == "" {
				cat = constants.RootCategory
			}
			if cat != category {
				continue
			}
		}

		kept = append(kept, n)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].ModTime.Equal(kept[j].ModTime) {
			return kept[i].ModTime.After(kept[j].ModTime)
		}
		return kept[i].Path < kept[j].Path
	})

	return kept
}

func Print(w io.Writer, vaultDir string, notes []handler.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found")
		return
	}

	for _, n := range notes {
		rel, err := pathutil.VaultRelative(vaultDir, n.Path)
		if err != nil {
			rel = n.Path
		}
		fmt.Fprintf(w, "%s  %s\n", n.ModTime.Format("2006-01-02 15:04"), rel)
	}
}
