package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/note"
	"github.com/Paintersrp/knot/internal/state"
	"github.com/Paintersrp/knot/internal/vault"
)

type options struct {
	category string
	folder   string
	open     bool
}

func NewCmdNew(s *state.State) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "new [name]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Creates a new note in the vault, the same way the browser does.

			The note goes into the vault root unless a category (and
			optionally one of its folders) is given. A .md extension is added
			when the name has none, and existing notes are never overwritten.
		`),
		Example: heredoc.Doc(`
			knot new standup
			knot new design-review --category work --folder meetings --open
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return fmt.Errorf("error: No name given. Try again with 'knot new [name]'")
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Category to create the note in")
	cmd.Flags().StringVarP(&opts.folder, "folder", "f", "", "Folder of the category to create the note in")
	cmd.Flags().BoolVarP(&opts.open, "open", "o", false, "Open the note in the editor after creating it")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts *options, name string) error {
	v, err := s.OpenVault()
	if err != nil {
		return err
	}

	path, err := Create(v, opts.category, opts.folder, name)
	if err != nil {
		return err
	}

	if err := note.RunPostCreateHooks(s.Config, path); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "post-create hook failed: %v\n", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)

	if opts.open {
		return note.OpenFromPath(path, s.Config)
	}

	return nil
}

// Create selects the category and folder, then creates the note there.
func Create(v *vault.State, category, folder, name string) (string, error) {
	if category != "" {
		if err := v.SelectCategory(category); err != nil {
			return "", err
		}
	}

	if folder != "" {
		if category == "" {
			return "", fmt.Errorf("--folder requires --category")
		}
		if err := v.SelectSubfolder(folder); err != nil {
			return "", err
		}
	}

	if err := v.BeginCreate(vault.KindNote); err != nil {
		return "", err
	}

	path, err := v.CommitCreate(name)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("note name cannot be blank")
	}

	return path, nil
}
