package browse

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/state"
	"github.com/Paintersrp/knot/internal/tui/browser"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b"},
		Short:   "Open the vault browser.",
		Long: heredoc.Doc(`
			Opens the full screen vault browser.

			Categories run across the top, with the selected category's
			folders, notes and a preview of the selected note below.
			Press ? inside the browser for the key bindings.
		`),
		Example: "knot browse",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return browser.Run(s)
		},
	}

	return cmd
}
