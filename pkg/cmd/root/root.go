/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/constants"
	"github.com/Paintersrp/knot/internal/state"
	"github.com/Paintersrp/knot/pkg/cmd/browse"
	"github.com/Paintersrp/knot/pkg/cmd/initialize"
	"github.com/Paintersrp/knot/pkg/cmd/list"
	"github.com/Paintersrp/knot/pkg/cmd/new"
	"github.com/Paintersrp/knot/pkg/cmd/open"
	"github.com/Paintersrp/knot/pkg/cmd/settings"
	"github.com/Paintersrp/knot/pkg/cmd/stats"
	"github.com/Paintersrp/knot/pkg/cmd/sync"
)

// NewCmdRoot builds the command tree. s is filled in from the config file
// before any subcommand runs.
func NewCmdRoot(s *state.State) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Browse, create and sync a directory of markdown notes.",
		Long: heredoc.Doc(`
			knot is a terminal browser for a vault of markdown notes.

			The vault is a plain directory: top-level folders are categories,
			folders below them are subfolders, and the files inside are notes.
			Running knot without a subcommand opens the browser.
		`),
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := state.NewState(configPath)
			if err != nil {
				return err
			}
			*s = *loaded
			return nil
		},
		RunE: browse.NewCmdBrowse(s).RunE,
	}

	cmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"",
		"Config file to use (default is $HOME/.knot/cfg.yaml)",
	)

	cmd.AddCommand(
		browse.NewCmdBrowse(s),
		new.NewCmdNew(s),
		open.NewCmdOpen(s),
		list.NewCmdList(s),
		stats.NewCmdStats(s),
		sync.NewCmdSync(s),
		initialize.NewCmdInit(s),
		settings.NewCmdSettings(s),
	)

	return cmd
}
