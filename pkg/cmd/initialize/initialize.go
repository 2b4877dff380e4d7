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
package initialize

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/logging"
	"github.com/Paintersrp/knot/internal/state"
	gitsync "github.com/Paintersrp/knot/internal/sync"
)

type options struct {
	vault  string
	remote string
	git    bool
}

func NewCmdInit(s *state.State) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i", "initialize"},
		Short:   "Set up the vault directory and git sync.",
		Long: heredoc.Doc(`
			Walks you through choosing the vault directory and the git remote
			used by sync, saves them to the config file, creates the vault,
			and optionally initialises it as a git repository.

			Flags skip the matching prompt, so the command also works
			non-interactively.
		`),
		Example: heredoc.Doc(`
			knot init
			knot init --vault ~/notes --remote git@github.com:me/notes.git --git
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.vault, "vault", "", "Vault directory")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "Git remote URL for sync")
	cmd.Flags().BoolVar(&opts.git, "git", true, "Initialise the vault as a git repository")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts *options) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	dir := opts.vault
	if dir == "" && interactive {
		input := textinput.New("Vault directory:")
		input.InitialValue = s.Config.VaultDir
		input.Validate = func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("vault directory cannot be empty")
			}
			return nil
		}

		var err error
		if dir, err = input.RunPrompt(); err != nil {
			return err
		}
	}
	if dir == "" {
		dir = s.Config.VaultDir
	}
	if err := s.Config.SetVaultDir(dir); err != nil {
		return err
	}
	s.Vault = s.Config.VaultDir
	s.Handler = handler.NewFileHandler(s.Vault)

	remote := opts.remote
	if !cmd.Flags().Changed("remote") && interactive {
		input := textinput.New("Git remote (leave empty for none):")
		input.InitialValue = s.Config.Sync.Remote
		input.Validate = func(string) error { return nil }

		var err error
		if remote, err = input.RunPrompt(); err != nil {
			return err
		}
	} else if !cmd.Flags().Changed("remote") {
		remote = s.Config.Sync.Remote
	}
	if err := s.Config.SetRemote(remote); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Vault, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create vault %s: %w", s.Vault, err)
	}

	useGit := opts.git
	if !cmd.Flags().Changed("git") && interactive {
		prompt := confirmation.New(
			fmt.Sprintf("Initialise %s as a git repository?", s.Vault),
			confirmation.Yes,
		)

		var err error
		if useGit, err = prompt.RunPrompt(); err != nil {
			return err
		}
	}

	if useGit {
		syncer := gitsync.New(s.Vault, s.Config.Sync, logging.For(s.Logger, "sync"))
		syncer.Stdout = cmd.OutOrStdout()
		syncer.Stderr = cmd.ErrOrStderr()
		if err := syncer.Init(cmd.Context(), s.Config.Sync.Remote); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Vault ready at %s\nConfig saved to %s\n", s.Vault, s.Config.Path())
	return nil
}
