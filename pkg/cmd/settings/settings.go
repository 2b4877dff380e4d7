package settings

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/state"
)

const (
	settingEditor       = "editor"
	settingLayout       = "layout"
	settingReadingSpeed = "reading_speed"
)

var settingNames = []string{settingEditor, settingLayout, settingReadingSpeed}

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings [setting] [value]",
		Aliases: []string{"s"},
		Short:   "Change editor, layout or reading speed.",
		Long: heredoc.Doc(`
			Changes a setting and saves it to the config file. Without
			arguments a menu asks which setting to change and offers the
			valid values.

			Settings:
			  editor         nvim, vim, nano, helix, hx, vscode, code, custom
			  layout         three (categories, folders, notes) or two (no folders)
			  reading_speed  words per minute used for reading time
		`),
		Example: heredoc.Doc(`
			knot settings
			knot settings editor helix
			knot settings layout two
		`),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value, err := resolve(s.Config, args)
			if err != nil {
				return err
			}

			if err := Apply(s.Config, name, value); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", name, value)
			return nil
		},
	}

	return cmd
}

// resolve fills in whatever the arguments leave out by prompting.
func resolve(cfg *config.Config, args []string) (string, string, error) {
	var name, value string
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		value = args[1]
	}

	if name == "" {
		sel := selection.New("Which setting?", settingNames)
		sel.Filter = nil

		var err error
		if name, err = sel.RunPrompt(); err != nil {
			return "", "", err
		}
	}

	if value != "" {
		return name, value, nil
	}

	var err error
	switch name {
	case settingEditor:
		sel := selection.New(fmt.Sprintf("Editor (current: %s)", cfg.Editor), config.EditorNames())
		sel.Filter = nil
		value, err = sel.RunPrompt()
	case settingLayout:
		sel := selection.New(
			fmt.Sprintf("Layout (current: %s)", cfg.Layout),
			[]string{config.LayoutThree, config.LayoutTwo},
		)
		sel.Filter = nil
		value, err = sel.RunPrompt()
	case settingReadingSpeed:
		input := textinput.New("Words per minute:")
		input.InitialValue = strconv.Itoa(cfg.ReadingSpeed)
		input.Validate = func(v string) error {
			_, err := parseSpeed(v)
			return err
		}
		value, err = input.RunPrompt()
	default:
		return "", "", unknownSetting(name)
	}

	return name, value, err
}

// Apply validates and saves one setting.
func Apply(cfg *config.Config, name, value string) error {
	switch name {
	case settingEditor:
		return cfg.ChangeEditor(value)
	case settingLayout:
		return cfg.ChangeLayout(value)
	case settingReadingSpeed:
		speed, err := parseSpeed(value)
		if err != nil {
			return err
		}
		cfg.ReadingSpeed = speed
		return cfg.Save()
	}
	return unknownSetting(name)
}

func parseSpeed(v string) (int, error) {
	speed, err := strconv.Atoi(v)
	if err != nil || speed <= 0 {
		return 0, fmt.Errorf("reading speed must be a positive number, got %q", v)
	}
	return speed, nil
}

func unknownSetting(name string) error {
	return fmt.Errorf("unknown setting %q. Please choose from editor, layout or reading_speed", name)
}
