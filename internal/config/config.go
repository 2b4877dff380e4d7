package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/knot/internal/constants"
)

type CommandTemplate struct {
	Exec    string   `yaml:"exec"    mapstructure:"exec"`
	Args    []string `yaml:"args"    mapstructure:"args"`
	Wait    *bool    `yaml:"wait"    mapstructure:"wait"`
	Silence *bool    `yaml:"silence" mapstructure:"silence"`
}

type HookConfig struct {
	PreOpen    []CommandTemplate `yaml:"pre_open"    mapstructure:"pre_open"`
	PostOpen   []CommandTemplate `yaml:"post_open"   mapstructure:"post_open"`
	PostCreate []CommandTemplate `yaml:"post_create" mapstructure:"post_create"`
}

// SyncConfig controls the git steps run by a manual sync.
type SyncConfig struct {
	Git           string `yaml:"git"            mapstructure:"git"`
	Remote        string `yaml:"remote"         mapstructure:"remote"`
	Branch        string `yaml:"branch"         mapstructure:"branch"`
	MessageFormat string `yaml:"message_format" mapstructure:"message_format"`
	Pause         bool   `yaml:"pause"          mapstructure:"pause"`
}

type LogConfig struct {
	File  string `yaml:"file"  mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

type Config struct {
	VaultDir       string          `yaml:"vaultdir"        mapstructure:"vaultdir"`
	Editor         string          `yaml:"editor"          mapstructure:"editor"`
	NvimArgs       string          `yaml:"nvimargs"        mapstructure:"nvimargs"`
	EditorTemplate CommandTemplate `yaml:"editor_template" mapstructure:"editor_template"`
	Layout         string          `yaml:"layout"          mapstructure:"layout"`
	ReadingSpeed   int             `yaml:"reading_speed"   mapstructure:"reading_speed"`
	Hooks          HookConfig      `yaml:"hooks"           mapstructure:"hooks"`
	Sync           SyncConfig      `yaml:"sync"            mapstructure:"sync"`
	Log            LogConfig       `yaml:"log"             mapstructure:"log"`

	path string `yaml:"-"`
}

const (
	LayoutThree = "three"
	LayoutTwo   = "two"
)

var validEditorNames = []string{"nvim", "vim", "nano", "helix", "hx", "vscode", "code", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

var ValidLayouts = map[string]bool{
	LayoutThree: true,
	LayoutTwo:   true,
}

// EditorNames returns the supported editors in display order.
func EditorNames() []string {
	return append([]string(nil), validEditorNames...)
}

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func ValidateLayout(layout string) error {
	if _, valid := ValidLayouts[layout]; valid {
		return nil
	}
	return fmt.Errorf("invalid layout: %q. Please choose from 'three' or 'two'", layout)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("vaultdir", filepath.Join(home, constants.DefaultVaultDir))
	v.SetDefault("editor", "nvim")
	v.SetDefault("nvimargs", "")
	v.SetDefault("layout", LayoutThree)
	v.SetDefault("reading_speed", constants.WordsPerMinute)
	v.SetDefault("sync.git", "git")
	v.SetDefault("sync.remote", "")
	v.SetDefault("sync.branch", "")
	v.SetDefault("sync.message_format", constants.SyncMessageFmt)
	v.SetDefault("sync.pause", true)
	v.SetDefault("log.file", filepath.Join(home, constants.ConfigDir, constants.LogFile))
	v.SetDefault("log.level", "info")
}

// Load reads the config file at path (or the default location under home when
// path is empty), layering defaults and KNOT_* environment overrides.
func Load(home, path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath(home)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.path = path
	cfg.VaultDir = expandHome(strings.TrimSpace(cfg.VaultDir), home)
	cfg.Log.File = expandHome(strings.TrimSpace(cfg.Log.File), home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.VaultDir == "" {
		return &ConfigInitError{msg: `required config variable "vaultdir" is not set`}
	}
	if cfg.ReadingSpeed <= 0 {
		return &ConfigInitError{
			msg: fmt.Sprintf("reading_speed must be positive, got %d", cfg.ReadingSpeed),
		}
	}
	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return err
		}
	}
	if cfg.Editor == "custom" && strings.TrimSpace(cfg.EditorTemplate.Exec) == "" {
		return &ConfigInitError{msg: "custom editor requires editor_template.exec"}
	}
	return ValidateLayout(cfg.Layout)
}

// Path is the file the config was loaded from and will be saved to.
func (cfg *Config) Path() string {
	return cfg.path
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}
	cfg.Editor = editor
	return cfg.Save()
}

func (cfg *Config) ChangeLayout(layout string) error {
	if err := ValidateLayout(layout); err != nil {
		return err
	}
	cfg.Layout = layout
	return cfg.Save()
}

func (cfg *Config) SetVaultDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("vault directory cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	cfg.VaultDir = abs
	return cfg.Save()
}

func (cfg *Config) SetRemote(remote string) error {
	cfg.Sync.Remote = strings.TrimSpace(remote)
	return cfg.Save()
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.path == "" {
		return fmt.Errorf("config has no file path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(cfg.path, data, 0o644)
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
