package state

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/knot/internal/config"
	"github.com/Paintersrp/knot/internal/handler"
	"github.com/Paintersrp/knot/internal/logging"
	"github.com/Paintersrp/knot/internal/vault"
)

type State struct {
	Config     *config.Config
	Handler    *handler.FileHandler
	Logger     *logrus.Logger
	Home       string
	Vault      string
	SyncStatus *SyncStatus

	logCloser io.Closer
}

// NewState loads the config (creating an empty file on first run) and opens
// the log file. configPath may be empty for the default location.
func NewState(configPath string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home, configPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	return &State{
		Config:     cfg,
		Handler:    handler.NewFileHandler(cfg.VaultDir),
		Logger:     logger,
		Home:       home,
		Vault:      cfg.VaultDir,
		SyncStatus: &SyncStatus{},
		logCloser:  closer,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home, path string) (*config.Config, error) {
	if path == "" {
		path = config.GetConfigPath(home)
	}

	if err := config.EnsureConfigExists(path); err != nil {
		return nil, err
	}

	return config.Load(home, path)
}

// OpenVault builds the navigation state for the configured vault.
func (s *State) OpenVault() (*vault.State, error) {
	return vault.New(
		s.Vault,
		vault.WithLayout(vault.ParseLayout(s.Config.Layout)),
		vault.WithLogger(logging.For(s.Logger, "vault")),
		vault.WithHandler(s.Handler),
		vault.WithReadingSpeed(s.Config.ReadingSpeed),
	)
}

// Close releases the log file.
func (s *State) Close() error {
	if s == nil || s.logCloser == nil {
		return nil
	}
	err := s.logCloser.Close()
	s.logCloser = nil
	return err
}
