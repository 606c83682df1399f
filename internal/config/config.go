// internal/config/config.go
//
// This package handles configuration and the .crewboard directory structure.
// Every directory the board runs from gets a .crewboard/ folder holding the
// snapshot, the activity journal, and logs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// CrewboardDir is the name of the directory created per board.
	CrewboardDir = ".crewboard"

	defaultBoardFile   = "board.json"
	defaultJournalFile = "journey.log"
)

const defaultBoardConfigYAML = `# crewboard configuration
version: 1

# File names are relative to the .crewboard directory.
board:
  file: board.json

journal:
  file: journey.log

# Set to false to start from an empty board instead of the sample data
# when no snapshot exists yet.
seed: true
`

// BoardFileConfig names the snapshot file inside .crewboard.
type BoardFileConfig struct {
	File string `yaml:"file"`
}

// JournalFileConfig names the activity journal file inside .crewboard.
type JournalFileConfig struct {
	File string `yaml:"file"`
}

// BoardConfig models .crewboard/config.yaml.
type BoardConfig struct {
	Version int               `yaml:"version"`
	Board   BoardFileConfig   `yaml:"board"`
	Journal JournalFileConfig `yaml:"journal"`
	Seed    *bool             `yaml:"seed"`
}

// Config holds the runtime configuration for crewboard.
type Config struct {
	// ProjectDir is the directory the user ran `crewboard` from.
	ProjectDir string

	// BoardDir is ProjectDir/.crewboard.
	BoardDir string

	Board BoardConfig
}

// InitCrewboardDir creates the .crewboard directory structure in the given
// directory and writes a default config.yaml if none exists.
func InitCrewboardDir(projectDir string) error {
	boardDir := filepath.Join(projectDir, CrewboardDir)
	dirs := []string{
		boardDir,
		filepath.Join(boardDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureBoardConfig(filepath.Join(boardDir, "config.yaml"))
}

// NewConfig creates a Config populated from .crewboard/config.yaml,
// falling back to defaults when the file is absent.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		BoardDir:   filepath.Join(projectDir, CrewboardDir),
		Board:      defaultBoardConfig(),
	}
	if err := cfg.loadBoardConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DataPath returns the on-disk location of the board snapshot.
func (c *Config) DataPath() string {
	return filepath.Join(c.BoardDir, c.Board.Board.File)
}

// JournalPath returns the on-disk location of the activity journal.
func (c *Config) JournalPath() string {
	return filepath.Join(c.BoardDir, c.Board.Journal.File)
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.BoardDir, "logs")
}

// ConfigPath returns the on-disk location of the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.BoardDir, "config.yaml")
}

// SeedEnabled reports whether a missing snapshot starts from sample data.
func (c *Config) SeedEnabled() bool {
	if c.Board.Seed == nil {
		return true
	}
	return *c.Board.Seed
}

func (c *Config) loadBoardConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed BoardConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Board = parsed
	return nil
}

func defaultBoardConfig() BoardConfig {
	return BoardConfig{
		Version: 1,
		Board:   BoardFileConfig{File: defaultBoardFile},
		Journal: JournalFileConfig{File: defaultJournalFile},
	}
}

func (bc *BoardConfig) applyDefaults() {
	if bc.Version == 0 {
		bc.Version = 1
	}
	bc.Board.File = strings.TrimSpace(bc.Board.File)
	if bc.Board.File == "" {
		bc.Board.File = defaultBoardFile
	}
	bc.Journal.File = strings.TrimSpace(bc.Journal.File)
	if bc.Journal.File == "" {
		bc.Journal.File = defaultJournalFile
	}
}

func (bc BoardConfig) validate() error {
	if bc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if filepath.IsAbs(bc.Board.File) || strings.Contains(bc.Board.File, "..") {
		return fmt.Errorf("board.file must be a plain file name")
	}
	if filepath.IsAbs(bc.Journal.File) || strings.Contains(bc.Journal.File, "..") {
		return fmt.Errorf("journal.file must be a plain file name")
	}
	return nil
}

func ensureBoardConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultBoardConfigYAML), 0o644)
}
