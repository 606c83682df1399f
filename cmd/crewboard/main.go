// cmd/crewboard/main.go
//
// Entry point for the crewboard TUI. Running `crewboard` in any directory
// creates (or reuses) a .crewboard/ folder there, loads the persisted
// board or the seed data, and opens the board.

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/crewboard/crewboard/internal/config"
	"github.com/crewboard/crewboard/internal/journal"
	"github.com/crewboard/crewboard/internal/logging"
	"github.com/crewboard/crewboard/internal/snapshot"
	"github.com/crewboard/crewboard/internal/tracker"
	"github.com/crewboard/crewboard/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitCrewboardDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .crewboard directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	jrnl, err := journal.New(cfg.JournalPath())
	if err != nil {
		logger.Errorf("journal unavailable: %v", err)
		jrnl = nil
	}

	repo := snapshot.NewRepository(cfg.DataPath())
	state := loadState(repo, cfg, logger)
	logger.Infof("board ready: %d projects, %d tasks, %d members",
		len(state.Projects), len(state.Tasks), len(state.Members))

	store := tracker.NewStore(state,
		tracker.WithJournal(jrnl),
		tracker.WithPersist(repo.Save),
	)

	p := tea.NewProgram(
		tui.NewApp(store, jrnl),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadState reads the persisted board. A missing snapshot starts from the
// seed data (or an empty board when seeding is disabled); a corrupt one is
// logged and replaced by the seed, never a crash.
func loadState(repo *snapshot.Repository, cfg *config.Config, logger *logging.Logger) tracker.State {
	state, err := repo.Load()
	if err == nil {
		return state
	}
	if errors.Is(err, snapshot.ErrSnapshotNotFound) {
		if cfg.SeedEnabled() {
			return tracker.Seed()
		}
		return tracker.State{}
	}
	logger.Errorf("snapshot unreadable, falling back to seed data: %v", err)
	return tracker.Seed()
}
