// Package cli implements the draftkeep maintenance commands: inspecting,
// sweeping, and clearing drafts in a configured store. Page editors use the
// engine directly; this is the operator's view of the same data.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"draftkeep/config"
	"draftkeep/config/database"
	"draftkeep/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "draftkeep",
	Short: "Inspect and maintain locally persisted editor drafts",
	Long: `draftkeep manages the draft store used by the note editor, the code
runner, and the AI tool pages. Drafts are autosaved field maps keyed by
page; this tool lists them, shows their contents, sweeps out expired ones,
and clears individual drafts.`,
	SilenceUsage: true,
}

// Execute runs the CLI against the given configuration.
func Execute(c *config.Config) error {
	cfg = c
	return rootCmd.Execute()
}

// openStore builds the configured store backend. The returned close
// function releases any held resources and is always safe to call.
func openStore() (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemoryStore(), func() {}, nil

	case "file":
		fs, err := store.NewFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil

	case "sqlite", "postgres":
		db, err := database.Open(cfg.StoreDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		s := store.NewSQLStore(db, store.Dialect(cfg.StoreDriver))
		if err := s.EnsureSchema(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
