package app

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ridgeline-systems/optwatch/internal/config"
	"github.com/ridgeline-systems/optwatch/internal/engine"
	"github.com/ridgeline-systems/optwatch/internal/generator"
	"github.com/ridgeline-systems/optwatch/internal/output"
	"github.com/ridgeline-systems/optwatch/internal/store"
)

// deps bundles the wired-up collaborators every command needs.
type deps struct {
	cfg    *config.Config
	db     *store.DB
	engine *engine.Engine
}

// openDeps loads config, opens the store, and assembles the engine. The
// caller owns db lifetime and must call close.
func openDeps() (*deps, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyOutputPrefs(cfg)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	gen := generator.New(db)
	measurer := &engine.DeltaMeasurer{
		History:    db,
		Clock:      db,
		Window:     time.Duration(cfg.Measure.WindowDays) * 24 * time.Hour,
		MinSamples: cfg.Measure.MinSamples,
	}

	eng := engine.New(db, db, gen, measurer, engine.Options{
		Workers:       cfg.Workers,
		MinOccurrence: cfg.Floors.MinOccurrence,
		MinSeverity:   cfg.Floors.MinSeverity,
		MinConfidence: cfg.Floors.MinConfidence,
	})

	return &deps{cfg: cfg, db: db, engine: eng}, nil
}

func (d *deps) close() {
	if d.db != nil {
		_ = d.db.Close()
	}
}

// applyOutputPrefs resolves color and width settings from config, flags,
// and the terminal.
func applyOutputPrefs(cfg *config.Config) {
	if flagNoColor || !cfg.Output.Color || !isatty.IsTerminal(os.Stdout.Fd()) {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)
}
