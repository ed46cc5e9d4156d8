package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/howell/dealdial/app"
	"github.com/howell/dealdial/core"
	"github.com/howell/dealdial/internal/config"
	"github.com/howell/dealdial/internal/database"
	"github.com/howell/dealdial/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logging.InitializeFromEnv(); err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logging.Sync()

	db, err := database.OpenEnsuring(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	app.BindRuntime(db, cfg)

	m := core.NewModel(app.Tabs(), core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil), db)
	app.ConfigureModel(&m)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
