package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/talekeep/dialogue-engine/internal/config"
	"github.com/talekeep/dialogue-engine/internal/logger"
	"github.com/talekeep/dialogue-engine/internal/services/events"
	"github.com/talekeep/dialogue-engine/internal/storage"
	"github.com/talekeep/dialogue-engine/pkg/bus"
	"github.com/talekeep/dialogue-engine/pkg/engine"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
	"github.com/talekeep/dialogue-engine/pkg/locale"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	repo := storage.NewFSDialogues(cfg.DataDir, log)

	var translator locale.Translator
	catalog, err := locale.LoadCatalog(filepath.Join(cfg.DataDir, "locales"))
	if err != nil {
		log.Warn("No locale tables loaded, showing raw text", "error", err)
		translator = locale.Table(nil)
	} else {
		translator = catalog.Pick(cfg.Locale)
	}

	interactionTopic := bus.NewTopic[engine.InteractionEvent]()
	inventoryTopic := bus.NewTopic[*inventory.Snapshot]()

	var inv engine.InventoryService
	var notifier engine.InventoryNotifier

	if cfg.RedisURL != "" {
		rinv, err := storage.NewRedisInventory(cfg.RedisURL, cfg.PlayerID, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create inventory service: %v\n", err)
			os.Exit(1)
		}
		defer rinv.Close()

		if err := rinv.Ping(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Could not connect to Redis at %s: %v\n", cfg.RedisURL, err)
			os.Exit(1)
		}

		listener := events.NewListener(rinv.GetClient(), cfg.PlayerID, inventoryTopic, log)
		defer listener.Close()

		inv = rinv
		notifier = events.NewBroadcaster(rinv.GetClient(), cfg.PlayerID, log)
	} else {
		// No Redis configured: development mode with an empty in-memory
		// inventory.
		inv = storage.NewMemoryInventory(&inventory.Snapshot{
			Slots: make([]inventory.Slot, 8),
		})
	}

	stage := newConsoleStage()

	eng := engine.New(engine.Deps{
		Repo:       repo,
		Inventory:  inv,
		Translator: translator,
		Stage:      stage,
		Notifier:   notifier,
		Topics: engine.Topics{
			Interaction: interactionTopic,
			Inventory:   inventoryTopic,
		},
		Cooldown: cfg.InteractionCooldown,
		Logger:   log,
	})
	defer eng.Close()

	npcIDs, err := repo.ListDialogues(context.Background())
	if err != nil || len(npcIDs) == 0 {
		fmt.Fprintf(os.Stderr, "No dialogues found under %s/dialogues: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}

	ui := NewConsoleUI(eng, stage, interactionTopic, npcIDs)
	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running console: %v\n", err)
		os.Exit(1)
	}
}
