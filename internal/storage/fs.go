// Package storage provides the dialogue repository and inventory service
// implementations consumed by the engine: filesystem JSON for static
// dialogue documents, Redis or memory for player inventory.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/talekeep/dialogue-engine/pkg/dialogue"
	"github.com/talekeep/dialogue-engine/pkg/engine"
)

// FSDialogues serves dialogue documents from <dataDir>/dialogues/<npc_id>.json.
type FSDialogues struct {
	dataDir string
	logger  *slog.Logger
}

var _ engine.DialogueRepository = (*FSDialogues)(nil)

func NewFSDialogues(dataDir string, logger *slog.Logger) *FSDialogues {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &FSDialogues{dataDir: dataDir, logger: logger}
}

// GetDialogue returns the document for an NPC, or nil when none exists.
// A missing document is not an error.
func (f *FSDialogues) GetDialogue(ctx context.Context, npcID string) (*dialogue.Document, error) {
	path := filepath.Join(f.dataDir, "dialogues", npcID+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("Dialogue not found", "npc_id", npcID, "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read dialogue file: %w", err)
	}

	var doc dialogue.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		f.logger.Error("Failed to unmarshal dialogue", "npc_id", npcID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal dialogue: %w", err)
	}

	return &doc, nil
}

// ListDialogues returns the NPC ids that have a dialogue document.
func (f *FSDialogues) ListDialogues(ctx context.Context) ([]string, error) {
	dialoguesDir := filepath.Join(f.dataDir, "dialogues")
	var ids []string

	err := filepath.WalkDir(dialoguesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		ids = append(ids, strings.TrimSuffix(filepath.Base(path), ".json"))
		return nil
	})
	if err != nil {
		f.logger.Error("Failed to walk dialogues directory", "error", err)
		return nil, fmt.Errorf("failed to list dialogues: %w", err)
	}

	return ids, nil
}
