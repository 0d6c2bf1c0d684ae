package engine

import (
	"context"
	"time"

	"github.com/talekeep/dialogue-engine/pkg/dialogue"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
)

// InteractionEvent is the trigger payload that begins a conversation.
type InteractionEvent struct {
	NPCID   string `json:"npc_id"`
	NPCName string `json:"npc_name,omitempty"`
}

// Point is a world-space position, used only to compute a camera focus
// midpoint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderOption is one selectable choice on a rendered line.
type RenderOption struct {
	ID   string
	Text string
}

// RenderLine is a fully resolved display line handed to the stage:
// localization applied, speaker-visual default computed.
type RenderLine struct {
	Speaker     dialogue.Speaker
	Name        string
	Text        string
	Emotion     string
	Options     []RenderOption
	HideSpeaker bool
}

// DialogueRepository returns the conversation document for an NPC.
// A nil document (not found) is not an error; the engine does nothing.
type DialogueRepository interface {
	GetDialogue(ctx context.Context, npcID string) (*dialogue.Document, error)
}

// InventoryService is the external owner of inventory state. WriteSlots is
// fire-and-forget from the engine's perspective: failures are logged, not
// surfaced.
type InventoryService interface {
	GetInventory(ctx context.Context) (*inventory.Snapshot, error)
	WriteSlots(ctx context.Context, slots []inventory.Slot) error
}

// Stage is the scene/UI collaborator the engine drives.
type Stage interface {
	EnterConversation(focus *Point)
	ExitConversation()
	SetInteractionCooldown(d time.Duration)
	RenderLine(line RenderLine)
	PlayAdvanceCue()
	PlayEndCue()
}

// World provides position lookups for the camera focus midpoint.
type World interface {
	PlayerPosition() Point
	NPCPosition(npcID string) (pos Point, name string, ok bool)
}

// InventoryNotifier receives inventory snapshots around grants so the UI
// reflects both pre-grant and post-grant state.
type InventoryNotifier interface {
	InventoryUpdated(snap *inventory.Snapshot)
}
