package dialogue

import (
	"encoding/json"
	"testing"
)

func TestDocument_Unmarshal(t *testing.T) {
	jsonData := `{
		"lines": [
			{"speaker": "npc", "text": "greeting", "emotion": "happy"},
			{
				"speaker": "player",
				"text": "prompt",
				"options": [
					{
						"id": "ask",
						"text": "ask_text",
						"lines": [{"speaker": "npc", "text": "answer"}],
						"actions": [{"type": "give_item", "item_id": "coin", "amount": 3}],
						"branches": [
							{
								"checks": [{"type": "has_item", "item_id": "rod", "negate": true}],
								"lines": [{"speaker": "npc", "text": "no_rod"}]
							}
						]
					}
				]
			}
		],
		"forks": [
			{
				"checks": [{"type": "has_item", "item_id": "rod"}],
				"lines": [{"speaker": "npc", "text": "rod_greeting"}]
			}
		],
		"actions": [{"type": "give_item", "item_id": "map", "if_missing": false}]
	}`

	var doc Document
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		t.Fatalf("Failed to unmarshal document: %v", err)
	}

	if len(doc.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(doc.Lines))
	}
	if doc.Lines[0].Speaker != SpeakerNPC || doc.Lines[0].Emotion != "happy" {
		t.Errorf("Unexpected first line: %+v", doc.Lines[0])
	}

	opts := doc.Lines[1].Options
	if len(opts) != 1 || opts[0].ID != "ask" {
		t.Fatalf("Expected option 'ask', got %+v", opts)
	}
	if len(opts[0].Branches) != 1 || !opts[0].Branches[0].Checks[0].Negate {
		t.Errorf("Expected negated branch check, got %+v", opts[0].Branches)
	}
	if opts[0].Actions[0].Amount != 3 {
		t.Errorf("Expected amount 3, got %d", opts[0].Actions[0].Amount)
	}

	if len(doc.Forks) != 1 || doc.Forks[0].Checks[0].ItemID != "rod" {
		t.Errorf("Unexpected forks: %+v", doc.Forks)
	}

	if doc.Actions[0].IfMissing == nil || *doc.Actions[0].IfMissing {
		t.Error("Expected if_missing false")
	}
}

func TestLine_HidesSpeaker(t *testing.T) {
	tr := true
	fa := false

	tests := []struct {
		name string
		line Line
		want bool
	}{
		{
			name: "default without options",
			line: Line{Text: "x"},
			want: false,
		},
		{
			name: "default with options",
			line: Line{Text: "x", Options: []Option{{ID: "o"}}},
			want: true,
		},
		{
			name: "explicit override true",
			line: Line{Text: "x", HideSpeaker: &tr},
			want: true,
		},
		{
			name: "explicit override false with options",
			line: Line{Text: "x", Options: []Option{{ID: "o"}}, HideSpeaker: &fa},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.HidesSpeaker(); got != tt.want {
				t.Errorf("HidesSpeaker() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLine_FindOption(t *testing.T) {
	line := Line{
		Options: []Option{
			{ID: "a", Text: "first"},
			{ID: "b", Text: "second"},
		},
	}

	if opt := line.FindOption("b"); opt == nil || opt.Text != "second" {
		t.Errorf("Expected option b, got %+v", opt)
	}
	if opt := line.FindOption("missing"); opt != nil {
		t.Errorf("Expected nil for missing id, got %+v", opt)
	}
}

func TestAction_Defaults(t *testing.T) {
	a := Action{Type: ActionGiveItem, ItemID: "x"}
	if a.GrantAmount() != 1 {
		t.Errorf("Expected default amount 1, got %d", a.GrantAmount())
	}
	if !a.SkipIfHeld() {
		t.Error("Expected if_missing to default to true")
	}

	fa := false
	a = Action{Type: ActionGiveItem, ItemID: "x", Amount: 5, IfMissing: &fa}
	if a.GrantAmount() != 5 {
		t.Errorf("Expected amount 5, got %d", a.GrantAmount())
	}
	if a.SkipIfHeld() {
		t.Error("Expected if_missing false to disable skip")
	}
}
