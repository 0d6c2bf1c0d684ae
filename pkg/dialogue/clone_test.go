package dialogue

import "testing"

func TestCloneLines_DeepIndependence(t *testing.T) {
	hide := true
	src := []Line{
		{
			Speaker:     SpeakerNPC,
			Text:        "hello",
			HideSpeaker: &hide,
			Options: []Option{
				{
					ID:    "opt",
					Text:  "opt_text",
					Lines: []Line{{Text: "nested"}},
					Branches: []Fork{
						{
							Checks:  []Check{{Type: CheckHasItem, ItemID: "rod"}},
							Lines:   []Line{{Text: "branch"}},
							Actions: []Action{{Type: ActionGiveItem, ItemID: "bait"}},
						},
					},
				},
			},
		},
	}

	clone := CloneLines(src)

	// Mutate every level of the clone.
	clone[0].Text = "changed"
	*clone[0].HideSpeaker = false
	clone[0].Options[0].Text = "changed"
	clone[0].Options[0].Lines[0].Text = "changed"
	clone[0].Options[0].Branches[0].Checks[0].ItemID = "changed"
	clone[0].Options[0].Branches[0].Lines[0].Text = "changed"
	clone[0].Options[0].Branches[0].Actions[0].ItemID = "changed"

	if src[0].Text != "hello" {
		t.Error("Clone shares line text with source")
	}
	if !*src[0].HideSpeaker {
		t.Error("Clone shares HideSpeaker pointer with source")
	}
	if src[0].Options[0].Text != "opt_text" {
		t.Error("Clone shares option with source")
	}
	if src[0].Options[0].Lines[0].Text != "nested" {
		t.Error("Clone shares option lines with source")
	}
	if src[0].Options[0].Branches[0].Checks[0].ItemID != "rod" {
		t.Error("Clone shares branch checks with source")
	}
	if src[0].Options[0].Branches[0].Actions[0].ItemID != "bait" {
		t.Error("Clone shares branch actions with source")
	}
}

func TestCloneActions_IfMissingPointer(t *testing.T) {
	v := false
	src := []Action{{Type: ActionGiveItem, ItemID: "x", IfMissing: &v}}

	clone := CloneActions(src)
	*clone[0].IfMissing = true

	if *src[0].IfMissing {
		t.Error("CloneActions shares IfMissing pointer with source")
	}
}

func TestCloneLines_Nil(t *testing.T) {
	if CloneLines(nil) != nil {
		t.Error("Expected nil clone of nil lines")
	}
	if CloneActions(nil) != nil {
		t.Error("Expected nil clone of nil actions")
	}
}
