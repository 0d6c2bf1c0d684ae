// Package dialogue defines the conversation-tree data model and the
// resolver that selects the active variant of a document at runtime.
package dialogue

// Speaker identifies who delivers a line.
type Speaker string

const (
	SpeakerPlayer Speaker = "player"
	SpeakerNPC    Speaker = "npc"
)

// Document is the root conversation asset for one NPC.
//
// Lines and Actions are the default path. Forks are evaluated in document
// order; the first fork whose checks all pass replaces the default
// lines/actions for the session. A fork with no checks always passes, so
// ordering one first makes it a hard override and ordering it last makes
// it a catch-all.
type Document struct {
	Lines   []Line   `json:"lines,omitempty"`
	Forks   []Fork   `json:"forks,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Fork is a conditional variant of a dialogue. All checks must pass
// (logical AND) for the fork to be selected. The same shape serves as an
// option-level branch.
type Fork struct {
	Checks  []Check  `json:"checks,omitempty"`
	Lines   []Line   `json:"lines,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Line is one displayable beat of a conversation.
type Line struct {
	Speaker Speaker  `json:"speaker,omitempty"`
	Name    string   `json:"name,omitempty"` // display name or localization key
	Text    string   `json:"text"`           // text or localization key
	Emotion string   `json:"emotion,omitempty"`
	Options []Option `json:"options,omitempty"`

	// HideSpeaker overrides the default speaker-visuals behavior.
	// When nil, speaker visuals are hidden exactly when options are present.
	HideSpeaker *bool `json:"hide_speaker,omitempty"`
}

// HidesSpeaker reports whether speaker visuals should be hidden for this
// line, applying the options-present default when no override is set.
func (l Line) HidesSpeaker() bool {
	if l.HideSpeaker != nil {
		return *l.HideSpeaker
	}
	return len(l.Options) > 0
}

// Option is a player-selectable branch point attached to a line.
// Branches are evaluated like top-level forks; if none match (or none are
// declared), the option's own Lines/Actions are used.
type Option struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"` // text or localization key
	Lines    []Line   `json:"lines,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Branches []Fork   `json:"branches,omitempty"`
}

// FindOption returns the option with the given id on this line, or nil.
func (l Line) FindOption(id string) *Option {
	for i := range l.Options {
		if l.Options[i].ID == id {
			return &l.Options[i]
		}
	}
	return nil
}
