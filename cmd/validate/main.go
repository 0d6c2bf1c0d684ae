package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/talekeep/dialogue-engine/pkg/dialogue"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dialogue.json> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &DialogueValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type DialogueValidator struct {
	errors []string
}

func (v *DialogueValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	// The file name is the NPC id the repository serves it under.
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("dialogue file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("dialogue filename '%s' must be lowercase snake_case (e.g., old_fisherman.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var doc dialogue.Document
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateDocument(&doc)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *DialogueValidator) validateDocument(doc *dialogue.Document) {
	if len(doc.Lines) == 0 && len(doc.Forks) == 0 {
		v.addError("document has no lines and no forks - it can never produce a conversation")
	}

	v.validateLines(doc.Lines, "document")
	v.validateForks(doc.Forks, "document")
	v.validateActions(doc.Actions, "document")
}

func (v *DialogueValidator) validateForks(forks []dialogue.Fork, context string) {
	catchAll := -1
	for i, fork := range forks {
		forkCtx := fmt.Sprintf("%s fork %d", context, i)

		// A fork with no checks always passes; anything after it is dead.
		if catchAll >= 0 {
			v.addError(fmt.Sprintf("%s is unreachable: fork %d has no checks and always matches", forkCtx, catchAll))
		}
		if len(fork.Checks) == 0 && catchAll < 0 {
			catchAll = i
		}

		for _, check := range fork.Checks {
			v.validateCheck(check, forkCtx)
		}
		v.validateLines(fork.Lines, forkCtx)
		v.validateActions(fork.Actions, forkCtx)
	}
}

func (v *DialogueValidator) validateLines(lines []dialogue.Line, context string) {
	for i, line := range lines {
		lineCtx := fmt.Sprintf("%s line %d", context, i)

		if line.Text == "" {
			v.addError(fmt.Sprintf("%s has empty text", lineCtx))
		}
		if line.Speaker != "" && line.Speaker != dialogue.SpeakerPlayer && line.Speaker != dialogue.SpeakerNPC {
			v.addError(fmt.Sprintf("%s has unknown speaker '%s'", lineCtx, line.Speaker))
		}

		seen := map[string]bool{}
		for _, opt := range line.Options {
			optCtx := fmt.Sprintf("%s option '%s'", lineCtx, opt.ID)

			if opt.ID == "" {
				v.addError(fmt.Sprintf("%s has an option with no id", lineCtx))
			} else if !isValidID(opt.ID) {
				v.addError(fmt.Sprintf("%s id should be lowercase snake_case", optCtx))
			}
			if seen[opt.ID] {
				v.addError(fmt.Sprintf("%s id is duplicated", optCtx))
			}
			seen[opt.ID] = true

			if opt.Text == "" {
				v.addError(fmt.Sprintf("%s has empty text", optCtx))
			}

			v.validateLines(opt.Lines, optCtx)
			v.validateActions(opt.Actions, optCtx)
			v.validateForks(opt.Branches, optCtx)
		}
	}
}

func (v *DialogueValidator) validateCheck(check dialogue.Check, context string) {
	switch check.Type {
	case dialogue.CheckHasItem:
		if check.ItemID == "" {
			v.addError(fmt.Sprintf("%s has_item check has no item_id", context))
		} else if !isValidID(check.ItemID) {
			v.addError(fmt.Sprintf("%s item_id '%s' should be lowercase snake_case", context, check.ItemID))
		}
	default:
		// Unknown checks fail closed at runtime; flag them here so a typo
		// doesn't silently disable a fork.
		v.addError(fmt.Sprintf("%s has unknown check type '%s' (will always fail)", context, check.Type))
	}
}

func (v *DialogueValidator) validateActions(actions []dialogue.Action, context string) {
	for i, action := range actions {
		actionCtx := fmt.Sprintf("%s action %d", context, i)

		switch action.Type {
		case dialogue.ActionGiveItem:
			if action.ItemID == "" {
				v.addError(fmt.Sprintf("%s give_item action has no item_id", actionCtx))
			} else if !isValidID(action.ItemID) {
				v.addError(fmt.Sprintf("%s item_id '%s' should be lowercase snake_case", actionCtx, action.ItemID))
			}
			if action.Amount < 0 {
				v.addError(fmt.Sprintf("%s has negative amount", actionCtx))
			}
		default:
			v.addError(fmt.Sprintf("%s has unknown action type '%s' (will be ignored)", actionCtx, action.Type))
		}
	}
}

func (v *DialogueValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
