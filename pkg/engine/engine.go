// Package engine implements the dialogue playback state machine: it walks
// resolved conversation trees one line at a time, consumes option
// selections, and fires deferred actions when a conversation completes.
package engine

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talekeep/dialogue-engine/pkg/bus"
	"github.com/talekeep/dialogue-engine/pkg/dialogue"
	"github.com/talekeep/dialogue-engine/pkg/inventory"
	"github.com/talekeep/dialogue-engine/pkg/locale"
)

// Topics groups the external signals the engine subscribes to. Both are
// optional; a nil topic is simply not wired.
type Topics struct {
	// Interaction begins a conversation. A trigger while a session is
	// active is dropped, not queued.
	Interaction *bus.Topic[InteractionEvent]

	// Inventory passively refreshes the cached snapshot, even outside an
	// active session.
	Inventory *bus.Topic[*inventory.Snapshot]
}

// Deps are the collaborators an Engine is built from. Repo, Inventory and
// Stage are required; the rest are optional.
type Deps struct {
	Repo       DialogueRepository
	Inventory  InventoryService
	Translator locale.Translator
	Stage      Stage
	World      World
	Notifier   InventoryNotifier
	Topics     Topics

	// Cooldown is applied to the stage on teardown to debounce the next
	// interaction. Zero disables it.
	Cooldown time.Duration

	Logger *slog.Logger
}

// Engine interprets dialogue documents against a live session.
//
// Start, Advance and SelectOption must be invoked serially from one
// logical thread of control; the engine carries no re-entrancy guard
// beyond the single-active-session rule.
type Engine struct {
	repo     DialogueRepository
	inv      InventoryService
	tr       locale.Translator
	stage    Stage
	world    World
	notifier InventoryNotifier
	cooldown time.Duration
	log      *slog.Logger

	sess *session

	// Inventory snapshot cache: fetched lazily at most once per session,
	// replaced by grants and by passive inventory broadcasts. snapMu
	// guards it because broadcasts arrive on a listener goroutine.
	snapMu   sync.Mutex
	snapshot *inventory.Snapshot
	fetched  bool

	unsubInteraction func()
	unsubInventory   func()
}

// session is the runtime state of one in-progress conversation. Its line
// list is a deep clone of the resolved tree fragment.
type session struct {
	id         uuid.UUID
	npcID      string
	npcName    string
	lines      []dialogue.Line
	index      int
	pending    []dialogue.Action
	shownFirst bool
}

// New constructs an engine and subscribes it to the configured topics.
// Call Close to release the subscriptions.
func New(deps Deps) *Engine {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		repo:     deps.Repo,
		inv:      deps.Inventory,
		tr:       deps.Translator,
		stage:    deps.Stage,
		world:    deps.World,
		notifier: deps.Notifier,
		cooldown: deps.Cooldown,
		log:      log,
	}

	if deps.Topics.Interaction != nil {
		e.unsubInteraction = deps.Topics.Interaction.Subscribe(func(ev InteractionEvent) {
			e.Start(context.Background(), ev.NPCID, ev.NPCName)
		})
	}
	if deps.Topics.Inventory != nil {
		e.unsubInventory = deps.Topics.Inventory.Subscribe(e.HandleInventoryUpdate)
	}

	return e
}

// Close releases topic subscriptions and clears any active session
// without executing its pending actions.
func (e *Engine) Close() {
	if e.unsubInteraction != nil {
		e.unsubInteraction()
		e.unsubInteraction = nil
	}
	if e.unsubInventory != nil {
		e.unsubInventory()
		e.unsubInventory = nil
	}
	if e.sess != nil {
		e.sess = nil
		e.stage.ExitConversation()
	}
}

// Active reports whether a conversation session is in progress.
func (e *Engine) Active() bool {
	return e.sess != nil
}

// Start begins a conversation with an NPC. It is a no-op when a session is
// already active, when no document exists for the NPC, or when the
// resolved line list is empty.
func (e *Engine) Start(ctx context.Context, npcID, npcName string) {
	if e.sess != nil {
		e.log.Debug("conversation already active, dropping start", "npc_id", npcID)
		return
	}
	if npcID == "" {
		return
	}

	doc, err := e.repo.GetDialogue(ctx, npcID)
	if err != nil {
		e.log.Error("failed to fetch dialogue", "npc_id", npcID, "error", err)
		return
	}
	if doc == nil {
		e.log.Debug("no dialogue for npc", "npc_id", npcID)
		return
	}

	e.snapMu.Lock()
	e.fetched = false
	e.snapMu.Unlock()

	res := dialogue.Resolve(doc, e.lazyView(ctx))
	if len(res.Lines) == 0 {
		e.log.Debug("dialogue resolved to no lines", "npc_id", npcID)
		return
	}

	focus, worldName := e.focusPoint(npcID)
	if npcName == "" {
		npcName = worldName
	}

	e.sess = &session{
		id:      uuid.New(),
		npcID:   npcID,
		npcName: npcName,
		lines:   dialogue.CloneLines(res.Lines),
		pending: dialogue.CloneActions(res.Actions),
	}
	e.log.Debug("conversation started",
		"session_id", e.sess.id,
		"npc_id", npcID,
		"lines", len(e.sess.lines),
		"pending_actions", len(e.sess.pending))

	e.stage.EnterConversation(focus)
	e.renderCurrent()
}

// Advance moves to the next line, or on the terminal line plays the end
// cue, executes pending actions in declaration order, and tears the
// session down. No-op when idle.
func (e *Engine) Advance(ctx context.Context) {
	if e.sess == nil {
		return
	}
	s := e.sess

	if s.index < len(s.lines)-1 {
		s.index++
		e.renderCurrent()
		return
	}

	e.stage.PlayEndCue()
	e.executeActions(ctx, s.pending)
	e.log.Debug("conversation finished", "session_id", s.id, "npc_id", s.npcID)
	e.teardown()
}

// SelectOption answers the current line with one of its options: the line
// is rewritten in place to a plain statement bearing the option's text,
// the option's resolved continuation is spliced in after it, and its
// actions join the pending queue. No-op when idle, when the current line
// has no options, or when the id does not match.
func (e *Engine) SelectOption(ctx context.Context, optionID string) {
	if e.sess == nil {
		return
	}
	s := e.sess

	line := &s.lines[s.index]
	opt := line.FindOption(optionID)
	if opt == nil {
		e.log.Debug("option not found on current line", "option_id", optionID)
		return
	}
	chosen := opt.Clone()

	line.Text = chosen.Text
	line.Options = nil
	line.HideSpeaker = nil

	res := dialogue.ResolveOption(&chosen, e.lazyView(ctx))
	s.lines = slices.Insert(s.lines, s.index+1, res.Lines...)
	s.pending = append(s.pending, res.Actions...)

	e.renderCurrent()
}

// HandleInventoryUpdate replaces the cached snapshot from an external
// inventory broadcast. Unlike the playback methods it is safe to call
// from other goroutines; in Redis mode the event listener delivers here.
func (e *Engine) HandleInventoryUpdate(snap *inventory.Snapshot) {
	e.setSnapshot(snap)
}

func (e *Engine) setSnapshot(snap *inventory.Snapshot) {
	e.snapMu.Lock()
	e.snapshot = snap
	e.snapMu.Unlock()
}

func (e *Engine) teardown() {
	e.sess = nil
	e.stage.ExitConversation()
	if e.cooldown > 0 {
		e.stage.SetInteractionCooldown(e.cooldown)
	}
}

// renderCurrent resolves display text for the current line and hands it to
// the stage. The advance cue plays before every line except the first of
// the session, so opening a conversation sounds different from advancing
// one.
func (e *Engine) renderCurrent() {
	s := e.sess
	line := s.lines[s.index]

	rl := RenderLine{
		Speaker:     line.Speaker,
		Name:        e.displayName(line),
		Text:        e.translate(line.Text, line.Text),
		Emotion:     line.Emotion,
		HideSpeaker: line.HidesSpeaker(),
	}
	for _, opt := range line.Options {
		rl.Options = append(rl.Options, RenderOption{
			ID:   opt.ID,
			Text: e.translate(opt.Text, opt.Text),
		})
	}

	if s.shownFirst {
		e.stage.PlayAdvanceCue()
	}
	s.shownFirst = true

	e.stage.RenderLine(rl)
}

func (e *Engine) displayName(line dialogue.Line) string {
	if line.Name != "" {
		return e.translate(line.Name, line.Name)
	}
	if line.Speaker == dialogue.SpeakerNPC {
		return e.sess.npcName
	}
	return e.translate("speaker.player", "You")
}

func (e *Engine) translate(key, fallback string) string {
	if e.tr == nil {
		return fallback
	}
	return e.tr.Translate(key, nil, fallback)
}

// focusPoint computes the camera focus midpoint between the player and the
// NPC, when both positions are known.
func (e *Engine) focusPoint(npcID string) (*Point, string) {
	if e.world == nil {
		return nil, ""
	}
	npcPos, name, ok := e.world.NPCPosition(npcID)
	if !ok {
		return nil, ""
	}
	p := e.world.PlayerPosition()
	return &Point{X: (p.X + npcPos.X) / 2, Y: (p.Y + npcPos.Y) / 2}, name
}

// lazyView defers the inventory fetch until a check actually needs it.
func (e *Engine) lazyView(ctx context.Context) dialogue.ItemView {
	return lazyView{e: e, ctx: ctx}
}

type lazyView struct {
	e   *Engine
	ctx context.Context
}

func (v lazyView) HasItem(itemID string) bool {
	return v.e.cachedSnapshot(v.ctx).HasItem(itemID)
}

// cachedSnapshot returns the session's inventory snapshot, fetching it at
// most once per session. A failed fetch leaves the cache nil, which fails
// all checks and blocks grants. The lock is held across the fetch so a
// concurrent broadcast cannot be clobbered by a staler fetch result.
func (e *Engine) cachedSnapshot(ctx context.Context) *inventory.Snapshot {
	e.snapMu.Lock()
	defer e.snapMu.Unlock()

	if e.snapshot != nil || e.fetched {
		return e.snapshot
	}
	e.fetched = true

	snap, err := e.inv.GetInventory(ctx)
	if err != nil {
		e.log.Warn("inventory fetch failed", "error", err)
		return nil
	}
	e.snapshot = snap
	return e.snapshot
}
