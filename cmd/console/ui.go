package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/talekeep/dialogue-engine/pkg/bus"
	"github.com/talekeep/dialogue-engine/pkg/engine"
)

// consoleStage implements the engine's Stage collaborator: rendered lines
// accumulate into a transcript the UI displays, cues become markers.
type consoleStage struct {
	transcript     []engine.RenderLine
	inConversation bool
	endCues        int
}

func newConsoleStage() *consoleStage {
	return &consoleStage{}
}

func (s *consoleStage) EnterConversation(focus *engine.Point) { s.inConversation = true }
func (s *consoleStage) ExitConversation()                     { s.inConversation = false }
func (s *consoleStage) SetInteractionCooldown(d time.Duration) {}
func (s *consoleStage) PlayAdvanceCue()                        {}
func (s *consoleStage) PlayEndCue()                            { s.endCues++ }

func (s *consoleStage) RenderLine(line engine.RenderLine) {
	// An option selection re-renders the answered line as a plain
	// statement; replace the option-bearing entry instead of appending.
	if n := len(s.transcript); n > 0 && len(s.transcript[n-1].Options) > 0 && len(line.Options) == 0 {
		s.transcript[n-1] = line
		return
	}
	s.transcript = append(s.transcript, line)
}

// current returns the most recent rendered line, or nil.
func (s *consoleStage) current() *engine.RenderLine {
	if len(s.transcript) == 0 {
		return nil
	}
	return &s.transcript[len(s.transcript)-1]
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	emotionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// ConsoleUI is the BubbleTea model that runs the dialogue console.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	eng          *engine.Engine
	stage        *consoleStage
	interactions *bus.Topic[engine.InteractionEvent]

	npcIDs      []string
	selectedNPC int
	showModal   bool

	viewport  viewport.Model
	ready     bool
	width     int
	height    int
	statusMsg string
}

func NewConsoleUI(eng *engine.Engine, stage *consoleStage, interactions *bus.Topic[engine.InteractionEvent], npcIDs []string) ConsoleUI {
	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		eng:          eng,
		stage:        stage,
		interactions: interactions,
		npcIDs:       npcIDs,
		viewport:     vp,
		showModal:    true,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - 4
		m.ready = true
		m.writeTranscript()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.showModal {
			return m.updateModal(msg)
		}
		return m.updateConversation(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedNPC > 0 {
			m.selectedNPC--
		}
	case "down", "j":
		if m.selectedNPC < len(m.npcIDs)-1 {
			m.selectedNPC++
		}
	case "enter":
		npcID := m.npcIDs[m.selectedNPC]
		m.interactions.Publish(engine.InteractionEvent{NPCID: npcID})
		if m.eng.Active() {
			m.showModal = false
			m.statusMsg = ""
		} else {
			m.statusMsg = fmt.Sprintf("%s has nothing to say", npcID)
		}
		m.writeTranscript()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m ConsoleUI) updateConversation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter", " ":
		if cur := m.stage.current(); cur != nil && len(cur.Options) > 0 {
			m.statusMsg = "choose an option (1-9)"
			break
		}
		m.eng.Advance(context.Background())

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cur := m.stage.current()
		if cur == nil || len(cur.Options) == 0 {
			break
		}
		n, _ := strconv.Atoi(key)
		if n > len(cur.Options) {
			break
		}
		m.eng.SelectOption(context.Background(), cur.Options[n-1].ID)
		m.statusMsg = ""

	case "ctrl+y":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			m.statusMsg = "copy failed"
		} else {
			m.statusMsg = "transcript copied"
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Conversation may have just ended; fall back to the NPC picker.
	if !m.eng.Active() {
		m.showModal = true
	}
	m.writeTranscript()
	return m, nil
}

func (m *ConsoleUI) writeTranscript() {
	if !m.ready {
		return
	}
	width := m.viewport.Width - 2

	var content strings.Builder
	content.WriteString(titleStyle.Render("DIALOGUE CONSOLE") + "\n\n")

	for i, line := range m.stage.transcript {
		style := npcStyle
		if line.Speaker == "player" {
			style = playerStyle
		}

		if !line.HideSpeaker && line.Name != "" {
			content.WriteString(speakerStyle.Render(line.Name+": "))
		}
		content.WriteString(style.Render(wordwrap.String(line.Text, width)))
		if line.Emotion != "" {
			content.WriteString(emotionStyle.Render(" (" + line.Emotion + ")"))
		}
		content.WriteString("\n")

		// Options only apply to the most recent line.
		if i == len(m.stage.transcript)-1 {
			for j, opt := range line.Options {
				content.WriteString(optionStyle.Render(fmt.Sprintf("  %d) %s", j+1, opt.Text)) + "\n")
			}
		}
		content.WriteString("\n")
	}

	if !m.stage.inConversation && len(m.stage.transcript) > 0 {
		content.WriteString(separatorStyle.Render(strings.Repeat("─", max(1, width-4))) + "\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m ConsoleUI) plainTranscript() string {
	var b strings.Builder
	for _, line := range m.stage.transcript {
		if line.Name != "" {
			b.WriteString(line.Name + ": ")
		}
		b.WriteString(line.Text + "\n")
	}
	return b.String()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showModal {
		var b strings.Builder
		b.WriteString(modalTitleStyle.Render("TALK TO...") + "\n\n")
		for i, id := range m.npcIDs {
			if i == m.selectedNPC {
				b.WriteString(modalSelectedItemStyle.Render("> "+id) + "\n")
			} else {
				b.WriteString(modalItemStyle.Render("  "+id) + "\n")
			}
		}
		b.WriteString("\n" + statusStyle.Render("enter: talk • q: quit"))
		if m.statusMsg != "" {
			b.WriteString("\n" + statusStyle.Render(m.statusMsg))
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
	}

	status := "enter: advance • 1-9: choose • ctrl+y: copy • ctrl+c: quit"
	if m.statusMsg != "" {
		status = m.statusMsg
	}

	return fmt.Sprintf("%s\n%s", m.viewport.View(), statusStyle.Render(status))
}
