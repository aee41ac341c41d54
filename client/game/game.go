package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbodonnell/textquest/client/app"
	"github.com/cbodonnell/textquest/client/flow"
	"github.com/cbodonnell/textquest/client/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = 100 * time.Millisecond

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	statusStyle  = lipgloss.NewStyle().Faint(true)
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	gameStyle    = lipgloss.NewStyle()
	systemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
	promptStyle  = lipgloss.NewStyle().Bold(true)
	winnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	windowsOrder = []string{state.WindowGameFlow, state.WindowInventory}
)

type tickMsg time.Time

// Game is the terminal front end. It only reads store fields and calls their
// setters; all network work goes through the controller.
type Game struct {
	app    *app.App
	width  int
	height int
}

func NewGame(a *app.App) *Game {
	return &Game{app: a}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (g *Game) Init() tea.Cmd {
	return tick()
}

func (g *Game) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tickMsg:
		g.app.Controller.Update()
		return g, tick()
	case tea.WindowSizeMsg:
		g.width, g.height = m.Width, m.Height
	case tea.KeyMsg:
		return g.handleKey(m)
	}
	return g, nil
}

func (g *Game) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := g.app.Session
	switch m.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return g, tea.Quit
	case tea.KeyCtrlR:
		g.app.Controller.Reset()
	case tea.KeyTab:
		g.nextWindow()
	case tea.KeyEnter:
		g.app.Controller.Submit()
	case tea.KeyBackspace:
		input := []rune(session.UserInput())
		if len(input) > 0 {
			session.SetUserInput(string(input[:len(input)-1]))
		}
	case tea.KeyCtrlU:
		session.ClearUserInput()
	case tea.KeySpace:
		session.SetUserInput(session.UserInput() + " ")
	case tea.KeyRunes:
		session.SetUserInput(session.UserInput() + string(m.Runes))
	}
	return g, nil
}

func (g *Game) nextWindow() {
	current := g.app.Location.CurrentWindow()
	next := windowsOrder[0]
	for i, w := range windowsOrder {
		if w == current {
			next = windowsOrder[(i+1)%len(windowsOrder)]
			break
		}
	}
	g.app.Location.SetCurrentWindow(next)
	if next == state.WindowInventory {
		g.app.Controller.RefreshInventory()
	}
}

func (g *Game) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s | %s", g.app.Location.CurrentWindow(), g.app.Location.CurrentLocation())))
	b.WriteString("\n\n")

	switch g.app.Location.CurrentWindow() {
	case state.WindowInventory:
		inventory := g.app.Controller.Inventory()
		if inventory == "" {
			inventory = "Loading inventory..."
		}
		b.WriteString(inventory)
		b.WriteString("\n")
	default:
		b.WriteString(g.transcript())
	}

	b.WriteString("\n")
	switch g.app.Controller.Mode() {
	case flow.GameModeWaiting:
		b.WriteString(statusStyle.Render("Thinking..."))
	case flow.GameModeWon:
		b.WriteString(winnerStyle.Render("You won! ctrl+r to play again."))
	default:
		b.WriteString(promptStyle.Render("> ") + g.app.Session.UserInput())
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("enter: send  tab: switch window  ctrl+r: reset  esc: quit"))
	return b.String()
}

func (g *Game) transcript() string {
	msgs := g.app.Session.Messages()
	if g.height > 6 && len(msgs) > g.height-6 {
		msgs = msgs[len(msgs)-(g.height-6):]
	}

	var b strings.Builder
	for _, m := range msgs {
		switch m.Role {
		case state.RoleUser:
			b.WriteString(userStyle.Render("> " + m.Text))
		case state.RoleSystem:
			b.WriteString(systemStyle.Render(m.Text))
		default:
			b.WriteString(gameStyle.Render(m.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}
