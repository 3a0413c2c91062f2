// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okoshkin/trivtui/internal/deck"
	"github.com/okoshkin/trivtui/internal/identity"
	"github.com/okoshkin/trivtui/internal/model"
	"github.com/okoshkin/trivtui/internal/scoreboard"
	"github.com/okoshkin/trivtui/internal/session"
	"github.com/okoshkin/trivtui/internal/store"
	"github.com/okoshkin/trivtui/internal/trivia"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	pickedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boardRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

type questionsMsg struct {
	seq   int
	cards []model.Card
}

type fetchErrMsg struct {
	seq int
	err error
}

// Model implements the Bubble Tea quiz UI.
type Model struct {
	cfg     model.Config
	ids     *identity.Store
	scores  *store.Store
	client  *trivia.Client
	builder *deck.Builder

	sess session.Session

	nameInput textinput.Model
	spin      spinner.Model
	board     table.Model

	cards   []model.Card
	picks   map[int]int
	current int

	loading  bool
	fetchSeq int

	showBoard bool
	scoreText string
	alertText string
	fetchErr  string

	pending []tea.Cmd

	width  int
	height int
}

// NewModel constructs the quiz TUI model and runs the startup identity check.
func NewModel(cfg model.Config, ids *identity.Store, scores *store.Store, client *trivia.Client, builder *deck.Builder) *Model {
	m := &Model{
		cfg:     cfg,
		ids:     ids,
		scores:  scores,
		client:  client,
		builder: builder,
		picks:   map[int]int{},
	}
	m.nameInput = textinput.New()
	m.nameInput.Prompt = "Name: "
	m.nameInput.CharLimit = 0
	m.nameInput.Cursor.SetMode(cursor.CursorBlink)

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	m.board = table.New(table.WithColumns(scoreboard.Columns(60)))
	boardStyles := table.DefaultStyles()
	boardStyles.Selected = boardRowStyle
	m.board.SetStyles(boardStyles)
	m.refreshBoard()

	username, ok, err := ids.Get(identity.UsernameKey)
	if err != nil {
		logErrf("failed to read identity: %v\n", err)
		ok = false
	}
	next, effects := session.Reduce(session.Session{}, session.Loaded{Username: username, HasIdentity: ok})
	m.sess = next
	m.pending = m.applyEffects(effects)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.spin.Tick}, m.pending...)
	m.pending = nil
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case questionsMsg:
		// Stale completions from a superseded fetch are dropped.
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.cards = msg.cards
		m.picks = map[int]int{}
		m.current = 0
		return m.dispatch(session.QuestionsArrived{})
	case fetchErrMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.fetchErr = msg.err.Error()
		logErrf("failed to fetch questions: %v\n", msg.err)
		return m.dispatch(session.FetchFailed{})
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.sess.State == session.AwaitingIdentity {
			return m.updateIdentityKeys(msg)
		}
		return m.updateDeckKeys(msg)
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	sections := []string{m.renderHeader(), "", m.renderBody(), "", m.renderFooter()}
	return strings.Join(sections, "\n")
}

func (m *Model) updateIdentityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m.dispatch(session.Submit{TypedName: m.nameInput.Value()})
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateDeckKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showBoard {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.showBoard = false
			m.board.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.board, cmd = m.board.Update(msg)
			return m, cmd
		}
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.showBoard = true
		m.board.Focus()
		return m, nil
	case "n":
		return m.dispatch(session.NewPlayerPressed{})
	case "enter":
		return m.dispatch(session.Submit{})
	case "down", "j", "right", "l":
		m.moveCard(1)
		return m, nil
	case "up", "k", "left", "h":
		m.moveCard(-1)
		return m, nil
	default:
		if idx, ok := optionIndexForKey(msg.String()); ok {
			m.pickOption(idx)
		}
		return m, nil
	}
}

func optionIndexForKey(key string) (int, bool) {
	switch key {
	case "1", "a":
		return 0, true
	case "2", "b":
		return 1, true
	case "3", "c":
		return 2, true
	case "4", "d":
		return 3, true
	}
	return 0, false
}

func (m *Model) pickOption(idx int) {
	if len(m.cards) == 0 || m.current >= len(m.cards) {
		return
	}
	if idx < 0 || idx >= len(m.cards[m.current].Options) {
		return
	}
	// One pick per card; repicking replaces, as a radio group would.
	m.picks[m.current] = idx
}

func (m *Model) moveCard(delta int) {
	if len(m.cards) == 0 {
		return
	}
	next := m.current + delta
	if next < 0 {
		next = len(m.cards) - 1
	}
	if next >= len(m.cards) {
		next = 0
	}
	m.current = next
}

func (m *Model) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	next, effects := session.Reduce(m.sess, ev)
	m.sess = next
	cmds := m.applyEffects(effects)
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applyEffects(effects []session.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case session.ShowIdentityEntry:
			m.nameInput.Reset()
			m.nameInput.Focus()
			m.showBoard = false
			m.scoreText = ""
			m.alertText = ""
		case session.ShowDeck:
			m.nameInput.Blur()
			m.alertText = ""
		case session.StartFetch:
			if cmd := m.startFetch(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case session.PersistIdentity:
			if err := m.ids.Set(identity.UsernameKey, eff.Name, identity.UsernameDays); err != nil {
				logErrf("failed to persist identity: %v\n", err)
			}
		case session.RecordScore:
			m.recordScore(eff.Name)
		case session.ClearDeck:
			m.cards = nil
			m.picks = map[int]int{}
			m.current = 0
		case session.DeleteIdentity:
			if err := m.ids.Delete(identity.UsernameKey); err != nil {
				logErrf("failed to delete identity: %v\n", err)
			}
		case session.Alert:
			m.alertText = eff.Message
		case session.RefreshScoreboard:
			m.refreshBoard()
		}
	}
	return cmds
}

// startFetch issues a new fetch unless one is already in flight. The sequence
// number lets Update discard completions of superseded fetches.
func (m *Model) startFetch() tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.fetchErr = ""
	m.fetchSeq++
	seq := m.fetchSeq
	client := m.client
	builder := m.builder
	amount := m.cfg.Amount
	qtype := m.cfg.Type
	return func() tea.Msg {
		questions, err := client.Fetch(context.Background(), amount, qtype)
		if err != nil {
			return fetchErrMsg{seq: seq, err: err}
		}
		return questionsMsg{seq: seq, cards: builder.Build(questions)}
	}
}

func (m *Model) recordScore(name string) {
	score := session.Score(m.cards, m.picks)
	m.scoreText = fmt.Sprintf("Your score: %d/%d", score, len(m.cards))
	entry := model.ScoreEntry{
		Username:  name,
		Score:     score,
		Total:     len(m.cards),
		CreatedAt: time.Now(),
	}
	if err := m.scores.Append(context.Background(), entry); err != nil {
		logErrf("failed to save score: %v\n", err)
	}
}

func (m *Model) refreshBoard() {
	entries, err := m.scores.ListScores(context.Background())
	if err != nil {
		logErrf("failed to load scores: %v\n", err)
		return
	}
	m.board.SetRows(scoreboard.Rows(entries))
}

func (m *Model) updateLayout() {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	m.board.SetColumns(scoreboard.Columns(width))
	m.board.SetWidth(width)
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	m.board.SetHeight(height)
	promptWidth := lipgloss.Width(m.nameInput.Prompt)
	m.nameInput.Width = maxInt(10, m.width-promptWidth-2)
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("trivtui")
	player := ""
	if m.sess.Username != "" {
		player = headerStyle.Render("Player: " + m.sess.Username)
	}
	line := title
	if player != "" {
		line += "  " + player
	}
	if m.scoreText != "" {
		line += "  " + scoreStyle.Render(m.scoreText)
	}
	return line
}

func (m *Model) renderBody() string {
	if m.sess.State == session.AwaitingIdentity {
		lines := []string{
			promptStyle.Render("Welcome! Enter a name to start playing."),
			m.nameInput.View(),
		}
		if m.alertText != "" {
			lines = append(lines, errorStyle.Render(m.alertText))
		}
		return strings.Join(lines, "\n")
	}
	if m.showBoard {
		return m.board.View()
	}
	if m.loading {
		return m.spin.View() + " Fetching questions..."
	}
	if len(m.cards) == 0 {
		return headerStyle.Render("No questions loaded.")
	}
	return m.renderCard()
}

func (m *Model) renderCard() string {
	card := m.cards[m.current]
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 20 {
		contentWidth = 20
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Question %d of %d (%d answered)",
		m.current+1, len(m.cards), len(m.picks))))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render(wrapText(card.Prompt, contentWidth)))
	b.WriteString("\n\n")
	picked, hasPick := m.picks[m.current]
	for i, opt := range card.Options {
		marker := "( )"
		style := optionStyle
		if hasPick && picked == i {
			marker = "(x)"
			style = pickedStyle
		}
		line := fmt.Sprintf("%s %c. %s", marker, 'a'+i, opt.Label)
		b.WriteString(style.Render(wrapText(line, contentWidth)))
		if i < len(card.Options)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	help := "Pick: 1-4/a-d  Move: j/k  Submit: enter  Scores: tab  New player: n  Quit: q"
	if m.sess.State == session.AwaitingIdentity {
		help = "Start: enter  Quit: ctrl+c"
	}
	footer := footerStyle.Render(help)
	if m.fetchErr != "" {
		footer += "\n" + errorStyle.Render("Fetch failed: "+m.fetchErr)
	}
	return footer
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
