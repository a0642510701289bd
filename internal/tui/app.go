// Package tui provides the interactive Bubble Tea interface for finbuddy.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/config"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indexes, in components.Tabs order.
const (
	tabBudget = iota
	tabGoals
	tabChat
	tabLearn
	tabAfford
	tabTips
	tabHealth
	tabBadges
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	scrollOverhead    = 6 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1
	minContentHeight  = 5

	flashDuration = 4 * time.Second
)

// Options configures the app.
type Options struct {
	// LLMTimeout bounds each model-backed action. Zero means no deadline.
	LLMTimeout time.Duration
	// FirstRun opens the setup form before the main view.
	FirstRun bool
}

// guardedSession serializes session access between the UI goroutine and
// the commands that run model-backed actions.
type guardedSession struct {
	mu   sync.Mutex
	sess *session.Session
}

func (g *guardedSession) do(fn func(s *session.Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.sess)
}

// actionDoneMsg is sent when a background session action finishes.
type actionDoneMsg struct {
	apply func(*App)
	err   error
}

// EventMsg wraps an achievement engine event.
type EventMsg struct {
	Event gamify.Event
}

type flashExpiredMsg struct {
	seq int
}

// App is the root Bubble Tea model.
type App struct {
	guard       *guardedSession
	engine      *gamify.Engine
	snap        session.Snapshot
	opts        Options
	events      <-chan gamify.Event
	unsubscribe func()

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int

	// Model call in flight
	busy    string
	spinner spinner.Model

	flash    string
	flashErr bool
	flashSeq int

	// Action form (huh) shown in the content area
	form     *huh.Form
	formName string
	formVals *formValues
	onSubmit func(a *App, v *formValues) tea.Cmd

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues

	chatInput  textinput.Model
	chatActive bool

	// Per-tab results
	budgetAdvice  *advisor.Reply
	goalCursor    int
	goalTips      *goalTips
	lessonCursor  int
	lesson        *session.Lesson
	quizResult    *session.QuizResult
	quizRaw       string
	affordItem    string
	affordRes     *session.AffordResult
	tipCursor     int
	tip           *session.TipResult
	challengeDone bool
	healthRep     *session.HealthReport
	healthPlan    *advisor.Reply

	// Progress after each engine event, oldest first.
	trail []float64
}

type goalTips struct {
	goal  string
	reply advisor.Reply
}

// NewApp creates the TUI for sess. Close must be called after the program
// exits.
func NewApp(sess *session.Session, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Yellow).Background(theme.Active.Surface)

	ti := textinput.New()
	ti.Placeholder = "Ask about budgeting, saving or investing"
	ti.CharLimit = 500
	ti.Prompt = "> "

	events, unsubscribe := sess.Engine().Subscribe()

	a := App{
		guard:       &guardedSession{sess: sess},
		engine:      sess.Engine(),
		opts:        opts,
		events:      events,
		unsubscribe: unsubscribe,
		spinner:     sp,
		chatInput:   ti,
	}
	if opts.FirstRun {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}
		vals := SetupValuesFrom(cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals, cfg.LLM.APIKey)
	}
	a.refresh()
	return a
}

// Close stops the event subscription.
func (a App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		waitForEvent(a.events),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// refresh re-reads the session snapshot the views render from.
func (a *App) refresh() {
	a.guard.do(func(s *session.Session) {
		a.snap = s.Snapshot()
	})
	events := a.engine.Events()
	a.trail = make([]float64, 0, len(events))
	for _, ev := range events {
		a.trail = append(a.trail, ev.Progress)
	}
	if a.goalCursor >= len(a.snap.Goals) {
		a.goalCursor = len(a.snap.Goals) - 1
	}
	if a.goalCursor < 0 {
		a.goalCursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		a.chatInput.Width = a.contentWidth() - 8
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			a.scrollBy(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case actionDoneMsg:
		a.busy = ""
		hadForm := a.form != nil
		if msg.apply != nil {
			msg.apply(&a)
		}
		a.refresh()
		if msg.err != nil {
			return a, a.setFlash(errorText(msg.err), true)
		}
		if a.form != nil && !hadForm {
			return a, a.form.Init()
		}
		return a, nil

	case EventMsg:
		cmds := []tea.Cmd{waitForEvent(a.events)}
		switch msg.Event.Type {
		case gamify.EventBadgeAwarded:
			if b := msg.Event.Badge; b != nil {
				cmds = append(cmds, a.setFlash(fmt.Sprintf("%s Badge earned: %s", b.Emoji, b.Name), false))
			}
		case gamify.EventLevelUp:
			cmds = append(cmds, a.setFlash(fmt.Sprintf("⭐ Level up! You reached level %d", msg.Event.Level), false))
		}
		return a, tea.Batch(cmds...)

	case flashExpiredMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
		}
		return a, nil

	case spinner.TickMsg:
		if a.busy != "" {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whatever has focus
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.form != nil:
		return a.updateForm(msg)
	case a.chatActive:
		var cmd tea.Cmd
		a.chatInput, cmd = a.chatInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Forms and the chat input intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.chatActive {
		return a.updateChatInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	n := len(components.Tabs)
	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.switchTab((a.activeTab - 1 + n) % n)
		return a, nil
	case "right", "tab":
		a.switchTab((a.activeTab + 1) % n)
		return a, nil
	case "J":
		a.scrollBy(1)
		return a, nil
	case "K":
		a.scrollBy(-1)
		return a, nil
	case "ctrl+d":
		a.scrollBy(a.halfPage())
		return a, nil
	case "ctrl+u":
		a.scrollBy(-a.halfPage())
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.switchTab(idx)
			return a, nil
		}
	}

	// Session actions wait for the model call in flight
	if a.busy != "" {
		return a, nil
	}

	switch a.activeTab {
	case tabBudget:
		return a.updateBudgetKey(key)
	case tabGoals:
		return a.updateGoalsKey(key)
	case tabChat:
		return a.updateChatKey(key)
	case tabLearn:
		return a.updateLearnKey(key)
	case tabAfford:
		return a.updateAffordKey(key)
	case tabTips:
		return a.updateTipsKey(key)
	case tabHealth:
		return a.updateHealthKey(key)
	}
	return a, nil
}

func (a *App) switchTab(idx int) {
	if idx != a.activeTab {
		a.activeTab = idx
		a.scroll = 0
	}
}

func (a *App) scrollBy(n int) {
	a.scroll += n
	if a.scroll < 0 {
		a.scroll = 0
	}
}

func (a App) halfPage() int {
	return max((a.height-scrollOverhead)/2, minHalfPageScroll)
}

// setFlash shows msg in the header row until it expires.
func (a *App) setFlash(msg string, isErr bool) tea.Cmd {
	a.flashSeq++
	a.flash = msg
	a.flashErr = isErr
	seq := a.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// runAction runs fn off the UI goroutine with the session locked. fn
// returns a function that stores its result on the app.
func (a *App) runAction(label string, fn func(ctx context.Context, s *session.Session) (func(*App), error)) tea.Cmd {
	a.busy = label
	g, timeout := a.guard, a.opts.LLMTimeout
	call := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		var (
			apply func(*App)
			err   error
		)
		g.do(func(s *session.Session) {
			apply, err = fn(ctx, s)
		})
		return actionDoneMsg{apply: apply, err: err}
	}
	return tea.Batch(call, a.spinner.Tick)
}

// mutate runs a quick session change on the UI goroutine.
func (a *App) mutate(fn func(s *session.Session) error) tea.Cmd {
	var err error
	a.guard.do(func(s *session.Session) {
		err = fn(s)
	})
	if err != nil {
		return a.setFlash(errorText(err), true)
	}
	a.refresh()
	return nil
}

// errorText turns a session error into a one-line message.
func errorText(err error) string {
	var qe *learn.QuizParseError
	if errors.As(err, &qe) {
		return "The quiz reply could not be read. Try again."
	}
	msg := err.Error()
	return strings.TrimPrefix(msg, session.ErrInvalidInput.Error()+": ")
}

func waitForEvent(ch <-chan gamify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg{Event: ev}
	}
}

// ─── Forms ──────────────────────────────────────────────────────

// openForm shows f in the content area. submit runs once the form completes.
func (a *App) openForm(title string, f *huh.Form, vals *formValues, submit func(a *App, v *formValues) tea.Cmd) tea.Cmd {
	a.formName = title
	a.form = f.WithTheme(huh.ThemeDracula()).WithShowHelp(true).WithWidth(a.formWidth())
	a.formVals = vals
	a.onSubmit = submit
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formName = ""
	a.formVals = nil
	a.onSubmit = nil
}

func (a App) formWidth() int {
	return max(components.CardInnerWidth(a.contentWidth())-2, 40)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.closeForm()
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit, vals := a.onSubmit, a.formVals
		a.closeForm()
		return a, submit(&a, vals)
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		flash := a.saveSetupConfig()
		a.setupForm = nil
		a.setupVals = nil
		return a, flash
	case huh.StateAborted:
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetupConfig() tea.Cmd {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	ApplySetup(&cfg, *a.setupVals)
	theme.SetActive(cfg.Appearance.Theme)

	if err := config.Save(cfg); err != nil {
		return a.setFlash("Could not save config: "+err.Error(), true)
	}
	if strings.TrimSpace(a.setupVals.APIKey) != "" && !a.snap.Online {
		return a.setFlash("Saved. Restart finbuddy to use the new API key.", false)
	}
	return a.setFlash("Saved to "+config.Path(), false)
}

// ─── Layout ─────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finbuddy needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"b g c l a t h x", "Jump to tab"},
			{"← → / tab", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"J K", "Scroll content"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Actions", [][2]string{
			{"n", "Add (income, goal, purchase check)"},
			{"e", "Add expense"},
			{"v", "Budget advice"},
			{"f d p", "Fund / delete / tips for goal"},
			{"p", "Improvement plan (Health tab)"},
			{"enter", "Open lesson, tip or chat input"},
			{"z", "Take the selected quiz"},
			{"s", "Calculate health score"},
			{"w", "Complete weekly challenge"},
			{"esc", "Close form or chat input"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-16s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + info row
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderInfoRow(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.Status{
		Level:    a.snap.Level,
		Progress: a.snap.Progress,
		Online:   a.snap.Online,
		Busy:     a.busy,
		Spinner:  a.spinner.View(),
		Hints:    a.tabHints(),
	})

	// 3. Content zone height
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	// 4. Tab content, or the open form
	var content string
	if a.form != nil {
		content = components.ContentCard(a.formName, a.form.View(), cw)
	} else {
		switch a.activeTab {
		case tabBudget:
			content = a.renderBudgetTab(cw)
		case tabGoals:
			content = a.renderGoalsTab(cw)
		case tabChat:
			content = a.renderChatTab(cw, contentH)
		case tabLearn:
			content = a.renderLearnTab(cw)
		case tabAfford:
			content = a.renderAffordTab(cw)
		case tabTips:
			content = a.renderTipsTab(cw)
		case tabHealth:
			content = a.renderHealthTab(cw)
		case tabBadges:
			content = a.renderBadgesTab(cw)
		}
		if a.activeTab != tabChat {
			content = scrollLines(content, a.scroll)
		}
	}

	// 5. Truncate + pad to exactly contentH lines, filled with background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderInfoRow(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	row := dim.Render(" ") + accent.Render("◈ FinBuddy") +
		dim.Render(fmt.Sprintf(" │ %d badges │ level %d", len(a.snap.Badges), a.snap.Level))
	if a.flash != "" {
		color := t.Green
		if a.flashErr {
			color = t.Red
		}
		row += dim.Render(" │ ") + lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(a.flash)
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(row)
}

func (a App) tabHints() string {
	if a.form != nil {
		return "[esc]cancel"
	}
	switch a.activeTab {
	case tabBudget:
		return "[n]income [e]xpense [v]advice"
	case tabGoals:
		return "[n]ew [f]und [d]elete [p]tips"
	case tabChat:
		if a.chatActive {
			return "[enter]send [esc]done"
		}
		return "[enter]type"
	case tabLearn:
		return "[enter]lesson [z]quiz"
	case tabAfford:
		return "[n]ew check"
	case tabTips:
		return "[enter]tip [w]challenge done"
	case tabHealth:
		return "[s]core [p]lan"
	}
	return ""
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

// replyBody renders a model or fallback answer wrapped to width.
func replyBody(r advisor.Reply, width int) string {
	t := theme.Active
	text := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width).Render(r.Text)
	if r.Warning != "" {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Width(width).Render("⚠ " + r.Warning)
		text = warn + "\n\n" + text
	}
	if r.Source == advisor.SourceCache {
		text += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("(cached answer)")
	}
	return text
}

func mutedText(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(s)
}

func scrollLines(s string, offset int) string {
	if offset <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if offset >= len(lines) {
		offset = len(lines) - 1
	}
	return strings.Join(lines[offset:], "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
