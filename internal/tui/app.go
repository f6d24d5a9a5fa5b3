package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/weatherboard/internal/board"
	"github.com/pders01/weatherboard/internal/config"
	"github.com/pders01/weatherboard/internal/debuglog"
	"github.com/pders01/weatherboard/internal/launcher"
	"github.com/pders01/weatherboard/internal/lookup"
)

const (
	statusTTL  = 3 * time.Second
	cardGutter = 3
	// border plus five content lines
	cardHeight = 7
)

type App struct {
	config          *config.Config
	board           *board.Board
	pipeline        *lookup.Pipeline
	launcher        *launcher.Launcher
	keyHandler      *KeyHandler
	input           textinput.Model
	spinner         spinner.Model
	viewport        viewport.Model
	help            help.Model
	view            View
	focus           focus
	selected        int
	detailID        string
	rendering       bool
	cancel          context.CancelFunc
	status          string
	statusKind      StatusKind
	statusSeq       int
	width           int
	height          int
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, pipeline *lookup.Pipeline, l *launcher.Launcher) *App {
	ApplyColors(cfg.UI.Colors)

	ti := textinput.New()
	ti.Placeholder = MsgInputHint
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		config:   cfg,
		board:    board.New(),
		pipeline: pipeline,
		launcher: l,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		view:     ViewBoard,
		focus:    focusInput,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		if a.view == ViewDetail {
			if r, ok := a.board.Find(a.detailID); ok {
				return a, a.renderDetail(r)
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case lookupFinishedMsg:
		a.finishLookup(msg)
		return a, nil

	case detailRenderedMsg:
		if a.view == ViewDetail && msg.id == a.detailID {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.rendering = false
		}
		return a, nil

	case mapOpenedMsg:
		if msg.err != nil {
			debuglog.Warnf("open map: %v", msg.err)
			return a, a.setStatus(msg.err.Error(), StatusError, statusTTL)
		}
		return a, a.setStatus(MsgOpened(truncateMiddle(msg.url, 60)), StatusSuccess, statusTTL)

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil

	case spinner.TickMsg:
		// Let the tick chain die once nothing is loading.
		if !a.board.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.view {
	case ViewDetail:
		if _, ok := msg.(tea.MouseMsg); ok {
			a.viewport, cmd = a.viewport.Update(msg)
		}
	case ViewBoard:
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width
	a.viewport.Width = width
	a.viewport.Height = a.contentHeight()

	inputWidth := width - 8
	if inputWidth > 48 {
		inputWidth = 48
	}
	if inputWidth < 10 {
		inputWidth = 10
	}
	a.input.Width = inputWidth
}

// contentHeight leaves room for the separator and status bar.
func (a *App) contentHeight() int {
	h := a.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// submit starts a pipeline run for the current query. It is a no-op while a
// run is in flight or when the query is empty.
func (a *App) submit() tea.Cmd {
	a.board.SetQuery(a.input.Value())
	tok, ok := a.board.Begin()
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	debuglog.WithFields(map[string]interface{}{
		"city":  a.board.Query,
		"token": uint64(tok),
	}).Debugf("lookup started")

	return tea.Batch(a.spinner.Tick, a.runLookup(ctx, tok, a.board.Query))
}

func (a *App) cancelLookup() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) finishLookup(msg lookupFinishedMsg) {
	current := a.board.Finish(msg.token)
	if current && a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	outcome := lookup.Classify(msg.err)
	log := debuglog.WithFields(map[string]interface{}{
		"city":    msg.city,
		"token":   uint64(msg.token),
		"outcome": outcome.String(),
	})
	if !current {
		log.Debugf("completion for stale token")
	}

	switch outcome {
	case lookup.Success:
		r := a.board.Append(msg.reading)
		log.Infof("appended reading %s", r.ID)
	case lookup.NotFound:
		a.board.ShowNotFound()
	case lookup.Skipped:
	default:
		log.Warnf("lookup failed: %v", msg.err)
	}
}

func (a *App) setStatus(text string, kind StatusKind, ttl time.Duration) tea.Cmd {
	a.statusSeq++
	seq := a.statusSeq
	a.status = text
	a.statusKind = kind
	if ttl <= 0 {
		return nil
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// columns picks how many cards fit side by side, capped by ui.columns.
func (a *App) columns() int {
	cols := a.width / (a.cardWidth() + cardGutter)
	if cols > a.config.UI.Columns {
		cols = a.config.UI.Columns
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// cardWidth is ui.card_width, floored for configs that skipped Validate.
func (a *App) cardWidth() int {
	return max(a.config.UI.CardWidth, config.MinCardWidth)
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewDetail:
		if a.rendering {
			content = renderCentered(a.width, a.contentHeight(), renderMuted(MsgRendering))
		} else {
			content = a.viewport.View()
		}
	default:
		content = a.boardView()
	}

	separatorWidth := a.width - 1
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Left, content, separator, a.getCustomStatusBar())
}

func (a *App) boardView() string {
	label := MsgButtonIdle
	if a.board.Loading() {
		label = a.spinner.View() + " " + MsgButtonLoading
	}

	parts := []string{
		renderHeader("› "+AppName, "current weather by city", a.width),
		"",
		renderInputFrame(a.input.View(), a.focus == focusInput, a.input.Width),
		renderButton(label, a.board.Loading()),
		"",
	}

	if a.board.ModalVisible() {
		parts = append(parts, a.modalView(), "")
	}

	used := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, parts...))
	if a.board.Len() == 0 {
		parts = append(parts, renderMuted(MsgEmptyBoard))
	} else {
		parts = append(parts, a.renderGrid(a.contentHeight()-used))
	}

	h := a.contentHeight()
	return lipgloss.NewStyle().
		Width(a.width).
		Height(h).
		MaxHeight(h).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (a *App) modalView() string {
	width := a.width - 6
	if width > 40 {
		width = 40
	}
	if width < 20 {
		width = 20
	}

	body := lipgloss.JoinVertical(
		lipgloss.Center,
		ModalTextStyle.Render(MsgCityNotFound),
		"",
		ButtonStyle.Render("[ "+MsgClose+" ]"),
		"",
		renderHelp("enter/esc: close"),
	)
	return ModalStyle.Width(width).Render(body)
}

// renderGrid lays cards out row by row and scrolls so the selected row
// stays inside height.
func (a *App) renderGrid(height int) string {
	readings := a.board.Readings()
	cols := a.columns()

	maxRows := height / cardHeight
	if maxRows < 1 {
		maxRows = 1
	}
	firstRow := 0
	if selRow := a.selected / cols; selRow >= maxRows {
		firstRow = selRow - maxRows + 1
	}

	var rows []string
	for start := firstRow * cols; start < len(readings) && len(rows) < maxRows; start += cols {
		end := min(start+cols, len(readings))
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			selected := a.focus == focusCards && i == a.selected
			cells = append(cells, lipgloss.NewStyle().
				MarginRight(1).
				Render(a.renderCard(readings[i], selected)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderCard(r board.Reading, selected bool) string {
	width := a.cardWidth()
	inner := width - 2

	title := lipgloss.NewStyle().
		Width(inner - 1).
		Render(CardTitleStyle.Render(truncateEnd(r.City, inner-2)))

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, renderMuted("×")),
		"",
		CardLabelStyle.Render("Temperature:") + " " + r.TemperatureText(),
		CardLabelStyle.Render("Wind speed:") + " " + r.WindspeedText(),
		CardLabelStyle.Render("Time:") + " " + TimeStyle.Render(r.Time),
	}

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) getCustomStatusBar() string {
	if a.status != "" {
		return StatusBarStyle.
			Width(a.width).
			Render(a.statusKind.style().Render(a.status))
	}

	text := a.help.ShortHelpView(a.keyHandler.GetHelpForCurrentView())
	if n := a.board.Len(); n > 0 && a.view == ViewBoard {
		text = MsgReadingsCount(n) + " • " + text
	}

	return StatusBarStyle.
		Width(a.width).
		Render(text)
}
