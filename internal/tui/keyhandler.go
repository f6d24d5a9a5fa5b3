package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/weatherboard/internal/config"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: modifierKey,
		keys:        newKeyMap(modifierKey),
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return kh.quit()
	}

	if kh.app.view == ViewDetail {
		return kh.handleDetailKeys(msg)
	}

	// The modal only claims its own keys; everything else falls through.
	if kh.app.board.ModalVisible() && key.Matches(msg, kh.keys.Dismiss) {
		kh.app.board.DismissModal()
		return kh.app, nil
	}

	if kh.app.board.Loading() && key.Matches(msg, kh.keys.Cancel) {
		kh.app.cancelLookup()
		return kh.app, kh.app.setStatus(MsgCancelling, StatusWarn, statusTTL)
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCardKeys(msg); handled {
		return model, cmd
	}

	return kh.app, nil
}

func (kh *KeyHandler) isInTextInputMode() bool {
	return kh.app.view == ViewBoard && kh.app.focus == focusInput
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, kh.keys.Submit):
		return kh.app, kh.app.submit()
	case key.Matches(msg, kh.keys.Focus), msg.String() == "down":
		if kh.app.board.Len() > 0 {
			kh.focusCards()
			return kh.app, nil
		}
		return kh.app, nil
	case msg.String() == "esc":
		return kh.app, nil
	default:
		return kh.delegateToTextInput(msg)
	}
}

// delegateToTextInput passes the key to the input and mirrors its value into
// the pending query.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	newInput, cmd := kh.app.input.Update(msg)
	kh.app.input = newInput
	kh.app.board.SetQuery(kh.app.input.Value())
	return kh.app, cmd
}

func (kh *KeyHandler) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	cols := kh.app.columns()

	switch {
	case key.Matches(msg, kh.keys.Quit):
		model, cmd := kh.quit()
		return model, cmd, true
	case key.Matches(msg, kh.keys.Focus), key.Matches(msg, kh.keys.Back):
		return kh.app, kh.focusInput(), true
	case key.Matches(msg, kh.keys.Up):
		if kh.app.selected-cols < 0 {
			return kh.app, kh.focusInput(), true
		}
		kh.moveSelection(-cols)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Down):
		kh.moveSelection(cols)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Left):
		kh.moveSelection(-1)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Right):
		kh.moveSelection(1)
		return kh.app, nil, true
	case key.Matches(msg, kh.keys.Remove):
		return kh.app, kh.removeSelected(), true
	case key.Matches(msg, kh.keys.Detail):
		model, cmd := kh.openDetail()
		return model, cmd, true
	default:
		return kh.app, nil, false
	}
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, kh.keys.Quit):
		return kh.quit()
	case key.Matches(msg, kh.keys.Back):
		return kh.navigateBack()
	case key.Matches(msg, kh.keys.OpenMap):
		if r, ok := kh.app.board.Find(kh.app.detailID); ok {
			return kh.app, kh.app.openMap(r)
		}
		return kh.app, nil
	default:
		newViewport, cmd := kh.app.viewport.Update(msg)
		kh.app.viewport = newViewport
		return kh.app, cmd
	}
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	kh.app.view = ViewBoard
	kh.app.detailID = ""
	kh.app.rendering = false
	return kh.app, nil
}

func (kh *KeyHandler) openDetail() (tea.Model, tea.Cmd) {
	r, ok := kh.app.board.At(kh.app.selected)
	if !ok {
		return kh.app, nil
	}
	kh.app.view = ViewDetail
	kh.app.detailID = r.ID
	kh.app.rendering = true
	return kh.app, kh.app.renderDetail(r)
}

// removeSelected dismisses the highlighted card by its ID.
func (kh *KeyHandler) removeSelected() tea.Cmd {
	r, ok := kh.app.board.At(kh.app.selected)
	if !ok {
		return nil
	}
	if !kh.app.board.Remove(r.ID) {
		return nil
	}

	if kh.app.board.Len() == 0 {
		kh.app.selected = 0
		return tea.Batch(kh.focusInput(), kh.app.setStatus(MsgRemoved(r.City), StatusInfo, statusTTL))
	}
	if kh.app.selected >= kh.app.board.Len() {
		kh.app.selected = kh.app.board.Len() - 1
	}
	return kh.app.setStatus(MsgRemoved(r.City), StatusInfo, statusTTL)
}

func (kh *KeyHandler) moveSelection(delta int) {
	next := kh.app.selected + delta
	if next < 0 || next >= kh.app.board.Len() {
		return
	}
	kh.app.selected = next
}

func (kh *KeyHandler) focusCards() {
	kh.app.focus = focusCards
	kh.app.input.Blur()
	if kh.app.selected >= kh.app.board.Len() {
		kh.app.selected = 0
	}
}

func (kh *KeyHandler) focusInput() tea.Cmd {
	kh.app.focus = focusInput
	return kh.app.input.Focus()
}

func (kh *KeyHandler) quit() (tea.Model, tea.Cmd) {
	kh.app.cancelLookup()
	return kh.app, tea.Quit
}

// GetHelpForCurrentView returns the bindings shown in the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []key.Binding {
	if kh.app.view == ViewDetail {
		return []key.Binding{kh.keys.OpenMap, kh.keys.Back, kh.keys.Quit}
	}

	var help []key.Binding
	if kh.app.board.ModalVisible() {
		help = append(help, kh.keys.Dismiss)
	} else if kh.app.board.Loading() {
		help = append(help, kh.keys.Cancel)
	}

	if kh.app.focus == focusInput {
		if !kh.app.board.Loading() && !kh.app.board.ModalVisible() {
			help = append(help, kh.keys.Submit)
		}
		if kh.app.board.Len() > 0 {
			help = append(help, kh.keys.Focus)
		}
		return help
	}

	return append(help,
		kh.keys.Up, kh.keys.Down, kh.keys.Left, kh.keys.Right,
		kh.keys.Detail, kh.keys.Remove, kh.keys.Focus, kh.keys.Quit)
}
