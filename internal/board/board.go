// Package board holds the client-side state of the weather board: the
// pending query, the ordered result list, the in-flight lookup token and
// the not-found modal. It has no I/O; the TUI drives it from its Update loop.
package board

import (
	"github.com/google/uuid"
)

// Token identifies one lookup pipeline run. The zero Token never refers to
// a run.
type Token uint64

// Board is not safe for concurrent use. All mutation is expected to happen
// on the UI event loop.
type Board struct {
	Query string

	readings     []Reading
	generation   Token
	inflight     Token
	modalVisible bool
}

func New() *Board {
	return &Board{}
}

// SetQuery replaces the pending city name verbatim.
func (b *Board) SetQuery(q string) {
	b.Query = q
}

// Readings returns a copy of the result list in arrival order.
func (b *Board) Readings() []Reading {
	out := make([]Reading, len(b.readings))
	copy(out, b.readings)
	return out
}

func (b *Board) Len() int { return len(b.readings) }

// At returns the reading currently at position i.
func (b *Board) At(i int) (Reading, bool) {
	if i < 0 || i >= len(b.readings) {
		return Reading{}, false
	}
	return b.readings[i], true
}

// Find returns the reading with the given ID.
func (b *Board) Find(id string) (Reading, bool) {
	for _, r := range b.readings {
		if r.ID == id {
			return r, true
		}
	}
	return Reading{}, false
}

// Loading reports whether a lookup token is outstanding.
func (b *Board) Loading() bool {
	return b.inflight != 0
}

// InFlight returns the outstanding token, or zero.
func (b *Board) InFlight() Token {
	return b.inflight
}

// Begin starts a pipeline run and returns its token. It returns false when
// the query is empty or another run is already in flight; in both cases
// nothing changes.
func (b *Board) Begin() (Token, bool) {
	if b.Query == "" || b.inflight != 0 {
		return 0, false
	}
	b.generation++
	b.inflight = b.generation
	return b.inflight, true
}

// Finish releases the loading state for tok. A stale token leaves a newer
// in-flight run untouched and reports false.
func (b *Board) Finish(tok Token) bool {
	if tok == 0 || tok != b.inflight {
		return false
	}
	b.inflight = 0
	return true
}

// Append adds r at the end of the list, assigning an ID if it has none.
func (b *Board) Append(r Reading) Reading {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	b.readings = append(b.readings, r)
	return r
}

// Remove deletes the reading with the given ID, preserving the order of
// the rest.
func (b *Board) Remove(id string) bool {
	for i := range b.readings {
		if b.readings[i].ID == id {
			b.deleteAt(i)
			return true
		}
	}
	return false
}

// RemoveAt deletes whatever reading is at position i right now.
func (b *Board) RemoveAt(i int) bool {
	if i < 0 || i >= len(b.readings) {
		return false
	}
	b.deleteAt(i)
	return true
}

func (b *Board) deleteAt(i int) {
	next := make([]Reading, 0, len(b.readings)-1)
	next = append(next, b.readings[:i]...)
	next = append(next, b.readings[i+1:]...)
	b.readings = next
}

func (b *Board) ModalVisible() bool {
	return b.modalVisible
}

// ShowNotFound raises the failure modal.
func (b *Board) ShowNotFound() {
	b.modalVisible = true
}

// DismissModal hides the failure modal. It is the only way to clear it.
func (b *Board) DismissModal() {
	b.modalVisible = false
}
