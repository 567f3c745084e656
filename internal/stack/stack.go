// Package stack holds the ordered collection of open dialogs and the rules
// that span more than one dialog: backdrop exclusivity and current resolution.
package stack

import (
	"slices"

	"github.com/jmylchreest/modalstack/internal/model"
)

// Stack is an ordered sequence of dialogs, oldest first, indexed by ID.
//
// Stack does no locking of its own. Its owner must serialize every call,
// including mutations of the records it returns.
type Stack struct {
	dialogs []*model.Dialog
	index   map[string]*model.Dialog
	nextSeq uint64
}

// New creates an empty Stack.
func New() *Stack {
	return &Stack{
		dialogs: make([]*model.Dialog, 0),
		index:   make(map[string]*model.Dialog),
	}
}

// Insert appends d to the stack.
//
// If d asks for a backdrop effect while another dialog already owns the
// backdrop, d is downgraded to EffectNone and Insert reports true. The check
// runs only here: removing the owner later does not promote anyone else.
func (s *Stack) Insert(d *model.Dialog) (downgraded bool) {
	if d.BackgroundEffect != model.EffectNone {
		for _, existing := range s.dialogs {
			if existing.OwnsBackdrop() {
				d.SetBackgroundEffect(model.EffectNone)
				downgraded = true
				break
			}
		}
	}

	s.nextSeq++
	d.Seq = s.nextSeq
	s.dialogs = append(s.dialogs, d)
	s.index[d.ID] = d
	return downgraded
}

// Find returns the dialog with the given ID.
func (s *Stack) Find(id string) (*model.Dialog, bool) {
	d, ok := s.index[id]
	return d, ok
}

// Remove deletes the dialog with the given ID. Removing an absent ID is a no-op.
func (s *Stack) Remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	s.dialogs = slices.DeleteFunc(s.dialogs, func(d *model.Dialog) bool {
		return d.ID == id
	})
	return true
}

// Current returns the most recently created dialog that is visible and not
// being removed. Equal creation times resolve to the later insertion.
func (s *Stack) Current() (*model.Dialog, bool) {
	var current *model.Dialog
	for _, d := range s.dialogs {
		if !d.IsCurrentCandidate() {
			continue
		}
		if current == nil || newer(d, current) {
			current = d
		}
	}
	return current, current != nil
}

func newer(a, b *model.Dialog) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.Seq > b.Seq
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// BackdropOwner returns the dialog currently holding the backdrop, if any.
func (s *Stack) BackdropOwner() (*model.Dialog, bool) {
	for _, d := range s.dialogs {
		if d.OwnsBackdrop() {
			return d, true
		}
	}
	return nil, false
}

// All returns the dialogs in insertion order. The slice is a copy; the
// records are not.
func (s *Stack) All() []*model.Dialog {
	return slices.Clone(s.dialogs)
}

// IDs returns the dialog IDs in insertion order.
func (s *Stack) IDs() []string {
	ids := make([]string, 0, len(s.dialogs))
	for _, d := range s.dialogs {
		ids = append(ids, d.ID)
	}
	return ids
}

// Len returns the number of dialogs in the stack.
func (s *Stack) Len() int {
	return len(s.dialogs)
}

// Clear removes every dialog.
func (s *Stack) Clear() {
	s.dialogs = make([]*model.Dialog, 0)
	s.index = make(map[string]*model.Dialog)
}
