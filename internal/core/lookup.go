package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

// TargetCurrent addresses the newest visible dialog that is not closing.
const TargetCurrent = "current"

// Lookup errors.
var (
	ErrNotFound  = errors.New("no matching dialog")
	ErrAmbiguous = errors.New("ambiguous dialog reference")
)

// LookupByID finds a dialog by its exact ID.
// Returns nil if not found.
func LookupByID(dialogs []model.Summary, id string) *model.Summary {
	for i := range dialogs {
		if dialogs[i].ID == id {
			return &dialogs[i]
		}
	}
	return nil
}

// LookupByIndex finds a dialog by its 1-based position, oldest first.
// Returns nil if index is out of bounds.
func LookupByIndex(dialogs []model.Summary, index int) *model.Summary {
	idx := index - 1
	if idx < 0 || idx >= len(dialogs) {
		return nil
	}
	return &dialogs[idx]
}

// LookupByPrefix finds the single dialog whose ID starts with prefix,
// ignoring case. ULIDs opened in the same second share their first ten
// characters, so useful prefixes are usually longer than that.
func LookupByPrefix(dialogs []model.Summary, prefix string) (*model.Summary, error) {
	prefix = strings.ToUpper(prefix)
	var found *model.Summary
	for i := range dialogs {
		if strings.HasPrefix(strings.ToUpper(dialogs[i].ID), prefix) {
			if found != nil {
				return nil, fmt.Errorf("%w: %q matches %s and %s", ErrAmbiguous, prefix, found.ID, dialogs[i].ID)
			}
			found = &dialogs[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, prefix)
	}
	return found, nil
}

// Current returns the most recently created dialog that is visible and not
// being removed. Equal creation times resolve to the later stack position.
func Current(dialogs []model.Summary) *model.Summary {
	var current *model.Summary
	for i := range dialogs {
		d := &dialogs[i]
		if !d.Visible || d.Removing {
			continue
		}
		if current == nil || !d.CreatedAt.Before(current.CreatedAt) {
			current = d
		}
	}
	return current
}

// Resolve turns a user-supplied reference into a dialog.
//
// The reference is tried as "current", then an exact ID, then "#N" as a
// 1-based stack position, then a unique ID prefix.
func Resolve(dialogs []model.Summary, ref string) (*model.Summary, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if ref == TargetCurrent {
		if d := Current(dialogs); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("%w: no current dialog", ErrNotFound)
	}

	if d := LookupByID(dialogs, ref); d != nil {
		return d, nil
	}

	if rest, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q: %w", ref, err)
		}
		if d := LookupByIndex(dialogs, n); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("%w: position %d of %d", ErrNotFound, n, len(dialogs))
	}

	return LookupByPrefix(dialogs, ref)
}

// Search finds dialogs whose content reference or parameter values contain
// term. Case-insensitive substring match.
func Search(dialogs []model.Summary, term string) []model.Summary {
	if term == "" {
		return dialogs
	}

	term = strings.ToLower(term)
	var result []model.Summary
	for _, d := range dialogs {
		if strings.Contains(strings.ToLower(d.Content), term) || paramsContain(d.Parameters, term) {
			result = append(result, d)
		}
	}
	return result
}

func paramsContain(params map[string]any, term string) bool {
	for _, v := range params {
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), term) {
			return true
		}
	}
	return false
}
