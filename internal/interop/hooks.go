package interop

import "github.com/jmylchreest/modalstack/internal/model"

// ElementPrefix prefixes the DOM element ID the renderer gives each dialog.
const ElementPrefix = "modalstack-dialog-"

// DialogHooks tells the renderer which interop setup a dialog needs.
type DialogHooks struct {
	DialogID            string
	ElementID           string
	TrapFocus           bool
	LockScroll          bool
	CloseOnClickOutside bool
	ListenForEscape     bool
}

// Hooks derives the interop setup for d. A dialog on its way out releases
// its focus trap and scroll lock.
func Hooks(d model.Dialog) DialogHooks {
	active := !d.Removing
	return DialogHooks{
		DialogID:            d.ID,
		ElementID:           ElementPrefix + d.ID,
		TrapFocus:           active && d.EnableFocusTrap,
		LockScroll:          active && d.DisableBackgroundScrolling,
		CloseOnClickOutside: d.CloseOnClickOutside,
		ListenForEscape:     active,
	}
}

// ScrollLocked reports whether any dialog in dialogs wants the background locked.
func ScrollLocked(dialogs []model.Dialog) bool {
	for _, d := range dialogs {
		if Hooks(d).LockScroll {
			return true
		}
	}
	return false
}
