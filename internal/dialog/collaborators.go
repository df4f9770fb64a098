package dialog

import "golang.org/x/net/html"

// Range is an opaque selection handle owned by the host editor.
type Range = any

// KeyEnter is the key name delivered to keypress listeners for the Enter key.
const KeyEnter = "enter"

// Editor is the host editor the dialog inserts into.
type Editor interface {
	// SelectedText returns the currently selected text, possibly empty.
	SelectedText() string

	// SaveRange captures the current selection so it can be restored after
	// the dialog has taken focus.
	SaveRange() Range

	// RestoreRange puts the selection back where SaveRange found it.
	RestoreRange(r Range)

	// InsertNode inserts a detached node at the current cursor position.
	InsertNode(n *html.Node)
}

// Control is a widget that can be enabled or disabled.
type Control interface {
	Enabled() bool
}

// TextInput is the URL field of the dialog.
type TextInput interface {
	Control
	Value() string
	SetValue(v string)
	Focus()

	// OnInput registers a listener fired after every user edit.
	OnInput(fn func())
	// OffInput removes every input listener.
	OffInput()

	// OnKeyPress registers a listener fired with the key name of each key
	// pressed while the input has focus.
	OnKeyPress(fn func(key string))
	// OffKeyPress removes every keypress listener.
	OffKeyPress()
}

// Button is the submit control of the dialog.
type Button interface {
	Control
	OnClick(fn func())
	OffClick()
	// Click activates the button. Listeners only run while it is enabled.
	Click()
}

// Handle is a rendered dialog.
type Handle interface {
	Input() TextInput
	Button() Button
}

// Layout is the render configuration of the dialog.
type Layout struct {
	Title  string // Dialog title
	Label  string // Label above the URL field
	Hint   string // Secondary text listing the supported providers
	Submit string // Submit button caption
	InBody bool   // Mount in the document body rather than the editor
}

// Presenter renders dialogs and reports their visibility.
type Presenter interface {
	Render(l Layout) Handle
	ShowDialog(h Handle)
	HideDialog(h Handle)

	// OnDialogShown and OnDialogHidden register callbacks that fire at most
	// once, on the next show or hide respectively.
	OnDialogShown(h Handle, fn func())
	OnDialogHidden(h Handle, fn func())

	ToggleEnabled(c Control, enabled bool)
	Remove(h Handle)
}

// Environment reports platform capabilities.
type Environment interface {
	TouchSupported() bool
}
