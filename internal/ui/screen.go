// Package ui is the terminal presentation layer for the video dialog.
//
// A Screen renders dialogs whose widgets hold their own state and
// listeners, so the same code paths run whether events come from a
// bubbletea program or from a script. Listeners are always called without
// any widget lock held; they may call back into the widgets freely.
package ui

import (
	"sync"

	"vidembed/internal/dialog"
)

// Screen implements dialog.Presenter.
type Screen struct {
	mu      sync.Mutex
	current *Dialog
	notify  func()
	script  func(d *Dialog)
	context string
}

// Option configures a Screen.
type Option func(*Screen)

// WithScript runs fn each time a dialog has been shown, after the shown
// callbacks. It stands in for a user when there is no terminal.
func WithScript(fn func(d *Dialog)) Option {
	return func(s *Screen) {
		s.script = fn
	}
}

// WithContext sets the editor excerpt displayed above dialogs that are not
// mounted in the body.
func WithContext(line string) Option {
	return func(s *Screen) {
		s.context = line
	}
}

// NewScreen returns an empty screen.
func NewScreen(opts ...Option) *Screen {
	s := &Screen{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Screen) Render(l dialog.Layout) dialog.Handle {
	d := &Dialog{screen: s, layout: l}
	d.input = &Input{screen: s, enabled: true}
	d.button = &Button{screen: s}

	s.mu.Lock()
	s.current = d
	s.mu.Unlock()
	return d
}

func (s *Screen) ShowDialog(h dialog.Handle) {
	d := h.(*Dialog)
	if !d.show() {
		return
	}
	if s.script != nil {
		s.script(d)
	}
}

func (s *Screen) HideDialog(h dialog.Handle) {
	h.(*Dialog).hide()
}

func (s *Screen) OnDialogShown(h dialog.Handle, fn func()) {
	d := h.(*Dialog)
	d.mu.Lock()
	if !d.removed {
		d.shown = append(d.shown, fn)
	}
	d.mu.Unlock()
}

func (s *Screen) OnDialogHidden(h dialog.Handle, fn func()) {
	d := h.(*Dialog)
	d.mu.Lock()
	if !d.removed {
		d.hidden = append(d.hidden, fn)
	}
	d.mu.Unlock()
}

func (s *Screen) ToggleEnabled(c dialog.Control, enabled bool) {
	switch w := c.(type) {
	case *Button:
		w.mu.Lock()
		w.enabled = enabled
		w.mu.Unlock()
	case *Input:
		w.mu.Lock()
		w.enabled = enabled
		w.mu.Unlock()
	}
	s.changed()
}

// Remove detaches the dialog. A removed dialog can no longer be shown.
func (s *Screen) Remove(h dialog.Handle) {
	d := h.(*Dialog)
	d.hide()

	d.mu.Lock()
	d.removed = true
	d.shown, d.hidden = nil, nil
	d.mu.Unlock()

	d.input.OffInput()
	d.input.OffKeyPress()
	d.button.OffClick()

	s.mu.Lock()
	if s.current == d {
		s.current = nil
	}
	s.mu.Unlock()
}

// Current returns the most recently rendered dialog that is still mounted.
func (s *Screen) Current() *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Screen) changed() {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// Dialog is a rendered dialog.
type Dialog struct {
	screen *Screen
	layout dialog.Layout
	input  *Input
	button *Button

	mu      sync.Mutex
	visible bool
	removed bool
	shown   []func()
	hidden  []func()
}

func (d *Dialog) Input() dialog.TextInput { return d.input }
func (d *Dialog) Button() dialog.Button { return d.button }

// Layout returns the configuration the dialog was rendered with.
func (d *Dialog) Layout() dialog.Layout { return d.layout }

func (d *Dialog) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

// Type replaces the field content as if the user had typed it.
func (d *Dialog) Type(s string) { d.input.edit(s) }

// Press delivers a key to the field.
func (d *Dialog) Press(key string) { d.input.press(key) }

// Dismiss hides the dialog without submitting, like Escape.
func (d *Dialog) Dismiss() { d.hide() }

// show reports whether the dialog went from hidden to visible.
func (d *Dialog) show() bool {
	d.mu.Lock()
	if d.visible || d.removed {
		d.mu.Unlock()
		return false
	}
	d.visible = true
	cbs := d.shown
	d.shown = nil
	d.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
	d.screen.changed()
	return true
}

func (d *Dialog) hide() {
	d.mu.Lock()
	if !d.visible {
		d.mu.Unlock()
		return
	}
	d.visible = false
	cbs := d.hidden
	d.hidden = nil
	d.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
	d.screen.changed()
}

// Input is the URL field.
type Input struct {
	screen *Screen

	mu      sync.Mutex
	value   string
	version uint64 // bumped on programmatic SetValue
	enabled bool
	focused bool
	onInput []func()
	onKey   []func(string)
}

func (i *Input) Enabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

func (i *Input) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

func (i *Input) SetValue(v string) {
	i.mu.Lock()
	i.value = v
	i.version++
	i.mu.Unlock()
	i.screen.changed()
}

func (i *Input) Focus() {
	i.mu.Lock()
	i.focused = true
	i.mu.Unlock()
	i.screen.changed()
}

func (i *Input) Focused() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.focused
}

func (i *Input) OnInput(fn func()) {
	i.mu.Lock()
	i.onInput = append(i.onInput, fn)
	i.mu.Unlock()
}

func (i *Input) OffInput() {
	i.mu.Lock()
	i.onInput = nil
	i.mu.Unlock()
}

func (i *Input) OnKeyPress(fn func(key string)) {
	i.mu.Lock()
	i.onKey = append(i.onKey, fn)
	i.mu.Unlock()
}

func (i *Input) OffKeyPress() {
	i.mu.Lock()
	i.onKey = nil
	i.mu.Unlock()
}

// listeners reports how many input and keypress listeners are bound.
func (i *Input) listeners() (input, key int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.onInput), len(i.onKey)
}

// edit is a user edit: it updates the value and fires input listeners.
func (i *Input) edit(v string) {
	i.mu.Lock()
	if !i.enabled {
		i.mu.Unlock()
		return
	}
	i.value = v
	cbs := append([]func(){}, i.onInput...)
	i.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
	i.screen.changed()
}

func (i *Input) press(key string) {
	i.mu.Lock()
	cbs := append([]func(string){}, i.onKey...)
	i.mu.Unlock()

	for _, fn := range cbs {
		fn(key)
	}
}

func (i *Input) snapshot() (value string, version uint64, focused bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value, i.version, i.focused
}

// Button is the submit control. It starts disabled.
type Button struct {
	screen *Screen

	mu      sync.Mutex
	enabled bool
	onClick []func()
}

func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Button) OnClick(fn func()) {
	b.mu.Lock()
	b.onClick = append(b.onClick, fn)
	b.mu.Unlock()
}

func (b *Button) OffClick() {
	b.mu.Lock()
	b.onClick = nil
	b.mu.Unlock()
}

func (b *Button) Click() {
	b.mu.Lock()
	if !b.enabled {
		b.mu.Unlock()
		return
	}
	cbs := append([]func(){}, b.onClick...)
	b.mu.Unlock()

	for _, fn := range cbs {
		fn()
	}
}

func (b *Button) listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.onClick)
}
