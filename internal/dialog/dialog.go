// Package dialog implements the video insertion dialog: it captures the
// editor selection, waits for the user to submit a URL or dismiss the
// dialog, and inserts the recognized embed at the restored cursor.
//
// The controller never talks to a concrete UI. Rendering, visibility and
// widget events come from a [Presenter]; the document comes from an
// [Editor]. A [Controller] runs at most one session at a time.
package dialog

import (
	"context"
	"errors"
	"sync"

	"vidembed/internal/embed"
	"vidembed/internal/media"
)

var (
	// ErrCancelled settles a session that was hidden without a submission.
	ErrCancelled = errors.New("dialog dismissed without submission")

	// ErrSessionActive is returned by Show while another session is waiting
	// for input on the same controller.
	ErrSessionActive = errors.New("dialog session already active")

	ErrInitialized    = errors.New("dialog already initialized")
	ErrNotInitialized = errors.New("dialog not initialized")
)

// Outcome describes how a session ended.
type Outcome int

const (
	Cancelled Outcome = iota
	Unrecognized
	Inserted
)

func (o Outcome) String() string {
	switch o {
	case Cancelled:
		return "cancelled"
	case Unrecognized:
		return "unrecognized"
	case Inserted:
		return "inserted"
	default:
		return "unknown"
	}
}

// Recognizer maps a submitted URL to an embed descriptor.
type Recognizer func(url string) (media.Descriptor, error)

// Option configures a [Controller].
type Option func(*Controller)

// WithRecognizer replaces [embed.Recognize].
func WithRecognizer(r Recognizer) Option {
	return func(c *Controller) {
		c.recognize = r
	}
}

// WithInsertHook registers fn to run after every successful insertion.
func WithInsertHook(fn func(url string, d media.Descriptor)) Option {
	return func(c *Controller) {
		c.onInsert = fn
	}
}

// WithShownHook registers fn to run each time the dialog has been shown,
// before the session listeners are bound.
func WithShownHook(fn func()) Option {
	return func(c *Controller) {
		c.onShown = fn
	}
}

// Controller owns the dialog and sequences its sessions.
// Controller is safe for concurrent use; concurrent Show calls are rejected
// with ErrSessionActive rather than queued.
type Controller struct {
	editor    Editor
	ui        Presenter
	env       Environment
	layout    Layout
	recognize Recognizer
	onInsert  func(url string, d media.Descriptor)
	onShown   func()

	mu      sync.Mutex
	dialog  Handle
	session *submission // nil when no session is waiting
}

// New returns a controller. Call Initialize before Show.
func New(editor Editor, ui Presenter, env Environment, layout Layout, opts ...Option) *Controller {
	c := &Controller{
		editor:    editor,
		ui:        ui,
		env:       env,
		layout:    layout,
		recognize: embed.Recognize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize renders and mounts the dialog.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != nil {
		return ErrInitialized
	}
	c.dialog = c.ui.Render(c.layout)
	return nil
}

// Destroy hides and removes the dialog. A session still waiting for input
// ends as cancelled, even if its dialog was never shown.
func (c *Controller) Destroy() error {
	c.mu.Lock()
	h := c.dialog
	sub := c.session
	c.dialog = nil
	c.mu.Unlock()

	if h == nil {
		return ErrNotInitialized
	}
	c.ui.HideDialog(h)
	c.ui.Remove(h)
	if sub != nil {
		sub.reject()
	}
	return nil
}

// Show runs one dialog session and blocks until it ends.
//
// A dismissed dialog yields Cancelled and an unrecognized URL yields
// Unrecognized; neither is an error. If ctx ends first the dialog is
// hidden, the selection restored and ctx.Err() returned.
func (c *Controller) Show(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	h := c.dialog
	switch {
	case h == nil:
		c.mu.Unlock()
		return Cancelled, ErrNotInitialized
	case c.session != nil:
		c.mu.Unlock()
		return Cancelled, ErrSessionActive
	}
	sub := newSubmission()
	c.session = sub
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
	}()

	text := c.editor.SelectedText()
	rng := c.editor.SaveRange()

	c.open(h, text, sub)
	url, err := sub.wait(ctx)
	if err != nil {
		if !errors.Is(err, ErrCancelled) {
			c.ui.HideDialog(h)
			c.editor.RestoreRange(rng)
			return Cancelled, err
		}
		c.editor.RestoreRange(rng)
		return Cancelled, nil
	}

	c.ui.HideDialog(h)
	c.editor.RestoreRange(rng)

	d, err := c.recognize(url)
	if err != nil {
		if errors.Is(err, embed.ErrUnrecognized) {
			return Unrecognized, nil
		}
		return Unrecognized, err
	}

	c.editor.InsertNode(embed.Fragment(d))
	if c.onInsert != nil {
		c.onInsert(url, d)
	}
	return Inserted, nil
}

// open binds the session listeners to sub and shows the dialog.
func (c *Controller) open(h Handle, text string, sub *submission) {
	if !sub.pending() {
		return
	}
	input, btn := h.Input(), h.Button()

	syncButton := func() {
		c.ui.ToggleEnabled(btn, input.Value() != "")
	}

	c.ui.OnDialogShown(h, func() {
		if c.onShown != nil {
			c.onShown()
		}
		input.SetValue(text)
		syncButton()
		input.OnInput(syncButton)

		if !c.env.TouchSupported() {
			input.Focus()
		}

		btn.OnClick(func() {
			if url := input.Value(); url != "" {
				sub.resolve(url)
			}
		})
		input.OnKeyPress(func(key string) {
			if key == KeyEnter {
				btn.Click()
			}
		})
	})

	c.ui.OnDialogHidden(h, func() {
		input.OffInput()
		btn.OffClick()
		input.OffKeyPress()

		if sub.pending() {
			sub.reject()
		}
	})

	c.ui.ShowDialog(h)
}
