package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"vidembed/internal/config"
	"vidembed/internal/dialog"
	"vidembed/internal/document"
	"vidembed/internal/env"
	"vidembed/internal/history"
	"vidembed/internal/media"
	"vidembed/internal/ui"
)

var (
	flagURL    string
	flagOutput string
)

var insertCmd = &cobra.Command{
	Use:   "insert FILE",
	Short: "Insert a video embed into an HTML document",
	Long: `Open the video dialog over FILE and insert the embed for the submitted URL
after the cursor element (selected with --anchor). The text of the cursor
element pre-fills the dialog.

With --url the dialog is driven without a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: insertRun,
}

func init() {
	insertCmd.Flags().StringVarP(&flagURL, "url", "u", "", "Submit URL without opening the interactive dialog")
	insertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the result here instead of FILE")
}

func insertRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	headless := flagURL != ""

	if !headless && !(env.Interactive(os.Stdin) && env.Interactive(os.Stdout)) {
		return errors.New("--url is required when not attached to a terminal")
	}

	probe, err := env.NewProbe(cfg.Touch)
	if err != nil {
		return err
	}

	doc, err := document.Load(path, cfg.Anchor)
	if err != nil {
		return err
	}
	debugf("loaded %s (anchor %q, selection %q)", path, cfg.Anchor, doc.SelectedText())

	opts := []ui.Option{ui.WithContext(doc.Context())}
	if headless {
		url := flagURL
		opts = append(opts, ui.WithScript(func(d *ui.Dialog) {
			d.Type(url)
			d.Press(dialog.KeyEnter)
		}))
	}
	screen := ui.NewScreen(opts...)

	var (
		insertedURL string
		inserted    media.Descriptor
	)
	ctrl := dialog.New(doc, screen, probe, cfg.Layout(),
		dialog.WithInsertHook(func(url string, d media.Descriptor) {
			insertedURL, inserted = url, d
		}))
	if err := ctrl.Initialize(); err != nil {
		return err
	}
	defer ctrl.Destroy()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var outcome dialog.Outcome
	if headless {
		outcome, err = ctrl.Show(ctx)
	} else {
		outcome, err = runDialog(ctx, ctrl, screen)
	}
	if errors.Is(err, context.Canceled) {
		outcome, err = dialog.Cancelled, nil
	}
	if err != nil {
		return err
	}

	switch outcome {
	case dialog.Cancelled:
		debugf("dialog cancelled, %s unchanged", path)
		return nil
	case dialog.Unrecognized:
		debugf("url not recognized, %s unchanged", path)
		return nil
	}

	out := path
	if flagOutput != "" {
		out = flagOutput
	}
	if err := doc.WriteFile(out); err != nil {
		return err
	}
	debugf("inserted %s embed into %s", inserted.Kind, out)

	if cfg.History {
		recordHistory(ctx, insertedURL, inserted, out)
	}
	return nil
}

// runDialog shows the dialog in a bubbletea program until the session ends.
func runDialog(ctx context.Context, ctrl *dialog.Controller, screen *ui.Screen) (dialog.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, err := screen.Program(tea.WithOutput(os.Stderr))
	if err != nil {
		return dialog.Cancelled, err
	}

	type result struct {
		outcome dialog.Outcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := ctrl.Show(ctx)
		done <- result{outcome, err}
		p.Quit()
	}()

	_, runErr := p.Run()
	// The program can exit on its own (e.g. a killed terminal); end the
	// session so Show returns.
	cancel()
	r := <-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return dialog.Cancelled, fmt.Errorf("running dialog: %w", runErr)
	}
	return r.outcome, r.err
}

// recordHistory stores an insertion. Failures are logged, not returned:
// the document has already been written.
func recordHistory(ctx context.Context, url string, d media.Descriptor, docPath string) {
	dbPath, err := config.HistoryPath()
	if err != nil {
		debugf("history: %v", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		debugf("history: %v", err)
		return
	}
	defer store.Close()

	if abs, err := filepath.Abs(docPath); err == nil {
		docPath = abs
	}
	e, err := store.Record(ctx, history.Entry{URL: url, Kind: d.Kind, Src: d.Src, Document: docPath})
	if err != nil {
		debugf("history: %v", err)
		return
	}
	debugf("history: recorded %s", e.ID)
}
