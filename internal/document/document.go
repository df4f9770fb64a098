// Package document is an HTML host editor backed by goquery.
// The cursor is the element matched by an anchor selector; embeds are
// inserted right after it. Writes are atomic (temp file + rename).
package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultAnchor selects the cursor element when none is configured.
const DefaultAnchor = "#cursor"

// contextWidth bounds the excerpt returned by Context, in runes.
const contextWidth = 72

// Document is an editable HTML document with a single cursor.
type Document struct {
	doc    *goquery.Document
	anchor string
	cursor *goquery.Selection
}

// Range is the saved position of the cursor.
type Range struct {
	sel *goquery.Selection
}

// Parse reads an HTML document. The cursor is placed on the first element
// matching anchor, or on <body> when nothing matches.
func Parse(r io.Reader, anchor string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	d := &Document{doc: doc, anchor: anchor}
	d.cursor = d.locate()
	return d, nil
}

// Load parses the document stored at path.
func Load(path, anchor string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	return Parse(bufio.NewReader(f), anchor)
}

func (d *Document) locate() *goquery.Selection {
	if d.anchor != "" {
		if sel := d.doc.Find(d.anchor).First(); sel.Length() > 0 {
			return sel
		}
	}
	return d.doc.Find("body").First()
}

// atBody reports whether the cursor sits on <body>, i.e. nothing is selected.
func (d *Document) atBody() bool {
	return d.cursor.Is("body")
}

// SelectedText returns the trimmed text of the cursor element.
func (d *Document) SelectedText() string {
	if d.atBody() {
		return ""
	}
	return strings.TrimSpace(d.cursor.Text())
}

func (d *Document) SaveRange() any {
	return Range{sel: d.cursor}
}

func (d *Document) RestoreRange(r any) {
	if rng, ok := r.(Range); ok && rng.sel != nil {
		d.cursor = rng.sel
	}
}

// InsertNode inserts n after the cursor element (or at the end of <body>)
// and moves the cursor onto it.
func (d *Document) InsertNode(n *html.Node) {
	if d.atBody() {
		d.cursor.AppendNodes(n)
	} else {
		d.cursor.AfterNodes(n)
	}
	d.cursor = d.doc.FindNodes(n)
}

// Context returns a one-line excerpt of the text surrounding the cursor.
func (d *Document) Context() string {
	scope := d.cursor
	if !d.atBody() {
		scope = d.cursor.Parent()
	}
	text := strings.Join(strings.Fields(scope.Text()), " ")
	if utf8.RuneCountInString(text) <= contextWidth {
		return text
	}
	runes := []rune(text)
	return "…" + string(runes[len(runes)-contextWidth+1:])
}

// HTML serializes the whole document.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return out, nil
}

// WriteFile atomically replaces path with the serialized document.
func (d *Document) WriteFile(path string) error {
	out, err := d.HTML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".vidembed-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Keep the permissions of the file being replaced.
	if info, err := os.Stat(path); err == nil {
		if err := tmpFile.Chmod(info.Mode().Perm()); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("setting document permissions: %w", err)
		}
	}

	writer := bufio.NewWriter(tmpFile)
	if _, err := writer.WriteString(out); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing document: %w", err)
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing document: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming document: %w", err)
	}

	return nil
}
