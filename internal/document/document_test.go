package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidembed/internal/embed"
)

func parse(t *testing.T, src, anchor string) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(src), anchor)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return d
}

func TestSelectedText(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		anchor string
		want   string
	}{
		{"anchor text", `<body><p id="cursor">  https://vimeo.com/1 </p></body>`, "#cursor", "https://vimeo.com/1"},
		{"custom anchor", `<body><span data-caret>abc</span></body>`, "[data-caret]", "abc"},
		{"missing anchor falls back to body", `<body><p>text</p></body>`, "#cursor", ""},
		{"empty anchor", `<body><p id="cursor">text</p></body>`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parse(t, tt.src, tt.anchor)
			if got := d.SelectedText(); got != tt.want {
				t.Errorf("SelectedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertAfterCursor(t *testing.T) {
	d := parse(t, `<body><p id="cursor">a</p><p>b</p></body>`, DefaultAnchor)

	n, _, err := embed.Build("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatal(err)
	}
	d.InsertNode(n)

	out, err := d.HTML()
	if err != nil {
		t.Fatal(err)
	}
	want := `<p id="cursor">a</p><div class="note-video-clip-wrapper"><iframe src="//www.youtube.com/embed/dQw4w9WgXcQ" width="640" height="360" frameborder="0" class="note-video-clip"></iframe></div><p>b</p>`
	if !strings.Contains(out, want) {
		t.Errorf("HTML() =\n%s\nwant it to contain\n%s", out, want)
	}
}

func TestInsertAtBodyKeepsOrder(t *testing.T) {
	d := parse(t, `<body><p>intro</p></body>`, DefaultAnchor)

	for _, url := range []string{"https://vimeo.com/1", "https://vimeo.com/2"} {
		n, _, err := embed.Build(url)
		if err != nil {
			t.Fatal(err)
		}
		d.InsertNode(n)
	}

	out, _ := d.HTML()
	first := strings.Index(out, "video/1")
	second := strings.Index(out, "video/2")
	if first < 0 || second < 0 || first > second {
		t.Errorf("embeds out of order:\n%s", out)
	}
	if !strings.Contains(out, `<p>intro</p><div class="note-video-clip-wrapper">`) {
		t.Errorf("first embed not appended to body:\n%s", out)
	}
}

func TestSaveRestoreRange(t *testing.T) {
	d := parse(t, `<body><p id="cursor">a</p><p id="other">b</p></body>`, DefaultAnchor)

	saved := d.SaveRange()
	d.cursor = d.doc.Find("#other")
	if d.SelectedText() != "b" {
		t.Fatal("cursor did not move")
	}

	d.RestoreRange(saved)
	if got := d.SelectedText(); got != "a" {
		t.Errorf("after restore SelectedText() = %q, want a", got)
	}

	d.RestoreRange("not a range")
	if got := d.SelectedText(); got != "a" {
		t.Errorf("foreign range moved the cursor to %q", got)
	}
}

func TestContext(t *testing.T) {
	d := parse(t, `<body><div><p>before</p> <p id="cursor">here</p></div></body>`, DefaultAnchor)
	if got := d.Context(); got != "before here" {
		t.Errorf("Context() = %q, want %q", got, "before here")
	}

	long := strings.Repeat("word ", 40)
	d = parse(t, `<body><p id="cursor">`+long+`</p></body>`, DefaultAnchor)
	got := d.Context()
	if !strings.HasPrefix(got, "…") || len([]rune(got)) != contextWidth {
		t.Errorf("Context() = %q (%d runes), want truncated to %d", got, len([]rune(got)), contextWidth)
	}
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(`<html><body><p id="cursor">x</p></body></html>`), 0644); err != nil {
		t.Fatal(err)
	}

	orig, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	d, err := Load(path, DefaultAnchor)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	n, _, _ := embed.Build("https://example.com/clip.mp4")
	d.InsertNode(n)

	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<video src="https://example.com/clip.mp4"`) {
		t.Errorf("written file missing embed:\n%s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != orig.Mode().Perm() {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), orig.Mode().Perm())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWriteFileKeepsMode(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
	}{
		{"private", 0600},
		{"group readable", 0640},
		{"read only", 0444},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "page.html")
			if err := os.WriteFile(path, []byte(`<p id="cursor">x</p>`), 0600); err != nil {
				t.Fatal(err)
			}
			if err := os.Chmod(path, tt.mode); err != nil {
				t.Fatal(err)
			}

			d, err := Load(path, DefaultAnchor)
			if err != nil {
				t.Fatal(err)
			}
			if err := d.WriteFile(path); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != tt.mode {
				t.Errorf("mode = %v, want %v", info.Mode().Perm(), tt.mode)
			}
		})
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	d := parse(t, `<p id="cursor">x</p>`, DefaultAnchor)
	if err := d.WriteFile(filepath.Join(t.TempDir(), "missing", "page.html")); err == nil {
		t.Error("WriteFile() should fail when the directory does not exist")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.html"), DefaultAnchor); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
