package embed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"vidembed/internal/media"
)

// CSS hooks shared by every provider.
const (
	WrapperClass = "note-video-clip-wrapper"
	ClipClass    = "note-video-clip"
)

// Fragment builds the detached node tree for d:
// a wrapper <div> holding an <iframe>, or a <video> for raw files.
func Fragment(d media.Descriptor) *html.Node {
	clip := &html.Node{Type: html.ElementNode}
	if d.Native() {
		clip.Data, clip.DataAtom = "video", atom.Video
	} else {
		clip.Data, clip.DataAtom = "iframe", atom.Iframe
	}

	clip.Attr = []html.Attribute{
		{Key: "src", Val: d.Src},
		{Key: "width", Val: strconv.Itoa(d.Width)},
		{Key: "height", Val: strconv.Itoa(d.Height)},
	}
	if !d.Native() {
		clip.Attr = append(clip.Attr, html.Attribute{Key: "frameborder", Val: "0"})
	}

	keys := make([]string, 0, len(d.Attrs))
	for k := range d.Attrs {
		if k != "class" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		clip.Attr = append(clip.Attr, html.Attribute{Key: k, Val: d.Attrs[k]})
	}

	class := ClipClass
	if extra := strings.TrimSpace(d.Attrs["class"]); extra != "" {
		class = extra + " " + ClipClass
	}
	clip.Attr = append(clip.Attr, html.Attribute{Key: "class", Val: class})

	wrapper := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: WrapperClass}},
	}
	wrapper.AppendChild(clip)
	return wrapper
}

// Render serializes a fragment to HTML.
func Render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", fmt.Errorf("rendering fragment: %w", err)
	}
	return b.String(), nil
}

// Build recognizes url and renders its fragment in one step.
func Build(url string) (*html.Node, media.Descriptor, error) {
	d, err := Recognize(url)
	if err != nil {
		return nil, media.Descriptor{}, err
	}
	return Fragment(d), d, nil
}
