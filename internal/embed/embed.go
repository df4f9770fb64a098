// Package embed recognizes video URLs from a fixed, ordered set of hosting
// providers and synthesizes the HTML fragment that embeds them.
//
// Recognition is a pure function of the input string. It never logs and
// never touches the network: an unrecognized URL is reported with
// ErrUnrecognized and callers are expected to do nothing with it.
package embed

import (
	"errors"

	"vidembed/internal/media"
)

// ErrUnrecognized is returned when a URL matches none of the known patterns.
var ErrUnrecognized = errors.New("unrecognized video url")

// Recognize classifies url and returns the descriptor of the first matching
// provider in precedence order.
func Recognize(url string) (media.Descriptor, error) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(url)
		if m == nil || m[r.group] == "" {
			continue
		}
		return r.build(m[r.group], url), nil
	}
	return media.Descriptor{}, ErrUnrecognized
}

// Precedence returns the provider kinds in the order they are tried.
func Precedence() []media.Kind {
	var kinds []media.Kind
	for _, r := range rules {
		if n := len(kinds); n > 0 && kinds[n-1] == r.kind {
			continue
		}
		kinds = append(kinds, r.kind)
	}
	return kinds
}
