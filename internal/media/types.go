// Package media defines shared types for the vidembed application.
package media

import (
	"fmt"
	"strings"
)

// Kind identifies the hosting provider (or raw file) an embed refers to.
type Kind int

const (
	YouTube Kind = iota
	Instagram
	Vine
	Vimeo
	Dailymotion
	Youku
	RawFile
)

func (k Kind) String() string {
	switch k {
	case YouTube:
		return "youtube"
	case Instagram:
		return "instagram"
	case Vine:
		return "vine"
	case Vimeo:
		return "vimeo"
	case Dailymotion:
		return "dailymotion"
	case Youku:
		return "youku"
	case RawFile:
		return "file"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := YouTube; k <= RawFile; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown media kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Descriptor describes the media element to embed for a recognized URL.
type Descriptor struct {
	Kind   Kind              `json:"kind"`
	Src    string            `json:"src"`             // Embed URL (or the literal URL for raw files)
	Width  int               `json:"width"`           // Pixel width
	Height int               `json:"height"`          // Pixel height
	Attrs  map[string]string `json:"attrs,omitempty"` // Provider-specific extra attributes
}

// Native reports whether the descriptor renders as a <video> element
// rather than an <iframe>.
func (d Descriptor) Native() bool {
	return d.Kind == RawFile
}
