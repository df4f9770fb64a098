package embed

import (
	"regexp"

	"vidembed/internal/media"
)

// rule pairs a URL pattern with the descriptor it produces. A rule only
// applies when the capture group at index group is non-empty.
type rule struct {
	kind  media.Kind
	re    *regexp.Regexp
	group int
	build func(id, url string) media.Descriptor
}

// rules is evaluated top to bottom and the first applicable rule wins.
// Order matters: a URL may satisfy several patterns.
var rules = []rule{
	{
		kind: media.YouTube,
		// The id must be exactly 11 characters, so anything after it has to
		// start with a non-id character.
		re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?(?:youtu\.be/|youtube\.com/(?:embed/|v/|watch\?v=|watch\?.+&v=))([\w-]{11})(?:[^\w\s-]\S*)?$`),
		group: 1,
		build: func(id, _ string) media.Descriptor {
			return iframe(media.YouTube, "//www.youtube.com/embed/"+id, 640, 360, nil)
		},
	},
	{
		kind:  media.Instagram,
		re:    regexp.MustCompile(`(?:www\.|//)instagram\.com/p/(.[a-zA-Z0-9_-]*)`),
		group: 1,
		build: func(code, _ string) media.Descriptor {
			return iframe(media.Instagram, "https://instagram.com/p/"+code+"/embed/", 612, 710, map[string]string{
				"scrolling":         "no",
				"allowtransparency": "true",
			})
		},
	},
	{
		kind:  media.Vine,
		re:    regexp.MustCompile(`//vine\.co/v/([a-zA-Z0-9]+)`),
		group: 0,
		build: func(matched, _ string) media.Descriptor {
			return iframe(media.Vine, matched+"/embed/simple", 600, 600, map[string]string{
				"class": "vine-embed",
			})
		},
	},
	{
		kind:  media.Vimeo,
		re:    regexp.MustCompile(`//(player\.)?vimeo\.com/([a-z]*/)*(\d+)[?]?.*`),
		group: 3,
		build: func(id, _ string) media.Descriptor {
			return iframe(media.Vimeo, "//player.vimeo.com/video/"+id, 640, 360, fullscreen())
		},
	},
	{
		kind:  media.Dailymotion,
		re:    regexp.MustCompile(`.+dailymotion\.com/(video|hub)/([^_#]+)[^#]*(#video=([^_&]+))?`),
		group: 2,
		build: func(id, _ string) media.Descriptor {
			return iframe(media.Dailymotion, "//www.dailymotion.com/embed/video/"+id, 640, 360, nil)
		},
	},
	{
		kind:  media.Youku,
		re:    regexp.MustCompile(`//v\.youku\.com/v_show/id_(\w+)=*\.html`),
		group: 1,
		build: func(id, _ string) media.Descriptor {
			return iframe(media.Youku, "//player.youku.com/embed/"+id, 510, 498, fullscreen())
		},
	},
	{kind: media.RawFile, re: regexp.MustCompile(`^.+\.(mp4|m4v)$`), build: rawFile},
	{kind: media.RawFile, re: regexp.MustCompile(`^.+\.(ogg|ogv)$`), build: rawFile},
	{kind: media.RawFile, re: regexp.MustCompile(`^.+\.(webm)$`), build: rawFile},
}

func iframe(kind media.Kind, src string, width, height int, attrs map[string]string) media.Descriptor {
	return media.Descriptor{Kind: kind, Src: src, Width: width, Height: height, Attrs: attrs}
}

func fullscreen() map[string]string {
	return map[string]string{
		"webkitallowfullscreen": "",
		"mozallowfullscreen":    "",
		"allowfullscreen":       "",
	}
}

func rawFile(_, url string) media.Descriptor {
	return media.Descriptor{
		Kind:   media.RawFile,
		Src:    url,
		Width:  640,
		Height: 360,
		Attrs:  map[string]string{"controls": ""},
	}
}
