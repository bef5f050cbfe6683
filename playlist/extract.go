package playlist

import (
	"net/url"
	"regexp"
	"strings"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/|youtube\.com/embed/)([\w-]+)`),
	regexp.MustCompile(`youtube\.com/.*[?&]v=([\w-]+)`),
}

var recognizedHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

// ExtractVideoIDs pulls YouTube video ids out of raw links. Links that
// match no known shape are dropped. Duplicate ids keep their
// first-seen position.
func ExtractVideoIDs(rawLinks []string) []string {
	ids := make([]string, 0, len(rawLinks))
	seen := make(map[string]bool, len(rawLinks))

	for _, link := range rawLinks {
		link = strings.TrimSpace(link)

		var id string
		for _, pattern := range idPatterns {
			if m := pattern.FindStringSubmatch(link); m != nil {
				id = m[1]
				break
			}
		}

		if id == "" {
			id = idFromQuery(link)
		}

		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}

// idFromQuery is the fallback for links where the id only appears as a
// v query parameter on a recognized host.
func idFromQuery(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if !recognizedHosts[parsed.Host] {
		return ""
	}

	return parsed.Query().Get("v")
}
