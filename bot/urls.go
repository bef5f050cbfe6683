package bot

import (
	"regexp"
	"strings"
)

var youtubeURLPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/|m\.youtube\.com/watch\?v=)[\w-]+`)

// ExtractURLs finds YouTube links in free-form message text. Links
// without a scheme get https:// prepended so the normalizer accepts
// them.
func ExtractURLs(text string) []string {
	matches := youtubeURLPattern.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	for _, url := range matches {
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}
		urls = append(urls, url)
	}

	return urls
}
