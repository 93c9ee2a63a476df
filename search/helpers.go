package search

import "strings"

// topicTitle derives a short title from a related-topic text, which usually
// reads "Title - description".
func topicTitle(text string) string {
	if title, _, found := strings.Cut(text, " - "); found && title != "" {
		return title
	}
	if text != "" {
		return text
	}
	return "Related"
}

func trimText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
