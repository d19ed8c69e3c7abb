// internal/provider/classifier.go
package provider

import "strings"

// Topic is the closed tag set the offline provider selects templates from.
type Topic string

const (
	TopicGeneric    Topic = "generic"
	TopicAutomotive Topic = "automotive"
	TopicURL        Topic = "url"
)

var automotiveKeywords = []string{
	"tesla",
	"electric vehicle",
	"automotive",
	" ev ",
	"car ",
	"vehicle",
	"charging",
}

// Classify maps free-form product text onto a Topic. It replaces the
// scattered substring checks of the demo backend with one decision point the
// template table keys off.
func Classify(text string) Topic {
	lowered := " " + strings.ToLower(text) + " "

	if strings.Contains(lowered, "http://") || strings.Contains(lowered, "https://") || strings.Contains(lowered, "www.") {
		return TopicURL
	}
	for _, keyword := range automotiveKeywords {
		if strings.Contains(lowered, keyword) {
			return TopicAutomotive
		}
	}
	return TopicGeneric
}
