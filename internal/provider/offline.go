// internal/provider/offline.go
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Offline serves canned completions for demos without a hosted LLM and for
// deterministic tests. Output depends only on the request mode and the
// classified topic of the prompt.
type Offline struct {
	latency time.Duration
}

// NewOffline creates the offline completer. latency simulates provider
// pacing; pass 0 for instant responses in tests.
func NewOffline(latency time.Duration) *Offline {
	return &Offline{latency: latency}
}

// Model returns a label for health reporting.
func (c *Offline) Model() string { return "offline-templates" }

func (c *Offline) Complete(ctx context.Context, req Request) (string, error) {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	topic := Classify(req.Prompt)
	table, ok := offlineTemplates[req.Mode]
	if !ok {
		table = offlineTemplates[ModeStrategy]
	}
	template, ok := table[topic]
	if !ok {
		template = table[TopicGeneric]
	}

	return fmt.Sprintf(template, excerpt(req.Prompt, 60)), nil
}

// excerpt returns the first n characters of a prompt's first line, enough to
// make canned answers look grounded in the input.
func excerpt(prompt string, n int) string {
	line := prompt
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > n {
		line = line[:n] + "..."
	}
	return line
}

var offlineTemplates = map[Mode]map[Topic]string{
	ModeStrategy: {
		TopicGeneric: "Strategic analysis for %q:\n" +
			"1. Value proposition: position as the fastest path from problem to outcome.\n" +
			"2. Marketing angle: lead with time saved in the first week of use.\n" +
			"3. Messaging themes: simplicity, measurable results, works with existing tools.\n" +
			"4. Persona: hands-on decision maker evaluating two or three alternatives.\n" +
			"5. Recommended tone: professional.",
		TopicAutomotive: "Strategic analysis for %q:\n" +
			"1. Value proposition: the practical choice for drivers switching to electric.\n" +
			"2. Marketing angle: total cost of ownership beats combustion within two years.\n" +
			"3. Messaging themes: range confidence, charging convenience, lower running costs.\n" +
			"4. Persona: commuter comparing EV options against a familiar gas model.\n" +
			"5. Recommended tone: technical but reassuring.",
		TopicURL: "Strategic analysis for the linked product page (%q):\n" +
			"1. Value proposition: derived from the page's primary headline.\n" +
			"2. Marketing angle: mirror the on-page social proof in outbound copy.\n" +
			"3. Messaging themes: consistency between ad copy and landing page.\n" +
			"4. Persona: visitor arriving with purchase intent from search.\n" +
			"5. Recommended tone: match the page's existing voice.",
	},
	ModeContent: {
		TopicGeneric: "Draft copy for %q: Stop losing hours to busywork. " +
			"Teams using it report measurable gains in the first week. " +
			"Try it today. #productivity #automation",
		TopicAutomotive: "Draft copy for %q: The switch to electric just got easier. " +
			"More range, lower running costs, charging that fits your day. " +
			"Book a test drive. #EV #electricvehicles",
		TopicURL: "Draft copy for %q: See for yourself at the link. " +
			"Everything your workflow is missing, in one place. #newlaunch",
	},
	ModeOptimization: {
		TopicGeneric: "Campaign review for %q:\n" +
			"Strengths: consistent messaging across channels; clear call to action.\n" +
			"Recommendations: post social content mid-morning; A/B test the email subject.\n" +
			"Timeline: social first, long-form within the week, email to subscribers last.\n" +
			"Track: engagement rate, click-through rate, qualified leads.",
		TopicAutomotive: "Campaign review for %q:\n" +
			"Strengths: cost-of-ownership framing; strong test-drive call to action.\n" +
			"Recommendations: pair range claims with charging-map visuals; retarget configurator visits.\n" +
			"Timeline: social during commute hours, email over the weekend.\n" +
			"Track: test-drive bookings, configurator sessions, dealer inquiries.",
	},
}
