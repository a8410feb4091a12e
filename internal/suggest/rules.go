package suggest

import (
	"strings"

	"github.com/samber/lo"

	"github.com/anime-shed/doc-insight-go/pkg/models"
)

// Content is the pre-computed view of a text that rules match against
type Content struct {
	Text     string
	Lower    string
	Words    int
	Polarity float64
}

// Rule maps a predicate over the content to a fixed message. Consecutive rules
// sharing a non-empty Group are alternatives: only the first match fires.
type Rule struct {
	ID      string
	Group   string
	Message models.Suggestion
	Match   func(c Content) bool
}

const (
	emojiSet         = "😀😂🎉👍🔥"
	lengthyWordCount = 100
)

var (
	callToActionPhrases = []string{"click", "check out", "buy now", "learn more"}
	productKeywords     = []string{"product", "service", "offer", "sale"}
	broadAudienceWords  = []string{"everyone", "anyone"}
)

func containsAny(lower string, keywords []string) bool {
	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(lower, k)
	})
}

// DefaultRules returns the rule catalog in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:      "hashtags",
			Message: "Add hashtags to increase visibility, e.g., #Trending #YourTopic.",
			Match:   func(c Content) bool { return !strings.Contains(c.Text, "#") },
		},
		{
			ID:      "call_to_action",
			Message: "Include a call-to-action, e.g., 'Learn more at the link in our bio.'",
			Match:   func(c Content) bool { return !containsAny(c.Lower, callToActionPhrases) },
		},
		{
			ID:      "emojis",
			Message: "Include emojis to make your content visually appealing and fun.",
			Match:   func(c Content) bool { return !strings.ContainsAny(c.Text, emojiSet) },
		},
		{
			ID:      "lengthy",
			Message: "Your content is lengthy. Simplify it to retain reader attention.",
			Match:   func(c Content) bool { return c.Words > lengthyWordCount },
		},
		{
			ID:      "negative_tone",
			Group:   "sentiment",
			Message: "Rephrase negative statements to sound more positive.",
			Match:   func(c Content) bool { return c.Polarity < 0 },
		},
		{
			ID:      "neutral_tone",
			Group:   "sentiment",
			Message: "Add more expressive language to make your content engaging.",
			Match:   func(c Content) bool { return c.Polarity == 0 },
		},
		{
			ID:      "visuals",
			Message: "Include visuals like images or videos to showcase your products or services.",
			Match:   func(c Content) bool { return containsAny(c.Lower, productKeywords) },
		},
		{
			ID:      "target_audience",
			Message: "Make your content specific to a target audience for better engagement.",
			Match:   func(c Content) bool { return containsAny(c.Lower, broadAudienceWords) },
		},
		{
			ID:      "morning_post",
			Group:   "posting_time",
			Message: "Post this in the morning hours for better engagement.",
			Match:   func(c Content) bool { return strings.Contains(c.Lower, "morning") },
		},
		{
			ID:      "evening_post",
			Group:   "posting_time",
			Message: "Consider posting this in the evening for higher visibility.",
			Match:   func(c Content) bool { return strings.Contains(c.Lower, "evening") },
		},
		{
			ID:      "link",
			Message: "Add a link to direct users to your website or product.",
			Match: func(c Content) bool {
				return !strings.Contains(c.Text, "http") && !strings.Contains(c.Text, "www")
			},
		},
	}
}
