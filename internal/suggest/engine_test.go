package suggest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/anime-shed/doc-insight-go/internal/errors"
	"github.com/anime-shed/doc-insight-go/internal/mocks"
)

const (
	msgHashtags = "Add hashtags to increase visibility, e.g., #Trending #YourTopic."
	msgCTA      = "Include a call-to-action, e.g., 'Learn more at the link in our bio.'"
	msgEmojis   = "Include emojis to make your content visually appealing and fun."
	msgLengthy  = "Your content is lengthy. Simplify it to retain reader attention."
	msgNegative = "Rephrase negative statements to sound more positive."
	msgNeutral  = "Add more expressive language to make your content engaging."
	msgVisuals  = "Include visuals like images or videos to showcase your products or services."
	msgAudience = "Make your content specific to a target audience for better engagement."
	msgMorning  = "Post this in the morning hours for better engagement."
	msgEvening  = "Consider posting this in the evening for higher visibility."
	msgLink     = "Add a link to direct users to your website or product."
)

// fixedPolarity always reports the same score
type fixedPolarity float64

func (f fixedPolarity) Polarity(string) (float64, error) {
	return float64(f), nil
}

func TestEngine_Generate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		polarity float64
		want     []string
	}{
		{
			name:     "only the neutral rule fires",
			text:     "#tag click here 😀 http://x.com",
			polarity: 0,
			want:     []string{msgNeutral},
		},
		{
			name:     "positive text with everything fires nothing",
			text:     "#tag click here 😀 http://x.com",
			polarity: 0.5,
			want:     []string{},
		},
		{
			name:     "buy now scenario neutral",
			text:     "Buy now at www.example.com",
			polarity: 0,
			want:     []string{msgHashtags, msgEmojis, msgNeutral},
		},
		{
			name:     "buy now scenario positive",
			text:     "Buy now at www.example.com",
			polarity: 0.2,
			want:     []string{msgHashtags, msgEmojis},
		},
		{
			name:     "negative excludes neutral",
			text:     "#x learn more 🔥 www",
			polarity: -0.3,
			want:     []string{msgNegative},
		},
		{
			name:     "morning wins over evening",
			text:     "#x Check Out this morning and evening 🎉 https://a.b",
			polarity: 0.1,
			want:     []string{msgMorning},
		},
		{
			name:     "evening alone",
			text:     "#x click 👍 EVENING http",
			polarity: 0.1,
			want:     []string{msgEvening},
		},
		{
			name:     "keyword rules are case-insensitive",
			text:     "#x click 😂 New PRODUCT for Everyone http",
			polarity: 0.1,
			want:     []string{msgVisuals, msgAudience},
		},
		{
			name:     "link check is case-sensitive",
			text:     "#x click 😀 HTTP WWW",
			polarity: 0.1,
			want:     []string{msgLink},
		},
		{
			name:     "empty text",
			text:     "",
			polarity: 0,
			want:     []string{msgHashtags, msgCTA, msgEmojis, msgNeutral, msgLink},
		},
		{
			name:     "full catalog order",
			text:     strings.Repeat("sale anyone morning ", 34),
			polarity: -1,
			want:     []string{msgHashtags, msgCTA, msgEmojis, msgLengthy, msgNegative, msgVisuals, msgAudience, msgMorning, msgLink},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(fixedPolarity(tt.polarity))

			got, polarity, err := e.Generate(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.polarity, polarity)
		})
	}
}

func TestEngine_WordCountBoundary(t *testing.T) {
	e := NewEngine(fixedPolarity(0.5))

	exactly100 := strings.TrimSpace(strings.Repeat("word ", 100))
	got, _, err := e.Generate(exactly100)
	require.NoError(t, err)
	assert.NotContains(t, got, msgLengthy)

	got, _, err = e.Generate(exactly100 + " more")
	require.NoError(t, err)
	assert.Contains(t, got, msgLengthy)

	// Any whitespace separates words
	got, _, err = e.Generate(strings.Repeat("w\t\n", 101))
	require.NoError(t, err)
	assert.Contains(t, got, msgLengthy)
}

func TestEngine_Idempotent(t *testing.T) {
	e := NewEngine(NewLexiconAnalyzer())
	text := "Terrible service, nobody should buy this product in the evening."

	first, p1, err := e.Generate(text)
	require.NoError(t, err)
	second, p2, err := e.Generate(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, p1, p2)
}

func TestEngine_PolarityFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockPolarityAnalyzer(ctrl)
	analyzer.EXPECT().Polarity("hello").Return(0.0, errors.New("model unavailable"))

	got, _, err := NewEngine(analyzer).Generate("hello")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.Equal(t, 500, apperrors.GetStatusCode(err))
}

func TestEngine_PolarityAnalyzerReceivesFullText(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockPolarityAnalyzer(ctrl)
	analyzer.EXPECT().Polarity("page one page two").Return(0.4, nil).Times(1)

	_, polarity, err := NewEngine(analyzer).Generate("page one page two")
	require.NoError(t, err)
	assert.Equal(t, 0.4, polarity)
}

func TestDefaultRules_Catalog(t *testing.T) {
	rules := DefaultRules()

	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
		assert.NotEmpty(t, r.Message)
		assert.NotNil(t, r.Match)
	}

	assert.Equal(t, []string{
		"hashtags", "call_to_action", "emojis", "lengthy",
		"negative_tone", "neutral_tone", "visuals", "target_audience",
		"morning_post", "evening_post", "link",
	}, ids)
	assert.Equal(t, rules[4].Group, rules[5].Group)
	assert.Equal(t, rules[8].Group, rules[9].Group)
}

func TestNewEngineWithRules(t *testing.T) {
	always := Rule{ID: "always", Message: "always", Match: func(Content) bool { return true }}
	groupA := Rule{ID: "a", Group: "g", Message: "a", Match: func(Content) bool { return true }}
	groupB := Rule{ID: "b", Group: "g", Message: "b", Match: func(Content) bool { return true }}

	e := NewEngineWithRules([]Rule{groupA, groupB, always, always}, fixedPolarity(0))
	got, _, err := e.Generate("anything")
	require.NoError(t, err)

	// Duplicates are kept; only the group is exclusive
	assert.Equal(t, []string{"a", "always", "always"}, got)
	assert.Len(t, e.Rules(), 4)
}
