package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"antisocial-agent/internal/domain"
)

func TestProfileFor_KnownPlatforms(t *testing.T) {
	cases := []struct {
		platform   string
		min, max   int
		blueprints int
	}{
		{domain.PlatformLinkedIn, 8, 12, 3},
		{domain.PlatformInstagram, 15, 25, 4},
		{domain.PlatformTwitter, 5, 8, 5},
	}
	for _, tc := range cases {
		p := ProfileFor(strings.ToUpper(tc.platform))
		require.Equal(t, tc.platform, p.Platform)
		require.Equal(t, tc.min, p.MinHashtags)
		require.Equal(t, tc.max, p.MaxHashtags)
		require.Equal(t, tc.blueprints, p.Blueprints)
		require.Len(t, p.examples, tc.blueprints)
		require.True(t, p.HasHashtagBounds())
	}
}

func TestProfileFor_UnknownPlatformIsGeneric(t *testing.T) {
	p := ProfileFor("mastodon")
	require.Equal(t, "mastodon", p.Platform)
	require.False(t, p.HasHashtagBounds())
	require.Equal(t, "You are a social media content expert.", p.Voice)

	msgs := BuildGenerationMessages(p, "AI", "devs", "casual")
	require.Contains(t, msgs[1].Content, "MASTODON")
	require.Contains(t, msgs[1].Content, "3-5 different post structures")
	require.Len(t, p.Fallback("AI").PostBlueprints, 5)
}

func TestBuildGenerationMessages(t *testing.T) {
	p := ProfileFor(domain.PlatformInstagram)
	msgs := BuildGenerationMessages(p, "home coffee", "students", "playful")
	require.Len(t, msgs, 2)
	require.Equal(t, domain.RoleSystem, msgs[0].Role)
	require.Contains(t, msgs[0].Content, "15-25 discovery hashtags")
	require.Equal(t, domain.RoleUser, msgs[1].Role)

	body := msgs[1].Content
	require.Contains(t, body, `Create Instagram content for "home coffee" targeting students with a playful tone.`)
	require.Contains(t, body, "Return EXACTLY this JSON structure:")
	require.Contains(t, body, `"trending_angles": [5-7 visual content angles],`)
	require.Contains(t, body, `"hook": "Visual hook for Reel/Post 1"`)
	require.Contains(t, body, `"Community element 1"`)
	require.True(t, strings.HasSuffix(body, "(Reel, Story, Tutorial, Lifestyle)."))
}

func TestBuildRevisionMessages(t *testing.T) {
	sess := domain.Session{
		SessionID: "id",
		Platform:  domain.PlatformTwitter,
		Topic:     "rust & go",
		Audience:  "backend devs",
		Tone:      "witty",
		Content: domain.ContentPlan{
			TrendingAngles: []string{"angle <1>"},
			Hashtags:       nil,
			PostBlueprints: []domain.Blueprint{{Hook: "h", Outline: domain.OutlineText("t"), CTA: "c"}},
		},
		CreatedAt: time.Unix(0, 0),
	}
	msgs := BuildRevisionMessages(ProfileFor(sess.Platform), sess, "more memes")
	require.Equal(t, ProfileFor(domain.PlatformTwitter).EditorVoice, msgs[0].Content)

	body := msgs[1].Content
	require.Contains(t, body, "for TWITTER.")
	require.Contains(t, body, "Topic: rust & go")
	require.Contains(t, body, `Current trending angles: ["angle <1>"]`)
	require.Contains(t, body, "Current hashtags: []")
	require.Contains(t, body, `"outline": "t"`)
	require.Contains(t, body, `User request: "more memes"`)
	require.Contains(t, body, "updated list of 5-8 hashtags")
	require.Contains(t, body, "optimized for twitter.")
}
