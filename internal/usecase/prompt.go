package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"antisocial-agent/internal/domain"
)

const (
	generateMaxTokens = 2000
	reviseMaxTokens   = 1500
)

// BuildGenerationMessages returns the system and user messages asking the
// model for a fresh content plan.
func BuildGenerationMessages(p Profile, topic, audience, tone string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: p.Voice},
		{Role: domain.RoleUser, Content: generationPrompt(p, topic, audience, tone)},
	}
}

// BuildRevisionMessages returns the messages asking the model to rewrite the
// session's current plan according to request.
func BuildRevisionMessages(p Profile, sess domain.Session, request string) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: p.EditorVoice},
		{Role: domain.RoleUser, Content: revisionPrompt(p, sess, request)},
	}
}

func generationPrompt(p Profile, topic, audience, tone string) string {
	if len(p.examples) == 0 {
		return strings.Join([]string{
			fmt.Sprintf("Create social media content for %s about \"%s\" for %s with a %s tone.", p.Name, topic, audience, tone),
			"",
			"Return JSON with:",
			"- trending_angles: 5-7 content angles",
			"- hashtags: platform-appropriate hashtags",
			"- post_blueprints: 3-5 different post structures with hook, outline, and cta",
			"",
			"Make each blueprint a different approach to the same topic.",
		}, "\n")
	}
	return strings.Join([]string{
		fmt.Sprintf("Create %s content for \"%s\" targeting %s with a %s tone.", p.Name, topic, audience, tone),
		"",
		"Return EXACTLY this JSON structure:",
		"{",
		fmt.Sprintf("  \"trending_angles\": [%s],", p.anglesHint),
		fmt.Sprintf("  \"hashtags\": [%s],", p.hashtagsHint),
		"  \"post_blueprints\": " + promptJSON(p.examples, "  ", true),
		"}",
		"",
		p.closing,
	}, "\n")
}

func revisionPrompt(p Profile, sess domain.Session, request string) string {
	hashtags := "updated list of hashtags"
	if p.HasHashtagBounds() {
		hashtags = fmt.Sprintf("updated list of %d-%d hashtags", p.MinHashtags, p.MaxHashtags)
	}
	return strings.Join([]string{
		fmt.Sprintf("You are helping modify social media content for %s.", strings.ToUpper(sess.Platform)),
		"",
		"Current content:",
		"Topic: " + sess.Topic,
		"Audience: " + sess.Audience,
		"Tone: " + sess.Tone,
		"",
		"Current trending angles: " + promptJSON(sess.Content.TrendingAngles, "", false),
		"Current hashtags: " + promptJSON(sess.Content.Hashtags, "", false),
		"Current post blueprints: " + promptJSON(sess.Content.PostBlueprints, "", true),
		"",
		fmt.Sprintf("User request: \"%s\"", request),
		"",
		"Based on the user's request, modify the content and return ONLY a JSON response with the updated content in this exact format:",
		"{",
		"  \"trending_angles\": [updated list of 5-7 angles],",
		fmt.Sprintf("  \"hashtags\": [%s],", hashtags),
		"  \"post_blueprints\": [updated list of post structures with hook, outline, cta]",
		"}",
		"",
		"Do not write anything outside the JSON object.",
		fmt.Sprintf("Make sure the modifications align with the user's request while keeping the content optimized for %s.", sess.Platform),
	}, "\n")
}

// promptJSON renders v for embedding in a prompt. Nil slices render as [].
func promptJSON(v any, prefix string, indent bool) string {
	switch s := v.(type) {
	case []string:
		if s == nil {
			v = []string{}
		}
	case []domain.Blueprint:
		if s == nil {
			v = []domain.Blueprint{}
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent(prefix, "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "[]"
	}
	return strings.TrimRight(buf.String(), "\n")
}
