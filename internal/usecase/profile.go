package usecase

import (
	"strings"

	"antisocial-agent/internal/domain"
)

// Profile holds everything an agent needs to know about one platform.
type Profile struct {
	Platform string
	Name     string

	// Voice is the generation system prompt. EditorVoice frames the same
	// voice for revisions.
	Voice       string
	EditorVoice string

	// MinHashtags and MaxHashtags are zero when the platform has no bounds.
	MinHashtags int
	MaxHashtags int
	Blueprints  int

	anglesHint   string
	hashtagsHint string
	examples     []domain.Blueprint
	closing      string
	fallback     func(topic string) domain.ContentPlan
}

// HasHashtagBounds reports whether the profile constrains the hashtag count.
func (p Profile) HasHashtagBounds() bool {
	return p.MinHashtags > 0 && p.MaxHashtags >= p.MinHashtags
}

// Fallback returns the deterministic plan used when the model reply cannot be
// parsed.
func (p Profile) Fallback(topic string) domain.ContentPlan {
	if p.fallback == nil {
		return twitterFallback(topic)
	}
	return p.fallback(topic)
}

var profiles = map[string]Profile{
	domain.PlatformLinkedIn: {
		Platform: domain.PlatformLinkedIn,
		Name:     "LinkedIn",
		Voice: "You are a LinkedIn content expert. Create professional, engaging content " +
			"focused on career growth, industry insights, and business value. Use 8-12 professional hashtags.",
		EditorVoice: "You are a LinkedIn content expert helping modify existing content. " +
			"Focus on professional tone, career insights, and business value. " +
			"Always return valid JSON with updated content when asked to modify.",
		MinHashtags:  8,
		MaxHashtags:  12,
		Blueprints:   3,
		anglesHint:   "5-7 professional content angles",
		hashtagsHint: "8-12 professional hashtags including #LinkedIn, #Professional, #CareerGrowth",
		examples: []domain.Blueprint{
			blueprint("Professional hook line 1", "Professional call-to-action", "Professional point 1", "Professional point 2", "Professional point 3"),
			blueprint("Different professional hook line 2", "Different professional CTA", "Different point 1", "Different point 2", "Different point 3"),
			blueprint("Third professional hook line 3", "Third professional CTA", "Third point 1", "Third point 2", "Third point 3"),
		},
		closing:  "Make all 3 blueprints different approaches to the same topic.",
		fallback: linkedInFallback,
	},
	domain.PlatformInstagram: {
		Platform: domain.PlatformInstagram,
		Name:     "Instagram",
		Voice: "You are an Instagram content expert. Create visual, engaging content " +
			"focused on lifestyle, tutorials, and aesthetic appeal. Use 15-25 discovery hashtags.",
		EditorVoice: "You are an Instagram content expert helping modify existing content. " +
			"Focus on visual appeal, lifestyle content, and engagement. " +
			"Always return valid JSON with updated content when asked to modify.",
		MinHashtags:  15,
		MaxHashtags:  25,
		Blueprints:   4,
		anglesHint:   "5-7 visual content angles",
		hashtagsHint: "15-25 discovery hashtags including #Instagram, #Visual, #Aesthetic",
		examples: []domain.Blueprint{
			blueprint("Visual hook for Reel/Post 1", "Instagram CTA 1 (save, share, tag)", "Visual element 1", "Story element 1", "Engagement element 1"),
			blueprint("Different visual hook for Story/Carousel 2", "Different Instagram CTA 2", "Different visual 1", "Different story 1", "Different engagement 1"),
			blueprint("Third visual hook for Tutorial/Behind-scenes 3", "Tutorial CTA 3", "Tutorial step 1", "Tutorial step 2", "Tutorial step 3"),
			blueprint("Fourth aesthetic hook for Lifestyle content 4", "Lifestyle CTA 4", "Lifestyle element 1", "Aesthetic element 1", "Community element 1"),
		},
		closing:  "Make all 4 blueprints different content formats (Reel, Story, Tutorial, Lifestyle).",
		fallback: instagramFallback,
	},
	domain.PlatformTwitter: {
		Platform: domain.PlatformTwitter,
		Name:     "Twitter",
		Voice: "You are a Twitter content expert. Create concise, engaging content " +
			"focused on discussions, threads, and real-time engagement. Use 5-8 strategic hashtags.",
		EditorVoice: "You are a Twitter content expert helping modify existing content. " +
			"Focus on concise, engaging discussions and real-time relevance. " +
			"Always return valid JSON with updated content when asked to modify.",
		MinHashtags:  5,
		MaxHashtags:  8,
		Blueprints:   5,
		anglesHint:   "5-7 Twitter content angles",
		hashtagsHint: "5-8 strategic hashtags including #Twitter, #Thread",
		examples: []domain.Blueprint{
			blueprint("Thread hook (under 280 chars) 1", "Thread CTA encouraging replies", "Tweet 1 point", "Tweet 2 point", "Tweet 3 point", "Tweet 4 point"),
			blueprint("Quick take hook (under 280 chars) 2", "Quick take CTA for retweets", "Quick insight 1", "Quick insight 2", "Quick insight 3"),
			blueprint("Discussion starter hook 3", "Discussion CTA asking for opinions", "Discussion point 1", "Discussion point 2", "Question for community"),
			blueprint("Hot take hook 4", "Hot take CTA for engagement", "Controversial point 1", "Supporting evidence", "Why it matters"),
			blueprint("Educational thread hook 5", "Educational CTA for sharing", "Educational point 1", "Educational point 2", "Educational point 3", "Key takeaway"),
		},
		closing:  "Make all 5 blueprints different Twitter formats (Thread, Quick take, Discussion, Hot take, Educational).",
		fallback: twitterFallback,
	},
}

// ProfileFor returns the profile for platform. Unknown platforms get a
// generic profile with no hashtag bounds.
func ProfileFor(platform string) Profile {
	key := strings.ToLower(strings.TrimSpace(platform))
	if p, ok := profiles[key]; ok {
		return p
	}
	return Profile{
		Platform:    key,
		Name:        strings.ToUpper(key),
		Voice:       "You are a social media content expert.",
		EditorVoice: "You are a social media content expert helping modify content. Always return valid JSON when asked to modify.",
		fallback:    twitterFallback,
	}
}
