package domain

const (
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
)

// PlatformInfo is the read-only description of a supported platform.
type PlatformInfo struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	HashtagCount string `json:"hashtag_count"`
	Focus        string `json:"focus"`
}

var platforms = []PlatformInfo{
	{
		Key:          PlatformLinkedIn,
		Name:         "LinkedIn",
		Description:  "Professional networking and B2B content",
		HashtagCount: "8-12 professional hashtags",
		Focus:        "Career insights, industry trends, thought leadership",
	},
	{
		Key:          PlatformInstagram,
		Name:         "Instagram",
		Description:  "Visual storytelling and lifestyle content",
		HashtagCount: "15-25 discovery hashtags",
		Focus:        "Visual content, tutorials, behind-the-scenes",
	},
	{
		Key:          PlatformTwitter,
		Name:         "Twitter",
		Description:  "Real-time engagement and discussions",
		HashtagCount: "5-8 strategic hashtags",
		Focus:        "Threads, quick insights, discussions",
	},
}

// Platforms returns a copy of the supported platform table in display order.
func Platforms() []PlatformInfo {
	out := make([]PlatformInfo, len(platforms))
	copy(out, platforms)
	return out
}

// IsSupportedPlatform reports whether key names a supported platform.
func IsSupportedPlatform(key string) bool {
	for _, p := range platforms {
		if p.Key == key {
			return true
		}
	}
	return false
}
