package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContentPlan is the generated artifact for one platform: angles, hashtags
// and post blueprints.
type ContentPlan struct {
	TrendingAngles []string    `json:"trending_angles"`
	Hashtags       []string    `json:"hashtags"`
	PostBlueprints []Blueprint `json:"post_blueprints"`
}

// Blueprint is a single post structure.
type Blueprint struct {
	Hook    string  `json:"hook"`
	Outline Outline `json:"outline"`
	CTA     string  `json:"cta"`
}

// Outline holds either an ordered list of points or a single free-text
// outline. Models return both shapes, so the variant is kept explicit.
type Outline struct {
	Points []string
	Text   string
	isText bool
}

// OutlinePoints builds the list variant.
func OutlinePoints(points ...string) Outline {
	if points == nil {
		points = []string{}
	}
	return Outline{Points: points}
}

// OutlineText builds the single-string variant.
func OutlineText(text string) Outline {
	return Outline{Text: text, isText: true}
}

// IsText reports whether the outline is the single-string variant.
func (o Outline) IsText() bool { return o.isText }

// Items returns the outline as a list regardless of variant.
func (o Outline) Items() []string {
	if o.isText {
		if o.Text == "" {
			return nil
		}
		return []string{o.Text}
	}
	return o.Points
}

func (o Outline) MarshalJSON() ([]byte, error) {
	if o.isText {
		return json.Marshal(o.Text)
	}
	if o.Points == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o.Points)
}

func (o *Outline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*o = OutlinePoints()
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OutlineText(s)
		return nil
	case len(data) > 0 && data[0] == '[':
		var points []string
		if err := json.Unmarshal(data, &points); err != nil {
			return err
		}
		*o = OutlinePoints(points...)
		return nil
	default:
		return fmt.Errorf("domain: outline must be a string or an array of strings, got %s", data)
	}
}

// Clone returns a deep copy of p.
func (p ContentPlan) Clone() ContentPlan {
	out := ContentPlan{
		TrendingAngles: cloneStrings(p.TrendingAngles),
		Hashtags:       cloneStrings(p.Hashtags),
	}
	if p.PostBlueprints != nil {
		out.PostBlueprints = make([]Blueprint, len(p.PostBlueprints))
		for i, bp := range p.PostBlueprints {
			bp.Outline.Points = cloneStrings(bp.Outline.Points)
			out.PostBlueprints[i] = bp
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
