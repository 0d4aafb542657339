package usecase

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"antisocial-agent/internal/domain"
)

var requiredPlanKeys = []string{"trending_angles", "hashtags", "post_blueprints"}

// ParseFailure reports model output that does not hold a content plan. It is
// an expected outcome, not a transport error.
type ParseFailure struct {
	Reason string
	Raw    string
}

func (e *ParseFailure) Error() string {
	return "usecase: unparseable content plan: " + e.Reason
}

// ParseContentPlan extracts the JSON object spanning the first '{' to the
// last '}' of text and validates that it carries all three plan fields.
// Braces in surrounding prose are not balanced, so a stray '}' after the
// object makes the window invalid.
func ParseContentPlan(text string) (domain.ContentPlan, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return domain.ContentPlan{}, &ParseFailure{Reason: "no JSON object found", Raw: text}
	}
	window := text[start : end+1]
	if !gjson.Valid(window) {
		return domain.ContentPlan{}, &ParseFailure{Reason: "invalid JSON", Raw: text}
	}
	root := gjson.Parse(window)
	if !root.IsObject() {
		return domain.ContentPlan{}, &ParseFailure{Reason: "not a JSON object", Raw: text}
	}
	for _, key := range requiredPlanKeys {
		if !root.Get(key).Exists() {
			return domain.ContentPlan{}, &ParseFailure{Reason: fmt.Sprintf("missing %q", key), Raw: text}
		}
	}

	return domain.ContentPlan{
		TrendingAngles: angleList(root.Get("trending_angles")),
		Hashtags:       hashtagList(root.Get("hashtags")),
		PostBlueprints: blueprintList(root.Get("post_blueprints")),
	}, nil
}

func angleList(v gjson.Result) []string {
	return stringList(v, func(item gjson.Result) string {
		if item.IsObject() {
			if angle := item.Get("angle"); angle.Exists() {
				return angle.String()
			}
		}
		return scalarText(item)
	}, false)
}

func hashtagList(v gjson.Result) []string {
	return stringList(v, scalarText, true)
}

// stringList flattens v into strings. A bare string becomes one entry, or is
// split on whitespace when split is set.
func stringList(v gjson.Result, item func(gjson.Result) string, split bool) []string {
	out := []string{}
	switch {
	case v.IsArray():
		v.ForEach(func(_, elem gjson.Result) bool {
			out = append(out, item(elem))
			return true
		})
	case v.Type == gjson.String:
		if split {
			out = append(out, strings.Fields(v.String())...)
		} else if s := v.String(); s != "" {
			out = append(out, s)
		}
	case v.Type == gjson.Null:
	default:
		out = append(out, item(v))
	}
	return out
}

func blueprintList(v gjson.Result) []domain.Blueprint {
	out := []domain.Blueprint{}
	switch {
	case v.IsArray():
		v.ForEach(func(_, elem gjson.Result) bool {
			out = append(out, toBlueprint(elem))
			return true
		})
	case v.Type == gjson.Null:
	default:
		out = append(out, toBlueprint(v))
	}
	return out
}

func toBlueprint(v gjson.Result) domain.Blueprint {
	if !v.IsObject() {
		return domain.Blueprint{Hook: scalarText(v), Outline: domain.OutlinePoints()}
	}
	bp := domain.Blueprint{
		Hook: scalarText(v.Get("hook")),
		CTA:  scalarText(v.Get("cta")),
	}
	outline := v.Get("outline")
	switch {
	case outline.IsArray():
		bp.Outline = domain.OutlinePoints(stringList(outline, scalarText, false)...)
	case outline.Type == gjson.String:
		bp.Outline = domain.OutlineText(outline.String())
	case !outline.Exists() || outline.Type == gjson.Null:
		bp.Outline = domain.OutlinePoints()
	default:
		bp.Outline = domain.OutlineText(outline.Raw)
	}
	return bp
}

// scalarText returns strings unquoted, null as "", and anything else as its
// raw JSON.
func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}
