package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOutline_UnmarshalList(t *testing.T) {
	var o Outline
	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &o))
	require.False(t, o.IsText())
	require.Equal(t, []string{"a", "b"}, o.Items())
}

func TestOutline_UnmarshalText(t *testing.T) {
	var o Outline
	require.NoError(t, json.Unmarshal([]byte(`"one paragraph"`), &o))
	require.True(t, o.IsText())
	require.Equal(t, "one paragraph", o.Text)
	require.Equal(t, []string{"one paragraph"}, o.Items())

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	require.JSONEq(t, `"one paragraph"`, string(raw))
}

func TestOutline_UnmarshalRejectsObjects(t *testing.T) {
	var o Outline
	require.Error(t, json.Unmarshal([]byte(`{"x":1}`), &o))
}

func TestOutline_EmptyMarshalsAsArray(t *testing.T) {
	raw, err := json.Marshal(Blueprint{Hook: "h"})
	require.NoError(t, err)
	require.JSONEq(t, `{"hook":"h","outline":[],"cta":""}`, string(raw))
}

func TestSession_TouchIsStrictlyIncreasing(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := Session{}
	s.Touch(now)
	first := s.UpdatedAt
	require.Equal(t, now, first)

	s.Touch(now)
	require.True(t, s.UpdatedAt.After(first))

	s.Touch(now.Add(-time.Hour))
	require.True(t, s.UpdatedAt.After(first))
}

func TestPlatforms_Table(t *testing.T) {
	ps := Platforms()
	require.Len(t, ps, 3)
	require.Equal(t, PlatformLinkedIn, ps[0].Key)
	require.Equal(t, "15-25 discovery hashtags", ps[1].HashtagCount)
	require.True(t, IsSupportedPlatform(PlatformTwitter))
	require.False(t, IsSupportedPlatform("myspace"))

	ps[0].Name = "mutated"
	require.Equal(t, "LinkedIn", Platforms()[0].Name)
}
