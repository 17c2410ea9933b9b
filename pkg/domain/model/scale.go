package model

import "slices"

// ScaleLevel is a labelled point of a rating scale
type ScaleLevel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

// Scale is a rating scale. Lookup maps arbitrary values onto a level with
// Strategy and falls back to Fallback when nothing matches.
type Scale struct {
	Levels   []ScaleLevel
	Strategy BucketStrategy
	Fallback int
}

// Keys returns level values in ascending order
func (s Scale) Keys() []int {
	keys := make([]int, len(s.Levels))
	for i, l := range s.Levels {
		keys[i] = l.Value
	}
	slices.Sort(keys)
	return keys
}

// Lookup returns the level value belongs to
func (s Scale) Lookup(value float64) ScaleLevel {
	key, ok := Bucketize(value, s.Keys(), s.Strategy)
	if !ok {
		key = s.Fallback
	}
	return s.level(key)
}

func (s Scale) level(key int) ScaleLevel {
	for _, l := range s.Levels {
		if l.Value == key {
			return l
		}
	}
	return ScaleLevel{Value: key}
}

var (
	// ImpactScale labels impact scores; values are floored before lookup
	ImpactScale = Scale{
		Levels: []ScaleLevel{
			{Value: 1, Label: "Minor", Emoji: "🍃"},
			{Value: 2, Label: "Low", Emoji: "🌱"},
			{Value: 3, Label: "Moderate", Emoji: "🔥"},
			{Value: 4, Label: "Significant", Emoji: "🚒"},
			{Value: 5, Label: "Critical", Emoji: "💥"},
		},
		Strategy: BucketFloor,
		Fallback: 1,
	}

	// LikelihoodScale labels likelihood percentages with the largest key not exceeding the value
	LikelihoodScale = Scale{
		Levels: []ScaleLevel{
			{Value: 0, Label: "Not at all likely", Emoji: "❄️"},
			{Value: 25, Label: "Low likelihood", Emoji: "🌊"},
			{Value: 50, Label: "Medium likelihood", Emoji: "⚡"},
			{Value: 75, Label: "High likelihood", Emoji: "🌪️"},
			{Value: 100, Label: "Certain", Emoji: "☄️"},
		},
		Strategy: BucketStepDown,
		Fallback: 0,
	}

	// EffortScale labels effort ratings
	EffortScale = Scale{
		Levels: []ScaleLevel{
			{Value: 1, Label: "Minimal"},
			{Value: 2, Label: "Low"},
			{Value: 3, Label: "Moderate"},
			{Value: 4, Label: "High"},
			{Value: 5, Label: "Extreme"},
		},
		Strategy: BucketFloor,
		Fallback: 1,
	}
)
