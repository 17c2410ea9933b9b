package model

import (
	"math"
	"sort"
)

// CategoryCount is one slice of the category distribution
type CategoryCount struct {
	Category string  `json:"category"`
	Emoji    string  `json:"emoji"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// CategoryDistribution counts records per category
type CategoryDistribution struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
}

// Distribute counts records by category. Records without a category count as
// UncategorizedLabel. Slices are ordered by count descending, then by name.
func Distribute(records []*RiskRecord, taxonomy *Taxonomy) *CategoryDistribution {
	counts := make(map[string]int)
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = UncategorizedLabel
		}
		counts[category]++
	}

	dist := &CategoryDistribution{
		Total:      len(records),
		Categories: make([]CategoryCount, 0, len(counts)),
	}
	for category, count := range counts {
		cc := CategoryCount{
			Category: category,
			Emoji:    DefaultEmoji,
			Count:    count,
			Percent:  math.Round(float64(count) / float64(len(records)) * 100),
		}
		if taxonomy != nil {
			cc.Emoji = taxonomy.Emoji(category)
		}
		dist.Categories = append(dist.Categories, cc)
	}

	sort.Slice(dist.Categories, func(i, j int) bool {
		a, b := dist.Categories[i], dist.Categories[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	return dist
}
