package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
)

const notSpecified = "Not specified"

var (
	headerColor = color.New(color.Bold)
	dimColor    = color.New(color.Faint)
	bandColors  = map[model.PriorityBand]*color.Color{
		model.PriorityHigh:   color.New(color.FgRed, color.Bold),
		model.PriorityMedium: color.New(color.FgYellow),
		model.PriorityLow:    color.New(color.FgGreen),
	}
)

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func printRiskTable(w io.Writer, taxonomy *model.Taxonomy, records []*model.RiskRecord) {
	if len(records) == 0 {
		dimColor.Fprintln(w, "No risks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headerColor.Fprintln(tw, "ID\tNAME\tCATEGORY\tSUB-CATEGORY\tRISK TYPE")
	for _, r := range records {
		category := orNotSpecified(r.Category)
		if r.Category != "" {
			category = taxonomy.Emoji(r.Category) + " " + r.Category
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.DisplayName(),
			category,
			orNotSpecified(r.Subcategory),
			orNotSpecified(r.RiskType),
		)
	}
	_ = tw.Flush()
}

func printPageFooter(w io.Writer, number int, page *model.RiskPage) {
	if page.HasMore {
		dimColor.Fprintf(w, "page %d, next cursor: %s\n", number, page.NextCursor)
		return
	}
	dimColor.Fprintf(w, "page %d, last page\n", number)
}

func printRisk(w io.Writer, taxonomy *model.Taxonomy, r *model.RiskRecord) {
	headerColor.Fprintf(w, "%s %s\n", taxonomy.Emoji(r.Category), r.DisplayName())
	fmt.Fprintf(w, "  ID:           %s\n", r.ID)
	fmt.Fprintf(w, "  Category:     %s\n", orNotSpecified(r.Category))
	fmt.Fprintf(w, "  Sub-Category: %s\n", orNotSpecified(r.Subcategory))
	fmt.Fprintf(w, "  Risk Type:    %s\n", orNotSpecified(r.RiskType))
	if r.URL != "" {
		fmt.Fprintf(w, "  URL:          %s\n", r.URL)
	}
	if !r.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created:      %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

const barWidth = 30

func printDistribution(w io.Writer, dist *model.CategoryDistribution) {
	if dist.Total == 0 {
		dimColor.Fprintln(w, "No risks found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headerColor.Fprintln(tw, "CATEGORY\tCOUNT\tSHARE\t")
	for _, c := range dist.Categories {
		bar := strings.Repeat("█", int(c.Percent)*barWidth/100)
		fmt.Fprintf(tw, "%s %s\t%d\t%.0f%%\t%s\n", c.Emoji, c.Category, c.Count, c.Percent, bar)
	}
	fmt.Fprintf(tw, "Total\t%d\t\t\n", dist.Total)
	_ = tw.Flush()
}

func printPriority(w io.Writer, a *usecase.PriorityAssessment) {
	band := bandColors[a.Band]
	fmt.Fprintf(w, "Impact:          %s %s (total %d)\n", a.Impact.Emoji, a.Impact.Label, a.TotalImpact)
	fmt.Fprintf(w, "Likelihood:      %s %s\n", a.Likelihood.Emoji, a.Likelihood.Label)
	fmt.Fprintf(w, "Effort:          %s\n", a.Effort.Label)
	fmt.Fprintf(w, "Expected impact: %.2f\n", a.ExpectedImpact)
	fmt.Fprintf(w, "Priority:        %s\n", band.Sprintf("%.2f (%s)", a.Priority, a.Band))
}

func printSummary(w io.Writer, s *model.AssessmentSummary) {
	fmt.Fprintf(w, "Total risks:           %d\n", s.TotalRisks)
	high := fmt.Sprintf("%d", s.HighPriorityRisks)
	if s.HighPriorityRisks > 0 {
		high = bandColors[model.PriorityHigh].Sprint(high)
	}
	fmt.Fprintf(w, "High priority risks:   %s\n", high)
	fmt.Fprintf(w, "Total expected impact: %.1f\n", s.TotalExpectedImpact)
}

func printTaxonomyTree(w io.Writer, taxonomy *model.Taxonomy) {
	for _, c := range taxonomy.Tree() {
		headerColor.Fprintf(w, "%s %s\n", taxonomy.Emoji(c.Name), c.Name)
		for _, s := range c.Subcategories {
			fmt.Fprintf(w, "  %s\n", s.Name)
			for _, r := range s.RiskTypes {
				dimColor.Fprintf(w, "    - %s\n", r)
			}
		}
	}
}
