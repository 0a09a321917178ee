package recommend

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a structured result as a markdown report.
func RenderMarkdown(r *Result) string {
	var b strings.Builder

	b.WriteString("# Environmental Health Assessment\n\n")

	if r.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.Summary)
	}

	if r.RiskLevel != "" {
		fmt.Fprintf(&b, "## Risk Level: %s\n\n", strings.ToUpper(string(r.RiskLevel)))
	}

	if len(r.Categories) > 0 {
		b.WriteString("## Environmental Recommendations\n\n")
		for _, category := range r.Categories {
			fmt.Fprintf(&b, "### %s\n\n", category.Name)
			for _, item := range category.Items {
				fmt.Fprintf(&b, "- %s\n", item)
			}
			b.WriteString("\n")
		}
	}

	if len(r.AllergyRecommendations) > 0 {
		b.WriteString("## Allergy-Specific Recommendations\n\n")
		for _, advice := range r.AllergyRecommendations {
			fmt.Fprintf(&b, "### %s (Risk: %s)\n\n", advice.Allergy, strings.ToUpper(string(advice.RiskLevel)))
			for _, rec := range advice.Recommendations {
				fmt.Fprintf(&b, "- %s\n", rec)
			}
			b.WriteString("\n")
		}
	}

	if len(r.ConditionRecommendations) > 0 {
		b.WriteString("## Medical Condition Management\n\n")
		for _, advice := range r.ConditionRecommendations {
			fmt.Fprintf(&b, "### %s (Risk: %s)\n\n", advice.Condition, strings.ToUpper(string(advice.RiskLevel)))
			for _, rec := range advice.Recommendations {
				fmt.Fprintf(&b, "- %s\n", rec)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
