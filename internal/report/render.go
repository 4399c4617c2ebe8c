package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/billaudit/internal/model"
	"github.com/gyeh/billaudit/internal/normalize"
)

// RenderText writes a human-readable findings report, grouped by severity
// tier with P1 first.
func RenderText(w io.Writer, matches []model.RuleMatch, summary Summary) {
	fmt.Fprintln(w, "=== billaudit findings ===")
	fmt.Fprintf(w, "Potential savings: $%.2f (duplicates $%.2f, other issues $%.2f)\n",
		normalize.CentsToDollars(summary.TotalSavingsCents),
		normalize.CentsToDollars(summary.DuplicateSavingsCents),
		normalize.CentsToDollars(summary.ExternalSavingsCents))
	if summary.SuppressedIssues > 0 {
		fmt.Fprintf(w, "Suppressed %d overlapping external issue(s) to avoid double counting\n", summary.SuppressedIssues)
	}
	fmt.Fprintln(w)

	for _, cat := range []model.Category{model.CategoryDefinite, model.CategoryLikely, model.CategoryReview, model.CategoryValid} {
		var inTier []model.RuleMatch
		for _, m := range matches {
			if m.Category == cat {
				inTier = append(inTier, m)
			}
		}
		if len(inTier) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s — %s (%d)\n", cat, cat.Label(), len(inTier))
		for _, m := range inTier {
			fmt.Fprintf(w, "  [%s] $%.2f  %s\n", m.Rule, m.SavingsDollars(), m.Reason)
			fmt.Fprintf(w, "        lines: %s\n", strings.Join(m.LineIDs, ", "))
		}
		fmt.Fprintln(w)
	}

	if len(matches) == 0 {
		fmt.Fprintln(w, "No duplicate patterns found.")
	}
}
