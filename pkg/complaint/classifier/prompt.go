package classifier

import (
	"fmt"
	"strings"

	"solosolver-be/internal/entity"
)

// Input is what the remote classifier sees besides the raw complaint.
type Input struct {
	Text           string
	ProfileSummary string
	HistorySummary string
}

func buildPrompt(in Input) string {
	var sb strings.Builder

	sb.WriteString("You classify e-commerce customer complaints for a support team.\n")
	sb.WriteString("Reply with ONE JSON object and nothing else. Keys:\n")
	sb.WriteString(`  "is_actionable": boolean` + "\n")
	fmt.Fprintf(&sb, "  \"complaint_category\": one of %s\n", quoteAll(entity.AllCategories))
	fmt.Fprintf(&sb, "  \"decision_recommendation\": one of %s\n", quoteAll(entity.AllDecisions))
	sb.WriteString(`  "info_complete": boolean` + "\n")
	fmt.Fprintf(&sb, "  \"tone\": one of %s\n", quoteAll(entity.AllTones))
	sb.WriteString(`  "refund_percentage": integer 0-100` + "\n")
	fmt.Fprintf(&sb, "  \"sentiment\": one of %s\n", quoteAll(entity.AllSentiments))
	fmt.Fprintf(&sb, "  \"aggression\": one of %s\n", quoteAll(entity.AllAggressionLevels))
	sb.WriteString(`  "reasoning": one or two sentences` + "\n\n")

	sb.WriteString("<customer_profile>\n")
	sb.WriteString(in.ProfileSummary)
	sb.WriteString("\n</customer_profile>\n\n")

	sb.WriteString("<related_history>\n")
	sb.WriteString(in.HistorySummary)
	sb.WriteString("\n</related_history>\n\n")

	sb.WriteString("<complaint>\n")
	sb.WriteString(in.Text)
	sb.WriteString("\n</complaint>\n")

	return sb.String()
}

func quoteAll[T ~string](values []T) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", string(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
