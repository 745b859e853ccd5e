package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"solosolver-be/internal/entity"

	"github.com/fatih/color"
)

var (
	labelColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func field(w io.Writer, label string, value interface{}) {
	labelColor.Fprintf(w, "%-12s", label)
	fmt.Fprintf(w, " %v\n", value)
}

func decisionColor(d entity.Decision) *color.Color {
	switch d {
	case entity.DecisionEscalateToHumanAgent, entity.DecisionDenyRequestPolicyViolation:
		return errColor
	case entity.DecisionFurtherInformationRequired, entity.DecisionProvidePolicyInformation:
		return warnColor
	default:
		return okColor
	}
}

func renderClassification(w io.Writer, c entity.Classification) {
	field(w, "category", c.Category)
	labelColor.Fprintf(w, "%-12s", "decision")
	decisionColor(c.RecommendedDecision).Fprintf(w, " %s\n", c.RecommendedDecision)
	if c.RefundPercentage > 0 {
		field(w, "refund", fmt.Sprintf("%d%%", c.RefundPercentage))
	}
	field(w, "tone", c.Tone)
	field(w, "sentiment", c.Sentiment)
	field(w, "aggression", c.Aggression)
	field(w, "actionable", c.IsActionable)
	field(w, "complete", c.InfoComplete)
	field(w, "source", c.Source)
	field(w, "reasoning", c.Reasoning)
}

func renderTransactions(w io.Writer, rows []*entity.Transaction) {
	for _, t := range rows {
		title := t.ProductTitle
		if title == "" {
			title = "(untitled)"
		}
		rating := "-"
		if t.RatingReview != nil {
			rating = fmt.Sprintf("%.1f", *t.RatingReview)
		}
		labelColor.Fprintf(w, "%s", title)
		fmt.Fprintf(w, "  [%s] rating %s\n", t.InferredComplaintDriver, rating)
		if body := strings.TrimSpace(t.ComplaintBodyText); body != "" {
			fmt.Fprintf(w, "    %s\n", truncate(body, 120))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
