package response

import (
	"fmt"
	"strings"

	"solosolver-be/internal/entity"
	"solosolver-be/pkg/complaint/grounding"
	"solosolver-be/pkg/llm"
)

const systemPrompt = `You are a customer support agent for an online store. Write the reply the customer will read.

Rules:
- Plain text only, no markdown headings or JSON.
- Only promise what the recommended decision allows.
- Never mention internal labels, classifications or scores.
- Keep it under 180 words.`

func branchInstructions(b Branch) string {
	switch b {
	case BranchAskForDetails:
		return "The customer has not described a problem yet. Greet them briefly and ask what happened, " +
			"which product and which order it concerns. Do not offer any remedy."
	case BranchClarification:
		return "The complaint is missing information needed to act. Acknowledge the issue with empathy and " +
			"ask specific follow-up questions to collect what is missing. Do not commit to a remedy yet."
	default:
		return "Write a resolution reply. Open with a formal salutation, acknowledge the problem with empathy, " +
			"refer to the customer's related past purchases when they are listed, state a concrete next step " +
			"consistent with the recommended decision and refund percentage, and close with a formal sign-off."
	}
}

// buildMessages renders the tail of the conversation followed by one user turn
// carrying the grounding for this request.
func buildMessages(req Request, branch Branch, historyTail int) []llm.Message {
	messages := []llm.Message{
		{Role: "system", Content: systemPrompt + "\n\n" + branchInstructions(branch)},
	}

	history := req.ChatHistory
	if historyTail > 0 && len(history) > historyTail {
		history = history[len(history)-historyTail:]
	}
	for _, turn := range history {
		if strings.TrimSpace(turn.Message) == "" {
			continue
		}
		role := "user"
		if turn.Sender == entity.ChatSenderBot {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Message})
	}

	messages = append(messages, llm.Message{Role: "user", Content: buildContextBlock(req)})
	return messages
}

func buildContextBlock(req Request) string {
	var sb strings.Builder

	pc := req.Context
	if pc == nil {
		pc = &grounding.PipelineContext{
			ProfileSummary: grounding.NoHistoryProfile,
			HistorySummary: grounding.NoHistoryMatches,
		}
	}
	c := pc.Classification

	sb.WriteString("<classification>\n")
	fmt.Fprintf(&sb, "category: %s\n", c.Category)
	fmt.Fprintf(&sb, "recommended_decision: %s\n", c.RecommendedDecision)
	fmt.Fprintf(&sb, "refund_percentage: %d\n", c.RefundPercentage)
	fmt.Fprintf(&sb, "tone: %s\n", c.Tone)
	fmt.Fprintf(&sb, "sentiment: %s\n", c.Sentiment)
	fmt.Fprintf(&sb, "aggression: %s\n", c.Aggression)
	sb.WriteString("</classification>\n\n")

	sb.WriteString("<customer_profile>\n")
	sb.WriteString(pc.ProfileSummary)
	sb.WriteString("\n</customer_profile>\n\n")

	sb.WriteString("<related_history>\n")
	sb.WriteString(pc.HistorySummary)
	sb.WriteString("\n</related_history>\n\n")

	sb.WriteString("<customer_message>\n")
	sb.WriteString(req.ComplaintText)
	sb.WriteString("\n</customer_message>\n")

	return sb.String()
}
