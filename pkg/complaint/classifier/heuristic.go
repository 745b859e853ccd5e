package classifier

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"solosolver-be/internal/entity"
)

type keywordGroup struct {
	name     string
	patterns []*regexp.Regexp
	words    []string
	outcome  groupOutcome
}

type groupOutcome struct {
	category entity.ComplaintCategory
	decision entity.Decision
	refund   int
	tone     entity.Tone
}

// Heuristic is the deterministic keyword classifier. It is safe for concurrent use.
type Heuristic struct {
	lex      *Lexicon
	groups   []keywordGroup
	negative keywordGroup
	anger    keywordGroup
	urgency  keywordGroup
	praise   keywordGroup
	greeting []*regexp.Regexp
}

func NewHeuristic(lex *Lexicon) *Heuristic {
	if lex == nil {
		lex = DefaultLexicon()
	}

	h := &Heuristic{lex: lex}
	// Priority order: first match wins.
	h.groups = []keywordGroup{
		compileGroup("sizing", lex.Sizing, groupOutcome{entity.CategorySizingIssue, entity.DecisionExchangeOffered, 0, entity.ToneHelpfulInformative}),
		compileGroup("damage", lex.Damage, groupOutcome{entity.CategoryDamagedItem, entity.DecisionFullRefundWithReturn, 100, entity.ToneUnderstandingApologetic}),
		compileGroup("shipping", lex.Shipping, groupOutcome{entity.CategoryShippingProblem, entity.DecisionFurtherInformationRequired, 25, entity.ToneEmpatheticStandard}),
		compileGroup("returns", lex.Returns, groupOutcome{entity.CategoryReturnProcessIssue, entity.DecisionProvidePolicyInformation, 0, entity.ToneHelpfulInformative}),
	}
	h.negative = compileGroup("negative", lex.Negative, groupOutcome{})
	h.anger = compileGroup("anger", lex.Anger, groupOutcome{})
	h.urgency = compileGroup("urgency", lex.Urgency, groupOutcome{})
	h.praise = compileGroup("praise", lex.Praise, groupOutcome{})
	for _, g := range lex.Greeting {
		h.greeting = append(h.greeting, regexp.MustCompile(`\b`+phrase(g)+`\b`))
	}
	return h
}

func compileGroup(name string, words []string, outcome groupOutcome) keywordGroup {
	g := keywordGroup{name: name, outcome: outcome}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		stem, prefix := strings.CutSuffix(w, "*")
		if strings.TrimSpace(stem) == "" {
			continue
		}
		g.words = append(g.words, stem)
		g.patterns = append(g.patterns, keywordPattern(stem, prefix))
	}
	return g
}

// keywordPattern matches w as a whole word or phrase, or as a word prefix.
func keywordPattern(w string, prefix bool) *regexp.Regexp {
	if prefix {
		return regexp.MustCompile(`\b` + phrase(w) + `\w*`)
	}
	return regexp.MustCompile(`\b` + phrase(w) + `\b`)
}

// phrase quotes a keyword and lets its inner spaces match any whitespace run.
func phrase(w string) string {
	parts := strings.Fields(w)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, `\s+`)
}

func (g keywordGroup) matches(text string) []string {
	var hits []string
	for i, re := range g.patterns {
		if re.MatchString(text) {
			hits = append(hits, g.words[i])
		}
	}
	return hits
}

var (
	qualityOutcome = groupOutcome{entity.CategoryQualityIssue, entity.DecisionFurtherInformationRequired, 25, entity.ToneEmpatheticStandard}
	otherOutcome   = groupOutcome{entity.CategoryOther, entity.DecisionProvidePolicyInformation, 0, entity.ToneNeutralDirect}
)

// TooShort reports whether text is at or under the actionable length.
// Such text is never actionable, whichever classifier looked at it.
func (h *Heuristic) TooShort(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) <= h.lex.Thresholds.ActionableMinLength
}

func (h *Heuristic) Classify(text string) entity.Classification {
	normalized := strings.ToLower(strings.TrimSpace(text))
	length := utf8.RuneCountInString(normalized)

	outcome := otherOutcome
	matchedGroup := ""
	var matchedWords []string
	for _, g := range h.groups {
		if hits := g.matches(normalized); len(hits) > 0 {
			outcome = g.outcome
			matchedGroup = g.name
			matchedWords = hits
			break
		}
	}
	if matchedGroup == "" && length > h.lex.Thresholds.QualityMinLength {
		outcome = qualityOutcome
	}

	negHits := h.negative.matches(normalized)
	angerHits := h.anger.matches(normalized)
	urgencyHits := h.urgency.matches(normalized)
	praiseHits := h.praise.matches(normalized)

	aggression := entity.AggressionNone
	switch {
	case len(angerHits) >= 2:
		aggression = entity.AggressionMedium
	case len(angerHits) == 1:
		aggression = entity.AggressionLow
	}
	if len(urgencyHits) > 0 {
		aggression = aggression.Escalate()
	}

	negative := len(negHits) > 0 || len(angerHits) > 0
	sentiment := entity.SentimentNeutral
	switch {
	case negative && aggression == entity.AggressionHigh:
		sentiment = entity.SentimentVeryNegative
	case negative && len(praiseHits) > 0:
		sentiment = entity.SentimentMixed
	case negative:
		sentiment = entity.SentimentNegative
	case len(praiseHits) > 0:
		sentiment = entity.SentimentPositive
	}

	return entity.Classification{
		IsActionable:        length > h.lex.Thresholds.ActionableMinLength && matchedGroup != "",
		Category:            outcome.category,
		RecommendedDecision: outcome.decision,
		InfoComplete:        length > h.lex.Thresholds.InfoCompleteMinLength,
		Tone:                outcome.tone,
		RefundPercentage:    outcome.refund,
		Sentiment:           sentiment,
		Aggression:          aggression,
		Reasoning:           heuristicReasoning(matchedGroup, matchedWords, length, negHits, angerHits, urgencyHits),
		Source:              entity.SourceHeuristic,
	}
}

// IsGreeting reports whether the text contains a greeting word or phrase.
func (h *Heuristic) IsGreeting(text string) bool {
	normalized := strings.ToLower(text)
	for _, re := range h.greeting {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

func heuristicReasoning(group string, words []string, length int, neg, anger, urgency []string) string {
	var sb strings.Builder
	if group != "" {
		fmt.Fprintf(&sb, "Keyword rules matched %s terms [%s].", group, strings.Join(words, ", "))
	} else {
		fmt.Fprintf(&sb, "No category keywords matched (length %d).", length)
	}
	if len(neg)+len(anger) > 0 {
		fmt.Fprintf(&sb, " Emotional terms: [%s].", strings.Join(append(append([]string{}, neg...), anger...), ", "))
	}
	if len(urgency) > 0 {
		fmt.Fprintf(&sb, " Urgency terms: [%s].", strings.Join(urgency, ", "))
	}
	return sb.String()
}
