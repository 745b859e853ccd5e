package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"solosolver-be/internal/entity"
)

var (
	ErrNoJSONObject = errors.New("no json object in model output")
	ErrSchema       = errors.New("classification schema violation")
)

// ParseClassification validates raw model output against the classification schema.
// The payload is decoded untyped so every field is checked explicitly.
func ParseClassification(raw string) (entity.Classification, error) {
	var out entity.Classification

	obj, err := extractObject(raw)
	if err != nil {
		return out, err
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return out, fmt.Errorf("%w: %v", ErrNoJSONObject, err)
	}

	actionable, ok, err := boolField(payload, "is_actionable")
	if err != nil {
		return out, err
	}
	if !ok {
		return out, fmt.Errorf("%w: is_actionable is required", ErrSchema)
	}
	out.IsActionable = actionable

	category, ok, err := enumField(payload, "complaint_category", entity.IsValidCategory)
	if err != nil {
		return out, err
	}
	if !ok {
		return out, fmt.Errorf("%w: complaint_category is required", ErrSchema)
	}
	out.Category = entity.ComplaintCategory(category)

	out.RecommendedDecision = entity.DecisionFurtherInformationRequired
	if v, ok, err := enumField(payload, "decision_recommendation", entity.IsValidDecision); err != nil {
		return out, err
	} else if ok {
		out.RecommendedDecision = entity.Decision(v)
	}

	if v, ok, err := boolField(payload, "info_complete"); err != nil {
		return out, err
	} else if ok {
		out.InfoComplete = v
	}

	out.Tone = entity.ToneEmpatheticStandard
	if v, ok, err := enumField(payload, "tone", entity.IsValidTone); err != nil {
		return out, err
	} else if ok {
		out.Tone = entity.Tone(v)
	}

	if v, ok, err := percentField(payload, "refund_percentage"); err != nil {
		return out, err
	} else if ok {
		out.RefundPercentage = v
	}

	out.Sentiment = entity.SentimentNeutral
	if v, ok, err := enumField(payload, "sentiment", entity.IsValidSentiment); err != nil {
		return out, err
	} else if ok {
		out.Sentiment = entity.Sentiment(v)
	}

	out.Aggression = entity.AggressionNone
	if v, ok, err := enumField(payload, "aggression", entity.IsValidAggression); err != nil {
		return out, err
	} else if ok {
		out.Aggression = entity.Aggression(v)
	}

	if v, ok := payload["reasoning"].(string); ok {
		out.Reasoning = strings.TrimSpace(v)
	}

	out.Source = entity.SourceRemote
	return out, nil
}

// extractObject strips code fences and returns the first balanced {...} block.
func extractObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}

func boolField(p map[string]interface{}, key string) (bool, bool, error) {
	v, present := p[key]
	if !present || v == nil {
		return false, false, nil
	}
	switch t := v.(type) {
	case bool:
		return t, true, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false, fmt.Errorf("%w: %s is not a boolean: %q", ErrSchema, key, t)
		}
		return b, true, nil
	}
	return false, false, fmt.Errorf("%w: %s has type %T", ErrSchema, key, v)
}

func enumField(p map[string]interface{}, key string, valid func(string) bool) (string, bool, error) {
	v, present := p[key]
	if !present || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: %s has type %T", ErrSchema, key, v)
	}
	s = strings.TrimSpace(s)
	if !valid(s) {
		return "", false, fmt.Errorf("%w: %s has unknown value %q", ErrSchema, key, s)
	}
	return s, true, nil
}

func percentField(p map[string]interface{}, key string) (int, bool, error) {
	v, present := p[key]
	if !present || v == nil {
		return 0, false, nil
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "%"), 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s is not a number: %q", ErrSchema, key, t)
		}
		f = parsed
	default:
		return 0, false, fmt.Errorf("%w: %s has type %T", ErrSchema, key, v)
	}

	if f != math.Trunc(f) || f < 0 || f > 100 {
		return 0, false, fmt.Errorf("%w: %s out of range: %v", ErrSchema, key, f)
	}
	return int(f), true, nil
}
