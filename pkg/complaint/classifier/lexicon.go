package classifier

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the keyword groups and thresholds used by the heuristic.
// Keywords match whole words or phrases. A trailing "*" marks a stem, so
// "frustrat*" hits "frustrated" and "frustrating" but "fit" never hits "fitness".
type Lexicon struct {
	Sizing   []string `yaml:"sizing"`
	Damage   []string `yaml:"damage"`
	Shipping []string `yaml:"shipping"`
	Returns  []string `yaml:"returns"`

	Negative []string `yaml:"negative"`
	Anger    []string `yaml:"anger"`
	Urgency  []string `yaml:"urgency"`
	Praise   []string `yaml:"praise"`
	Greeting []string `yaml:"greeting"`

	Thresholds Thresholds `yaml:"thresholds"`
}

type Thresholds struct {
	ActionableMinLength   int `yaml:"actionable_min_length"`
	InfoCompleteMinLength int `yaml:"info_complete_min_length"`
	QualityMinLength      int `yaml:"quality_min_length"`
}

func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Sizing: []string{
			"size", "sizes", "sizing", "fit", "fits", "fitting", "too small", "too big", "too large",
			"too tight", "too loose", "runs small", "runs large", "tight", "loose", "measurement", "measurements",
		},
		Damage: []string{
			"damage", "damaged", "broke", "broken", "breaks", "defect", "defects", "defective",
			"crack", "cracked", "shattered", "torn", "ripped", "scratch", "scratched", "scratches",
			"dented", "crushed", "faulty", "malfunction", "malfunctioning", "stopped working",
			"not working", "poor quality",
		},
		Shipping: []string{
			"ship", "shipped", "shipping", "shipment", "deliver", "delivered", "delivery",
			"package", "parcel", "courier", "tracking", "delay", "delayed", "never arrived",
			"not arrived", "hasn't arrived", "lost in transit", "transit",
		},
		Returns: []string{
			"return", "returned", "returning", "refund", "refunds", "refunded", "money back",
			"exchange", "send back", "store credit", "policy",
		},
		Negative: []string{
			"disappoint*", "unhappy", "terrible", "awful", "horrible", "worst", "bad", "upset",
			"frustrat*", "annoy*", "unacceptable", "poor",
		},
		Anger: []string{
			"furious", "angry", "outrage*", "livid", "ridiculous", "scam*", "disgust*", "hate",
			"pissed", "fed up",
		},
		Urgency: []string{
			"urgent*", "immediately", "asap", "right now", "lawyer*", "legal", "chargeback", "dispute",
		},
		Praise: []string{
			"thank*", "great", "love*", "excellent", "amazing", "happy", "appreciate*", "perfect", "wonderful",
		},
		Greeting: []string{
			"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "greetings", "howdy",
		},
		Thresholds: Thresholds{
			ActionableMinLength:   10,
			InfoCompleteMinLength: 20,
			QualityMinLength:      30,
		},
	}
}

// LoadLexicon overlays the YAML file at path on the defaults.
// A missing file yields the defaults; a malformed one is an error.
func LoadLexicon(path string) (*Lexicon, error) {
	lex := DefaultLexicon()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lex, nil
		}
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var overlay Lexicon
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex.merge(&overlay)
	return lex, nil
}

func (l *Lexicon) merge(o *Lexicon) {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&l.Sizing, o.Sizing)
	pick(&l.Damage, o.Damage)
	pick(&l.Shipping, o.Shipping)
	pick(&l.Returns, o.Returns)
	pick(&l.Negative, o.Negative)
	pick(&l.Anger, o.Anger)
	pick(&l.Urgency, o.Urgency)
	pick(&l.Praise, o.Praise)
	pick(&l.Greeting, o.Greeting)

	if o.Thresholds.ActionableMinLength > 0 {
		l.Thresholds.ActionableMinLength = o.Thresholds.ActionableMinLength
	}
	if o.Thresholds.InfoCompleteMinLength > 0 {
		l.Thresholds.InfoCompleteMinLength = o.Thresholds.InfoCompleteMinLength
	}
	if o.Thresholds.QualityMinLength > 0 {
		l.Thresholds.QualityMinLength = o.Thresholds.QualityMinLength
	}
}
