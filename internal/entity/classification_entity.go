package entity

type ComplaintCategory string

const (
	CategorySizingIssue        ComplaintCategory = "Sizing Issue"
	CategoryDamagedItem        ComplaintCategory = "Damaged Item"
	CategoryNotAsDescribed     ComplaintCategory = "Not as Described"
	CategoryShippingProblem    ComplaintCategory = "Shipping Problem"
	CategoryPolicyInquiry      ComplaintCategory = "Policy Inquiry"
	CategoryLateDelivery       ComplaintCategory = "Late Delivery"
	CategoryWrongItemReceived  ComplaintCategory = "Wrong Item Received"
	CategoryQualityIssue       ComplaintCategory = "Quality Issue"
	CategoryReturnProcessIssue ComplaintCategory = "Return Process Issue"
	CategoryOther              ComplaintCategory = "Other"
	CategoryNotApplicable      ComplaintCategory = "N/A"
)

var AllCategories = []ComplaintCategory{
	CategorySizingIssue, CategoryDamagedItem, CategoryNotAsDescribed, CategoryShippingProblem,
	CategoryPolicyInquiry, CategoryLateDelivery, CategoryWrongItemReceived, CategoryQualityIssue,
	CategoryReturnProcessIssue, CategoryOther, CategoryNotApplicable,
}

type Decision string

const (
	DecisionFullRefundNoReturn         Decision = "Full_Refund_No_Return"
	DecisionFullRefundWithReturn       Decision = "Full_Refund_With_Return"
	DecisionPartialRefundNoReturn      Decision = "Partial_Refund_No_Return"
	DecisionPartialRefundWithReturn    Decision = "Partial_Refund_With_Return"
	DecisionExchangeOffered            Decision = "Exchange_Offered"
	DecisionDenyRequestPolicyViolation Decision = "Deny_Request_Policy_Violation"
	DecisionFurtherInformationRequired Decision = "Further_Information_Required"
	DecisionEscalateToHumanAgent       Decision = "Escalate_To_Human_Agent"
	DecisionProvidePolicyInformation   Decision = "Provide_Policy_Information"
	DecisionOther                      Decision = "Other"
)

var AllDecisions = []Decision{
	DecisionFullRefundNoReturn, DecisionFullRefundWithReturn, DecisionPartialRefundNoReturn,
	DecisionPartialRefundWithReturn, DecisionExchangeOffered, DecisionDenyRequestPolicyViolation,
	DecisionFurtherInformationRequired, DecisionEscalateToHumanAgent, DecisionProvidePolicyInformation,
	DecisionOther,
}

type Tone string

const (
	ToneEmpatheticStandard      Tone = "Empathetic_Standard"
	ToneNeutralDirect           Tone = "Neutral_Direct"
	ToneUnderstandingApologetic Tone = "Understanding_Apologetic"
	ToneFirmPolite              Tone = "Firm_Polite"
	ToneHelpfulInformative      Tone = "Helpful_Informative"
)

var AllTones = []Tone{
	ToneEmpatheticStandard, ToneNeutralDirect, ToneUnderstandingApologetic, ToneFirmPolite, ToneHelpfulInformative,
}

type Sentiment string

const (
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentMixed        Sentiment = "mixed"
	SentimentVeryNegative Sentiment = "very_negative"
)

var AllSentiments = []Sentiment{
	SentimentPositive, SentimentNeutral, SentimentNegative, SentimentMixed, SentimentVeryNegative,
}

type Aggression string

const (
	AggressionNone   Aggression = "none"
	AggressionLow    Aggression = "low"
	AggressionMedium Aggression = "medium"
	AggressionHigh   Aggression = "high"
)

var AllAggressionLevels = []Aggression{AggressionNone, AggressionLow, AggressionMedium, AggressionHigh}

// Rank orders aggression levels so they can be compared and escalated.
func (a Aggression) Rank() int {
	for i, lvl := range AllAggressionLevels {
		if lvl == a {
			return i
		}
	}
	return 0
}

// Escalate returns the next level up, capped at high.
func (a Aggression) Escalate() Aggression {
	r := a.Rank() + 1
	if r >= len(AllAggressionLevels) {
		return AggressionHigh
	}
	return AllAggressionLevels[r]
}

type ClassificationSource string

const (
	SourceRemote    ClassificationSource = "remote"
	SourceHeuristic ClassificationSource = "heuristic"
)

type Classification struct {
	IsActionable        bool                 `json:"is_actionable"`
	Category            ComplaintCategory    `json:"complaint_category"`
	RecommendedDecision Decision             `json:"decision_recommendation"`
	InfoComplete        bool                 `json:"info_complete"`
	Tone                Tone                 `json:"tone"`
	RefundPercentage    int                  `json:"refund_percentage"`
	Sentiment           Sentiment            `json:"sentiment"`
	Aggression          Aggression           `json:"aggression"`
	Reasoning           string               `json:"reasoning"`
	Source              ClassificationSource `json:"source"`
}

func IsValidCategory(v string) bool {
	for _, c := range AllCategories {
		if string(c) == v {
			return true
		}
	}
	return false
}

func IsValidDecision(v string) bool {
	for _, d := range AllDecisions {
		if string(d) == v {
			return true
		}
	}
	return false
}

func IsValidTone(v string) bool {
	for _, t := range AllTones {
		if string(t) == v {
			return true
		}
	}
	return false
}

func IsValidSentiment(v string) bool {
	for _, s := range AllSentiments {
		if string(s) == v {
			return true
		}
	}
	return false
}

func IsValidAggression(v string) bool {
	for _, a := range AllAggressionLevels {
		if string(a) == v {
			return true
		}
	}
	return false
}
