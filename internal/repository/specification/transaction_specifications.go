package specification

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const complaintVector = "to_tsvector('english', coalesce(complaint_body_text, ''))"

// ComplaintTextSearch matches the complaint body with web-search syntax.
// An empty query matches everything.
type ComplaintTextSearch struct {
	Query string
}

func (s ComplaintTextSearch) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	return db.Where(complaintVector+" @@ websearch_to_tsquery('english', ?)", q)
}

// ByComplaintDriver filters on the inferred complaint driver. "all" and empty are no-ops.
type ByComplaintDriver struct {
	Driver string
}

func (s ByComplaintDriver) Apply(db *gorm.DB) *gorm.DB {
	d := strings.TrimSpace(s.Driver)
	if d == "" || strings.EqualFold(d, "all") {
		return db
	}
	return db.Where("inferred_complaint_driver = ?", d)
}

type ReviewedSince struct {
	Cutoff time.Time
}

func (s ReviewedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp_review_dt >= ?", s.Cutoff)
}

// RankByRelevance orders rows by how many complaint terms they share with Text,
// falling back to recency. Rows without any shared term are kept.
type RankByRelevance struct {
	Text string
}

func (s RankByRelevance) Apply(db *gorm.DB) *gorm.DB {
	q := OrQuery(s.Text)
	if q != "" {
		db = db.Order(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "ts_rank(" + complaintVector + ", to_tsquery('english', ?)) DESC",
				Vars:               []interface{}{q},
				WithoutParentheses: true,
			},
		})
	}
	return db.Order("timestamp_review DESC NULLS LAST")
}

const maxQueryTerms = 12

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "was": {}, "with": {}, "this": {}, "that": {}, "have": {},
	"but": {}, "not": {}, "you": {}, "are": {}, "they": {}, "from": {}, "had": {}, "has": {},
	"its": {}, "it's": {}, "i'm": {}, "my": {}, "me": {}, "our": {}, "your": {},
}

// OrQuery turns free text into a to_tsquery expression that matches any of its terms.
func OrQuery(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
		if len(terms) == maxQueryTerms {
			break
		}
	}
	return strings.Join(terms, " | ")
}
