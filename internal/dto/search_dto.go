package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"solosolver-be/internal/entity"
)

// FlexInt accepts a JSON number or a numeric string. Empty strings decode to 0.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		data = []byte(s)
	}

	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsInf(n, 0) || n != math.Trunc(n) {
		return fmt.Errorf("expected an integer, got %s", string(data))
	}
	*f = FlexInt(n)
	return nil
}

func (f *FlexInt) Int() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

type SearchTransactionsRequest struct {
	UserId      string   `json:"userId" validate:"omitempty,max=128"`
	SearchQuery string   `json:"searchQuery" validate:"omitempty,max=500"`
	Category    string   `json:"category" validate:"omitempty,max=64"`
	TimeRange   *FlexInt `json:"timeRange" validate:"omitempty,min=0"`
	Limit       *FlexInt `json:"limit"`
}

type SearchInsights struct {
	TotalResults      int      `json:"totalResults"`
	Categories        []string `json:"categories"`
	AvgRating         float64  `json:"avgRating"`
	VerifiedPurchases int      `json:"verifiedPurchases"`
}

type SearchQueryEcho struct {
	UserId      string `json:"userId,omitempty"`
	SearchQuery string `json:"searchQuery,omitempty"`
	Category    string `json:"category,omitempty"`
	TimeRange   int    `json:"timeRange,omitempty"`
	Limit       int    `json:"limit"`
}

type SearchTransactionsResponse struct {
	Transactions []*entity.Transaction `json:"transactions"`
	Insights     SearchInsights        `json:"insights"`
	Query        SearchQueryEcho       `json:"query"`
}
