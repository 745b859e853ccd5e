package specification

import (
	"testing"
	"time"

	"solosolver-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func toSQL(db *gorm.DB, specs ...Specification) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&model.Transaction{})
		for _, s := range specs {
			q = s.Apply(q)
		}
		var out []model.Transaction
		return q.Find(&out)
	})
}

func TestComplaintDriver_AllIsNoOp(t *testing.T) {
	db := dryRunDB(t)

	for _, driver := range []string{"", "all", "ALL", "  "} {
		sql := toSQL(db, ByComplaintDriver{Driver: driver})
		assert.NotContains(t, sql, "inferred_complaint_driver", "driver %q", driver)
	}

	sql := toSQL(db, ByComplaintDriver{Driver: "Shipping Problem"})
	assert.Contains(t, sql, "inferred_complaint_driver = 'Shipping Problem'")
}

func TestSearchSpecificationsCompose(t *testing.T) {
	db := dryRunDB(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sql := toSQL(db,
		ByUserID{UserID: "u1"},
		ComplaintTextSearch{Query: "late package"},
		ReviewedSince{Cutoff: cutoff},
		OrderBy{Field: "timestamp_review", Desc: true},
		Pagination{Limit: 20},
	)

	assert.Contains(t, sql, "user_id = 'u1'")
	assert.Contains(t, sql, "websearch_to_tsquery('english', 'late package')")
	assert.Contains(t, sql, "timestamp_review_dt >=")
	assert.Contains(t, sql, "ORDER BY timestamp_review DESC")
	assert.Contains(t, sql, "LIMIT 20")
}

func TestComplaintTextSearch_EmptyIsNoOp(t *testing.T) {
	db := dryRunDB(t)
	assert.NotContains(t, toSQL(db, ComplaintTextSearch{Query: "   "}), "tsquery")
}

func TestRankByRelevance(t *testing.T) {
	db := dryRunDB(t)

	sql := toSQL(db, RankByRelevance{Text: "Broken headphones"})
	assert.Contains(t, sql, "ts_rank(")
	assert.Contains(t, sql, "'broken | headphones'")
	assert.Contains(t, sql, "timestamp_review DESC NULLS LAST")

	sql = toSQL(db, RankByRelevance{Text: "hi"})
	assert.NotContains(t, sql, "ts_rank(")
}

func TestOrQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hi", ""},
		{"My headphones arrived broken and I'm furious", "headphones | arrived | broken | furious"},
		{"Broken, BROKEN broken!", "broken"},
		{"size&fit; DROP TABLE", "size | fit | drop | table"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OrQuery(tt.in))
		})
	}
}
