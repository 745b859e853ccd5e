package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"solosolver-be/internal/entity"
	"solosolver-be/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	classifyJSON, classifyLexicon = false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func emptyLexicon(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))
	return path
}

func TestClassify_JSON(t *testing.T) {
	out, err := runRoot(t, "classify", "--json", "--lexicon", emptyLexicon(t), "my lamp arrived broken")
	require.NoError(t, err)

	var c entity.Classification
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, entity.CategoryDamagedItem, c.Category)
	assert.Equal(t, entity.SourceHeuristic, c.Source)
}

func TestClassify_Human(t *testing.T) {
	out, err := runRoot(t, "classify", "--lexicon", emptyLexicon(t), "my", "lamp", "arrived", "broken")
	require.NoError(t, err)

	assert.Contains(t, out, "category")
	assert.Contains(t, out, string(entity.CategoryDamagedItem))
	assert.Contains(t, out, "heuristic")
}

func TestClassify_BlankText(t *testing.T) {
	_, err := runRoot(t, "classify", "--lexicon", emptyLexicon(t), "   ")
	assert.Error(t, err)
}

func TestBuildSearchRequest(t *testing.T) {
	searchUser, searchCategory, searchDays, searchLimit = "u-1", "Sizing", 30, 5
	t.Cleanup(func() { searchUser, searchCategory, searchDays, searchLimit = "", "", 0, 20 })

	req := buildSearchRequest([]string{"too small"})

	assert.Equal(t, "u-1", req.UserId)
	assert.Equal(t, "too small", req.SearchQuery)
	assert.Equal(t, "Sizing", req.Category)
	require.NotNil(t, req.TimeRange)
	assert.Equal(t, 30, req.TimeRange.Int())
	assert.Equal(t, 5, req.Limit.Int())
}

func TestBuildSearchRequest_NoWindow(t *testing.T) {
	searchDays = 0
	req := buildSearchRequest(nil)
	assert.Nil(t, req.TimeRange)
	assert.Empty(t, req.SearchQuery)
}

func TestFormatEvent(t *testing.T) {
	e := events.BaseEvent{Type: events.ComplaintAnalyzed, Data: map[string]interface{}{
		"user_id":            "u-9",
		"complaint_category": "Damaged Item",
		"decision":           "Full_Refund_With_Return",
		"occurred_at":        "2026-01-02T03:04:05Z",
	}}

	line := formatEvent(e)
	assert.Contains(t, line, "user=u-9")
	assert.Contains(t, line, "category=Damaged Item")
	assert.Contains(t, line, "decision=Full_Refund_With_Return")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
