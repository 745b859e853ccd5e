package response

import (
	"strings"
	"unicode/utf8"

	"solosolver-be/internal/entity"
)

type Branch string

const (
	BranchAskForDetails Branch = "ask_for_details"
	BranchClarification Branch = "clarification"
	BranchResolution    Branch = "resolution"
)

// minDetailLength is the rune count under which a message cannot carry a complaint.
const minDetailLength = 10

// Greeter reports whether a message is only a salutation.
type Greeter interface {
	IsGreeting(text string) bool
}

// SelectBranch picks the reply shape from the text and its classification.
// A greeting only asks for details when nothing actionable came with it.
// greeter may be nil.
func SelectBranch(text string, c entity.Classification, greeter Greeter) Branch {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minDetailLength {
		return BranchAskForDetails
	}
	if greeter != nil && greeter.IsGreeting(trimmed) && !c.IsActionable {
		return BranchAskForDetails
	}
	if !c.IsActionable || !c.InfoComplete {
		return BranchClarification
	}
	return BranchResolution
}
