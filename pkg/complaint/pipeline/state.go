package pipeline

type State string

const (
	StateReceived            State = "received"
	StateClassifying         State = "classifying"
	StateClassifiedRemote    State = "classified_remote"
	StateClassifiedHeuristic State = "classified_heuristic"
	StateContextBuilt        State = "context_built"
	StateGenerating          State = "generating"
	StateGenerated           State = "generated"
	StateGeneratedFallback   State = "generated_fallback"
	StateRecorded            State = "recorded"
	StateResponded           State = "responded"
)

// next lists the legal successors of each state. Recorded is optional, so
// both generation outcomes may go straight to Responded.
var next = map[State][]State{
	StateReceived:            {StateClassifying},
	StateClassifying:         {StateClassifiedRemote, StateClassifiedHeuristic},
	StateClassifiedRemote:    {StateContextBuilt},
	StateClassifiedHeuristic: {StateContextBuilt},
	StateContextBuilt:        {StateGenerating},
	StateGenerating:          {StateGenerated, StateGeneratedFallback},
	StateGenerated:           {StateRecorded, StateResponded},
	StateGeneratedFallback:   {StateRecorded, StateResponded},
	StateRecorded:            {StateResponded},
}

// CanTransition reports whether to is a legal successor of from.
func CanTransition(from, to State) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
