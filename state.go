package texdiff

// State is the position of a run in the diff pipeline.
// Runs move forward through Resolving, Diffing, Rewriting, Compiling
// (optional) and Publishing to Done. A fatal error moves them to Failed.
// Warnings never change the state.
type State int

const (
	StateResolving State = iota
	StateDiffing
	StateRewriting
	StateCompiling
	StatePublishing
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateResolving:  "resolving",
	StateDiffing:    "diffing",
	StateRewriting:  "rewriting",
	StateCompiling:  "compiling",
	StatePublishing: "publishing",
	StateDone:       "done",
	StateFailed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

