package board

import "sort"

// CompletedSet marks task IDs as completed inside a simulation overlay.
// Overlaid tasks evaluate as if their raw status were done, so finishing a
// task inside a simulation can unblock its dependents without touching the
// real records.
type CompletedSet map[string]bool

// Annotated is a task together with every derived value the engine computes
// for it in one evaluation pass.
type Annotated struct {
	Task

	Urgency          float64 `json:"urgency"`
	ComputedPriority float64 `json:"computed_priority"`
	Effective        Status  `json:"effective_status"`
	BlockedReason    string  `json:"blocked_reason,omitempty"`
}

// Blocked reports whether the task is ineligible due to unmet dependencies.
func (a Annotated) Blocked() bool {
	return a.Effective == StatusRestricted
}

// Annotate runs the full evaluation pass over a task collection: the overlay
// is applied, then each task gets its urgency, computed priority, effective
// status, and blocked reason. Output order matches input order. The input
// slice is never modified.
func Annotate(tasks []Task, overlay CompletedSet) []Annotated {
	overlaid := make([]Task, len(tasks))
	for i, t := range tasks {
		if overlay[t.ID] {
			t.Status = string(StatusDone)
		}
		overlaid[i] = t
	}

	idx := indexByID(overlaid)
	out := make([]Annotated, len(overlaid))
	for i, t := range overlaid {
		res := resolveIndexed(t, idx)
		out[i] = Annotated{
			Task:             t,
			Urgency:          Urgency(t.HoursUntilDeadline),
			ComputedPriority: ComputePriority(t),
			Effective:        res.Effective,
			BlockedReason:    res.BlockedReason,
		}
	}
	return out
}

// Rank produces the board's total order: unblocked tasks before restricted
// ones, descending computed priority within each partition. Equal priorities
// keep their input order; any deterministic tie-break beyond that is a view
// concern. The input slice is not modified.
func Rank(tasks []Annotated) []Annotated {
	ranked := make([]Annotated, len(tasks))
	copy(ranked, tasks)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Blocked() != ranked[j].Blocked() {
			return !ranked[i].Blocked()
		}
		return ranked[i].ComputedPriority > ranked[j].ComputedPriority
	})
	return ranked
}

// ExecutionOrder filters a ranked list down to the tasks that could be
// worked right now: unblocked and not done. Tasks a simulation overlay has
// already completed evaluate as done and therefore drop out.
func ExecutionOrder(ranked []Annotated) []Annotated {
	var order []Annotated
	for _, a := range ranked {
		if a.Blocked() || a.Effective == StatusDone {
			continue
		}
		order = append(order, a)
	}
	return order
}
