package board

import "strings"

// maxReasonTitles caps how many unmet dependency titles appear in a blocked
// reason before it is truncated with an ellipsis.
const maxReasonTitles = 4

// Resolution is the resolver's verdict for a single task.
type Resolution struct {
	// Effective is the status used for ranking and display. It equals the
	// normalized raw status except when at least one dependency is unmet,
	// in which case it is StatusRestricted. Done always wins.
	Effective Status `json:"effective_status"`

	// BlockedReason names the unmet dependencies. Empty unless Effective
	// is StatusRestricted because of them.
	BlockedReason string `json:"blocked_reason,omitempty"`
}

// ResolveStatus computes a task's effective status against the full task
// collection.
//
// The dependency check is exactly one level deep: a dependency is unmet iff
// it resolves to a task in the collection whose own raw status is not done.
// A dependency's effective status is irrelevant, so the check never walks
// the graph and cannot loop on cyclic input (a cycle simply leaves every
// member restricted). Dependency IDs that resolve to nothing are ignored
// rather than treated as blocking, since upstream name resolution can fail.
func ResolveStatus(t Task, all []Task) Resolution {
	return resolveIndexed(t, indexByID(all))
}

// indexByID builds an ID lookup for a task collection. Later duplicates win,
// matching the behavior of a plain keyed overwrite.
func indexByID(all []Task) map[string]Task {
	idx := make(map[string]Task, len(all))
	for _, t := range all {
		idx[t.ID] = t
	}
	return idx
}

func resolveIndexed(t Task, idx map[string]Task) Resolution {
	status := t.NormalizedStatus()

	// Completion is authoritative: done cannot be overridden by
	// dependency state.
	if status == StatusDone {
		return Resolution{Effective: StatusDone}
	}

	var unmet []Task
	for _, depID := range t.DependsOn {
		if depID == t.ID {
			// A task is never its own dependency.
			continue
		}
		dep, ok := idx[depID]
		if !ok {
			continue
		}
		if !dep.IsDone() {
			unmet = append(unmet, dep)
		}
	}

	if len(unmet) > 0 {
		return Resolution{
			Effective:     StatusRestricted,
			BlockedReason: blockedReason(unmet),
		}
	}
	return Resolution{Effective: status}
}

// blockedReason renders the unmet dependency list as "waiting on A, B",
// truncated to maxReasonTitles entries with an ellipsis suffix.
func blockedReason(unmet []Task) string {
	titles := make([]string, 0, maxReasonTitles)
	for _, dep := range unmet {
		if len(titles) == maxReasonTitles {
			break
		}
		title := strings.TrimSpace(dep.Title)
		if title == "" {
			title = dep.ID
		}
		titles = append(titles, title)
	}

	reason := "waiting on " + strings.Join(titles, ", ")
	if len(unmet) > maxReasonTitles {
		reason += ", …"
	}
	return reason
}
