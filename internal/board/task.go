// Package board implements Kestrel's priority and dependency-resolution
// engine: computed priorities, effective statuses, the ranking policy, and
// the execution simulator that previews completion order.
//
// The engine is deliberately total -- every invalid or missing input degrades
// to a safe default rather than returning an error, because its output feeds
// a live board that must always render something.
package board

import "strings"

// Status is a task lifecycle value.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusOngoing indicates the task is actively being worked.
	StatusOngoing Status = "ongoing"

	// StatusDone indicates the task is complete. Done is terminal: it is
	// never overridden by dependency state.
	StatusDone Status = "done"

	// StatusRestricted indicates the task has at least one incomplete
	// dependency. It is derived by the resolver and never author-set in a
	// well-formed board, but it is tolerated as raw input.
	StatusRestricted Status = "restricted"
)

// DefaultImportance is used when a task's importance is missing or invalid.
const DefaultImportance = 3.0

// DefaultEffort is used when a task's effort is missing or invalid. It is
// also the minimum valid divisor: non-positive effort is clamped here.
const DefaultEffort = 1.0

// PlaceholderTitle substitutes for an empty task title.
const PlaceholderTitle = "Untitled task"

// Task is a raw task record as supplied by collaborators. The engine never
// mutates a Task; all derived values live in Annotated.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Importance is intended to range 0-5. NaN falls back to DefaultImportance.
	Importance float64 `json:"importance"`

	// Effort is intended to range 0-5. NaN and non-positive values are
	// treated as DefaultEffort.
	Effort float64 `json:"effort"`

	// HoursUntilDeadline is derived upstream from a deadline timestamp and
	// "now". Zero or negative means overdue or deadline-less; both rank
	// maximally urgent.
	HoursUntilDeadline float64 `json:"hours_until_deadline"`

	// Status is the author-set lifecycle value. Loose input is accepted;
	// see NormalizeStatus.
	Status string `json:"status"`

	// DependsOn holds the IDs of tasks that must be done before this one
	// may be started or finished. Nil is treated as empty.
	DependsOn []string `json:"depends_on"`
}

// DisplayTitle returns the task title, or PlaceholderTitle when empty.
func (t Task) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return PlaceholderTitle
	}
	return t.Title
}

// statusSynonyms is the single source of truth for loose status parsing.
// Keys are lower-cased, whitespace-trimmed raw values.
var statusSynonyms = map[string]Status{
	"todo":        StatusTodo,
	"to do":       StatusTodo,
	"to-do":       StatusTodo,
	"open":        StatusTodo,
	"pending":     StatusTodo,
	"not started": StatusTodo,
	"not_started": StatusTodo,

	"ongoing":     StatusOngoing,
	"doing":       StatusOngoing,
	"wip":         StatusOngoing,
	"active":      StatusOngoing,
	"in progress": StatusOngoing,
	"in_progress": StatusOngoing,
	"in-progress": StatusOngoing,
	"inprogress":  StatusOngoing,

	"done":      StatusDone,
	"complete":  StatusDone,
	"completed": StatusDone,
	"finished":  StatusDone,
	"closed":    StatusDone,

	"blocked":    StatusRestricted,
	"restricted": StatusRestricted,
}

// NormalizeStatus maps an open string space onto the closed Status enum.
// Matching is case-insensitive and whitespace-trimmed; unrecognized values
// default to StatusTodo, the least surprising state.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusSynonyms[key]; ok {
		return s
	}
	return StatusTodo
}

// NormalizedStatus returns the task's raw status normalized onto the enum.
func (t Task) NormalizedStatus() Status {
	return NormalizeStatus(t.Status)
}

// IsDone reports whether the task's raw status normalizes to done.
func (t Task) IsDone() bool {
	return t.NormalizedStatus() == StatusDone
}
