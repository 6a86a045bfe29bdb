// Package workspace persists task boards as TOML files, one workspace per
// file, and converts the raw records into engine tasks.
//
// The package owns everything the engine declares external: reading and
// writing board state, dependency name resolution, and deriving
// hours-until-deadline from timestamps against the current clock.
package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/driftlock/kestrel/internal/board"
	"github.com/driftlock/kestrel/internal/logging"
)

// TaskRecord is a single task as persisted in a board file. Optional numeric
// fields are pointers so that an absent value is distinguishable from zero.
type TaskRecord struct {
	ID         string     `toml:"id"`
	Title      string     `toml:"title"`
	Importance *float64   `toml:"importance,omitempty"`
	Effort     *float64   `toml:"effort,omitempty"`
	Status     string     `toml:"status,omitempty"`
	Deadline   *time.Time `toml:"deadline,omitempty"`
	DependsOn  []string   `toml:"depends_on,omitempty"`
}

// boardFile is the TOML document structure of a workspace board file.
type boardFile struct {
	Workspace workspaceMeta `toml:"workspace"`
	Tasks     []TaskRecord  `toml:"tasks"`
}

type workspaceMeta struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Workspace is a loaded board: identity, source path, and raw task records.
type Workspace struct {
	ID   string
	Name string
	Path string

	Records []TaskRecord
}

// NewTaskID generates a fresh ULID for a task or workspace.
func NewTaskID() string {
	return ulid.Make().String()
}

var logger = logging.New("workspace")

// Tasks converts the workspace's records into engine tasks as of now:
// defaults are applied, deadlines become hours-until-deadline, and
// dependency references are resolved to task IDs. The engine tolerates
// whatever remains unresolved, so conversion never fails.
func (w *Workspace) Tasks(now time.Time) []board.Task {
	tasks := make([]board.Task, len(w.Records))
	for i, rec := range w.Records {
		importance := board.DefaultImportance
		if rec.Importance != nil {
			importance = *rec.Importance
		}
		effort := board.DefaultEffort
		if rec.Effort != nil {
			effort = *rec.Effort
		}

		hours := 0.0
		if rec.Deadline != nil {
			hours = rec.Deadline.Sub(now).Hours()
		}

		tasks[i] = board.Task{
			ID:                 rec.ID,
			Title:              rec.Title,
			Importance:         importance,
			Effort:             effort,
			HoursUntilDeadline: hours,
			Status:             rec.Status,
			DependsOn:          w.resolveDeps(rec),
		}
	}
	return tasks
}

// resolveDeps maps a record's dependency references to task IDs. References
// may be IDs or human-readable titles (matched case-insensitively).
// Self-references and references that resolve to nothing are dropped; the
// engine would ignore dangling IDs anyway, but dropping them here keeps the
// warning close to the raw record.
func (w *Workspace) resolveDeps(rec TaskRecord) []string {
	if len(rec.DependsOn) == 0 {
		return nil
	}

	byID := make(map[string]bool, len(w.Records))
	byTitle := make(map[string]string, len(w.Records))
	for _, r := range w.Records {
		byID[r.ID] = true
		title := strings.ToLower(strings.TrimSpace(r.Title))
		if title != "" {
			byTitle[title] = r.ID
		}
	}

	var deps []string
	for _, ref := range rec.DependsOn {
		id := ref
		if !byID[id] {
			resolved, ok := byTitle[strings.ToLower(strings.TrimSpace(ref))]
			if !ok {
				logger.Debug("dropping unresolvable dependency", "task", rec.ID, "ref", ref)
				continue
			}
			id = resolved
		}
		if id == rec.ID {
			logger.Debug("dropping self-dependency", "task", rec.ID)
			continue
		}
		deps = append(deps, id)
	}
	return deps
}

// Record returns a pointer to the record with the given ID, or nil.
func (w *Workspace) Record(id string) *TaskRecord {
	for i := range w.Records {
		if w.Records[i].ID == id {
			return &w.Records[i]
		}
	}
	return nil
}

// Lookup returns the record whose ID or title (case-insensitive) matches
// key, or nil. ID matches win over title matches.
func (w *Workspace) Lookup(key string) *TaskRecord {
	if rec := w.Record(key); rec != nil {
		return rec
	}
	for i := range w.Records {
		if strings.EqualFold(w.Records[i].Title, key) {
			return &w.Records[i]
		}
	}
	return nil
}

// Add appends a record, generating an ID when absent.
func (w *Workspace) Add(rec TaskRecord) *TaskRecord {
	if rec.ID == "" {
		rec.ID = NewTaskID()
	}
	if rec.Status == "" {
		rec.Status = string(board.StatusTodo)
	}
	w.Records = append(w.Records, rec)
	return &w.Records[len(w.Records)-1]
}

// Advance moves a task one step along todo -> ongoing -> done and returns
// the new status. Advancing a done task is an error.
func (w *Workspace) Advance(id string) (board.Status, error) {
	rec := w.Record(id)
	if rec == nil {
		return "", fmt.Errorf("task %s not found in workspace %s", id, w.ID)
	}

	switch board.NormalizeStatus(rec.Status) {
	case board.StatusTodo, board.StatusRestricted:
		rec.Status = string(board.StatusOngoing)
	case board.StatusOngoing:
		rec.Status = string(board.StatusDone)
	case board.StatusDone:
		return "", fmt.Errorf("task %s is already done", id)
	}
	return board.NormalizeStatus(rec.Status), nil
}

// Matches reports whether key identifies this workspace by ID or name
// (case-insensitive).
func (w *Workspace) Matches(key string) bool {
	return w.ID == key || strings.EqualFold(w.Name, key)
}
