package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_DerivedFields(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "a", Title: "A", Importance: 5, Effort: 1, HoursUntilDeadline: 1, Status: "todo"},
		{ID: "b", Title: "B", Importance: 5, Effort: 1, HoursUntilDeadline: 100, Status: "todo", DependsOn: []string{"a"}},
	}

	ann := Annotate(tasks, nil)
	require.Len(t, ann, 2)

	assert.InDelta(t, 5.0, ann[0].ComputedPriority, 1e-12)
	assert.Equal(t, StatusTodo, ann[0].Effective)

	assert.InDelta(t, 0.05, ann[1].ComputedPriority, 1e-12)
	assert.Equal(t, StatusRestricted, ann[1].Effective)
	assert.Equal(t, "waiting on A", ann[1].BlockedReason)
}

func TestAnnotate_OverlayUnblocks(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "a", Status: "todo"},
		{ID: "b", Status: "todo", DependsOn: []string{"a"}},
	}

	// Without the overlay b is restricted; with a completed, b is eligible
	// and a evaluates as done. The input set is never mutated.
	ann := Annotate(tasks, CompletedSet{"a": true})
	assert.Equal(t, StatusDone, ann[0].Effective)
	assert.Equal(t, StatusTodo, ann[1].Effective)
	assert.Equal(t, "todo", tasks[0].Status)
}

func TestRank_PartitionAndOrder(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "low", Importance: 1, Effort: 1, HoursUntilDeadline: 10, Status: "todo"},
		{ID: "blocked-high", Importance: 5, Effort: 1, HoursUntilDeadline: 1, Status: "todo", DependsOn: []string{"low"}},
		{ID: "high", Importance: 5, Effort: 1, HoursUntilDeadline: 2, Status: "todo"},
	}

	ranked := Rank(Annotate(tasks, nil))
	require.Len(t, ranked, 3)

	// Blocked tasks sort after all unblocked ones regardless of priority.
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "low", ranked[1].ID)
	assert.Equal(t, "blocked-high", ranked[2].ID)

	// Within each partition priorities are non-increasing.
	seenBlocked := false
	prev := 0.0
	for i, a := range ranked {
		if a.Blocked() {
			if !seenBlocked {
				seenBlocked = true
				prev = a.ComputedPriority
				continue
			}
		} else {
			require.False(t, seenBlocked, "unblocked task after blocked partition at %d", i)
		}
		if i > 0 {
			assert.LessOrEqual(t, a.ComputedPriority, prev)
		}
		prev = a.ComputedPriority
	}
}

func TestRank_StableOnTies(t *testing.T) {
	t.Parallel()

	// Identical priorities keep their input order.
	tasks := []Task{
		{ID: "first", Importance: 3, Effort: 1, HoursUntilDeadline: 10, Status: "todo"},
		{ID: "second", Importance: 3, Effort: 1, HoursUntilDeadline: 10, Status: "todo"},
		{ID: "third", Importance: 3, Effort: 1, HoursUntilDeadline: 10, Status: "todo"},
	}

	ranked := Rank(Annotate(tasks, nil))
	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	ann := Annotate([]Task{
		{ID: "a", Importance: 1, Effort: 1, HoursUntilDeadline: 10, Status: "todo"},
		{ID: "b", Importance: 5, Effort: 1, HoursUntilDeadline: 1, Status: "todo"},
	}, nil)

	Rank(ann)
	assert.Equal(t, "a", ann[0].ID)
	assert.Equal(t, "b", ann[1].ID)
}

func TestExecutionOrder_FiltersDoneAndBlocked(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "done", Status: "done"},
		{ID: "eligible", Importance: 2, Effort: 1, HoursUntilDeadline: 5, Status: "todo"},
		{ID: "gated", Status: "todo", DependsOn: []string{"eligible"}},
	}

	order := ExecutionOrder(Rank(Annotate(tasks, nil)))
	require.Len(t, order, 1)
	assert.Equal(t, "eligible", order[0].ID)
}

func TestExecutionOrder_OverlayCompletionsDropOut(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "a", Status: "todo"},
		{ID: "b", Status: "todo", DependsOn: []string{"a"}},
	}

	order := ExecutionOrder(Rank(Annotate(tasks, CompletedSet{"a": true})))
	require.Len(t, order, 1)
	assert.Equal(t, "b", order[0].ID)
}

func BenchmarkAnnotateAndRank(b *testing.B) {
	tasks := make([]Task, 200)
	for i := range tasks {
		tasks[i] = Task{
			ID:                 string(rune('a' + i%26)),
			Importance:         float64(i % 6),
			Effort:             float64(i%5 + 1),
			HoursUntilDeadline: float64(i),
			Status:             "todo",
		}
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Rank(Annotate(tasks, nil))
	}
}
