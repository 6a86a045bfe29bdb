package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkTask builds a minimal task for resolver tests.
func mkTask(id, status string, deps ...string) Task {
	return Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    status,
		DependsOn: deps,
	}
}

func TestResolveStatus_NoDependencies(t *testing.T) {
	t.Parallel()

	all := []Task{mkTask("a", "todo"), mkTask("b", "ongoing")}

	res := ResolveStatus(all[0], all)
	assert.Equal(t, StatusTodo, res.Effective)
	assert.Empty(t, res.BlockedReason)

	res = ResolveStatus(all[1], all)
	assert.Equal(t, StatusOngoing, res.Effective)
}

func TestResolveStatus_DependencyGating(t *testing.T) {
	t.Parallel()

	a := mkTask("a", "todo", "b")
	b := mkTask("b", "ongoing")

	res := ResolveStatus(a, []Task{a, b})
	assert.Equal(t, StatusRestricted, res.Effective)
	assert.Equal(t, "waiting on Task b", res.BlockedReason)

	// Once the dependency is done, the raw status shines through again.
	b.Status = "done"
	res = ResolveStatus(a, []Task{a, b})
	assert.Equal(t, StatusTodo, res.Effective)
	assert.Empty(t, res.BlockedReason)
}

func TestResolveStatus_RawStatusIrrelevantWhileBlocked(t *testing.T) {
	t.Parallel()

	// An ongoing task with an unmet dependency is still restricted.
	a := mkTask("a", "ongoing", "b")
	b := mkTask("b", "todo")

	res := ResolveStatus(a, []Task{a, b})
	assert.Equal(t, StatusRestricted, res.Effective)
}

func TestResolveStatus_DoneIsTerminal(t *testing.T) {
	t.Parallel()

	// Done wins even with unmet dependencies.
	a := mkTask("a", "done", "b", "c")
	b := mkTask("b", "todo")
	c := mkTask("c", "ongoing")

	res := ResolveStatus(a, []Task{a, b, c})
	assert.Equal(t, StatusDone, res.Effective)
	assert.Empty(t, res.BlockedReason)
}

func TestResolveStatus_DanglingDependencyIgnored(t *testing.T) {
	t.Parallel()

	// A dependency ID that resolves to nothing does not block.
	a := mkTask("a", "todo", "ghost")
	res := ResolveStatus(a, []Task{a})
	assert.Equal(t, StatusTodo, res.Effective)
	assert.Empty(t, res.BlockedReason)
}

func TestResolveStatus_SelfDependencyIgnored(t *testing.T) {
	t.Parallel()

	a := mkTask("a", "todo", "a")
	res := ResolveStatus(a, []Task{a})
	assert.Equal(t, StatusTodo, res.Effective)
}

func TestResolveStatus_OneLevelOnly(t *testing.T) {
	t.Parallel()

	// A depends on B (done), B depends on C (incomplete). The check is one
	// level deep: B's raw status is done, so A is unblocked even though B's
	// own effective chain is unfinished further down.
	a := mkTask("a", "todo", "b")
	b := mkTask("b", "done", "c")
	c := mkTask("c", "todo")

	res := ResolveStatus(a, []Task{a, b, c})
	assert.Equal(t, StatusTodo, res.Effective)
}

func TestResolveStatus_CycleStaysRestricted(t *testing.T) {
	t.Parallel()

	// A cyclic graph must not loop the resolver; every member just stays
	// restricted.
	a := mkTask("a", "todo", "b")
	b := mkTask("b", "todo", "a")
	all := []Task{a, b}

	require.Equal(t, StatusRestricted, ResolveStatus(a, all).Effective)
	require.Equal(t, StatusRestricted, ResolveStatus(b, all).Effective)
}

func TestResolveStatus_BlockedReasonTruncation(t *testing.T) {
	t.Parallel()

	var all []Task
	deps := make([]string, 6)
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("d%d", i)
		deps[i] = id
		all = append(all, mkTask(id, "todo"))
	}
	a := mkTask("a", "todo", deps...)
	all = append(all, a)

	res := ResolveStatus(a, all)
	assert.Equal(t, StatusRestricted, res.Effective)
	assert.Equal(t, "waiting on Task d0, Task d1, Task d2, Task d3, …", res.BlockedReason)
}

func TestResolveStatus_ReasonFallsBackToID(t *testing.T) {
	t.Parallel()

	dep := Task{ID: "b", Status: "todo"} // no title
	a := mkTask("a", "todo", "b")

	res := ResolveStatus(a, []Task{a, dep})
	assert.Equal(t, "waiting on b", res.BlockedReason)
}

func TestResolveStatus_RawBlockedInput(t *testing.T) {
	t.Parallel()

	// Author-set "blocked" normalizes to restricted and carries through
	// when no dependency actually gates it, with no reason attached.
	a := mkTask("a", "blocked")
	res := ResolveStatus(a, []Task{a})
	assert.Equal(t, StatusRestricted, res.Effective)
	assert.Empty(t, res.BlockedReason)
}
