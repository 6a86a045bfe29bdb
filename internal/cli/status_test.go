package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driftlock/kestrel/internal/workspace"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	ws := &workspace.Workspace{
		ID:   "home",
		Name: "Home",
		Records: []workspace.TaskRecord{
			{ID: "t1", Title: "A", Status: "done"},
			{ID: "t2", Title: "B", Status: "ongoing"},
			{ID: "t3", Title: "C"},
			{ID: "t4", Title: "D", DependsOn: []string{"t3"}},
		},
	}

	st := summarize(ws, time.Now())

	assert.Equal(t, "Home", st.Workspace)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.Done)
	assert.Equal(t, 1, st.Ongoing)
	assert.Equal(t, 1, st.Todo)
	assert.Equal(t, 1, st.Restricted, "task gated on an undone dependency counts as restricted")
	assert.InDelta(t, 0.25, st.Percent, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	st := summarize(&workspace.Workspace{ID: "empty", Name: "Empty"}, time.Now())
	assert.Zero(t, st.Total)
	assert.Zero(t, st.Percent)
}
