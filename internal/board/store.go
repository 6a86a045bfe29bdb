package board

import "sync"

// SimStore holds one Simulation per workspace, created lazily. Each
// workspace's simulation is independent; disposing a workspace pauses and
// drops its simulation. The store replaces any ambient singleton so that
// lifecycle is explicit and testable.
type SimStore struct {
	mu   sync.Mutex
	sims map[string]*Simulation
}

// NewSimStore creates an empty store.
func NewSimStore() *SimStore {
	return &SimStore{sims: make(map[string]*Simulation)}
}

// Get returns the simulation for workspaceID, creating it from source on
// first use. The source is only consulted at creation; subsequent calls
// return the existing simulation regardless of source.
func (st *SimStore) Get(workspaceID string, source SourceFunc) *Simulation {
	st.mu.Lock()
	defer st.mu.Unlock()

	if sim, ok := st.sims[workspaceID]; ok {
		return sim
	}
	sim := NewSimulation(source)
	st.sims[workspaceID] = sim
	return sim
}

// Reset resets the workspace's simulation if one exists.
func (st *SimStore) Reset(workspaceID string) {
	st.mu.Lock()
	sim, ok := st.sims[workspaceID]
	st.mu.Unlock()
	if ok {
		sim.Reset()
	}
}

// Dispose pauses and removes the workspace's simulation. Safe to call for
// unknown workspaces.
func (st *SimStore) Dispose(workspaceID string) {
	st.mu.Lock()
	sim, ok := st.sims[workspaceID]
	delete(st.sims, workspaceID)
	st.mu.Unlock()
	if ok {
		sim.Pause()
	}
}

// Len returns the number of live simulations.
func (st *SimStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sims)
}
