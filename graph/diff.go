package graph

// trackState holds the baseline for one tracked instance.
type trackState struct {
	order    []string          // tracked property names, tracking order
	external map[string]string // property name -> serialized name
	dirty    map[string]struct{}
}

// Tracker is the per-instance dirty-state side table for scalar
// properties. Tracking is installed by the mapper after an instance's
// properties are populated; the first assignment after tracking starts
// marks the property dirty relative to the baseline, and Purge
// re-baselines so only post-load mutations are reported.
//
// The table is keyed by instance identity and released explicitly with
// Dispose.
type Tracker struct {
	states map[*Instance]*trackState
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[*Instance]*trackState)}
}

// TrackProperty installs change observation on one scalar property of
// inst. external is the serialized predicate name reported alongside
// the property in mutation building.
func (t *Tracker) TrackProperty(inst *Instance, name, external string) {
	st, ok := t.states[inst]
	if !ok {
		st = &trackState{
			external: make(map[string]string),
			dirty:    make(map[string]struct{}),
		}
		t.states[inst] = st
		inst.tracker = t
	}
	if _, ok := st.external[name]; !ok {
		st.order = append(st.order, name)
	}
	st.external[name] = external
}

// observe records a write to a tracked property. Writes to untracked
// properties or untracked instances are ignored.
func (t *Tracker) observe(inst *Instance, name string) {
	st, ok := t.states[inst]
	if !ok {
		return
	}
	if _, ok := st.external[name]; ok {
		st.dirty[name] = struct{}{}
	}
}

// Purge clears all dirty marks for inst, establishing a new baseline
// equal to the current values.
func (t *Tracker) Purge(inst *Instance) {
	if st, ok := t.states[inst]; ok {
		st.dirty = make(map[string]struct{})
	}
}

// Diff returns the dirty property names of inst in tracking order.
func (t *Tracker) Diff(inst *Instance) []string {
	st, ok := t.states[inst]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(st.dirty))
	for _, name := range st.order {
		if _, ok := st.dirty[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// External returns the serialized name registered for a tracked
// property of inst.
func (t *Tracker) External(inst *Instance, name string) (string, bool) {
	if st, ok := t.states[inst]; ok {
		ext, ok := st.external[name]
		return ext, ok
	}
	return "", false
}

// Dispose drops all tracking state for inst.
func (t *Tracker) Dispose(inst *Instance) {
	delete(t.states, inst)
}
