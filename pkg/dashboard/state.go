package dashboard

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Phase is where a collection sits in its mutation lifecycle.
type Phase int

// The mutation lifecycle: idle -> submitting -> reconciling -> idle,
// with errors surfaced and the phase returned to idle.
const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseReconciling
)

// ErrBusy is returned when a mutation is requested while the previous
// one for the same collection is still in flight. The UI disables the
// trigger control instead of queueing.
var ErrBusy = errors.New("a change for this view is still in flight")

// resourceState tracks one collection's lifecycle phase, its latest
// request sequence number, and the last surfaced error.
type resourceState struct {
	phase Phase
	seq   uint64
	err   error
}

func (d *Dashboard) state(resource string) *resourceState {
	st, ok := d.states[resource]
	if !ok {
		st = &resourceState{}
		d.states[resource] = st
	}

	return st
}

// begin tags a new fetch for the resource with the next sequence
// number. Responses carrying an older number are discarded on arrival,
// so a slow stale response can never overwrite newer state.
func (d *Dashboard) begin(resource string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.state(resource)
	st.seq++

	if st.phase == PhaseIdle {
		st.phase = PhaseReconciling
	}

	return st.seq
}

// apply installs a fetched collection if it is still the newest
// response for the resource. It reports whether the update was
// applied.
func (d *Dashboard) apply(resource string, seq uint64, install func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.state(resource)
	if seq != st.seq {
		log.Debug().Str("resource", resource).
			Uint64("seq", seq).Uint64("latest", st.seq).
			Msg("discarding stale response")

		return false
	}

	install()

	st.phase = PhaseIdle
	st.err = nil

	return true
}

// fail records a fetch failure and returns the resource to idle so
// the user can re-trigger the action; no automatic retry happens.
func (d *Dashboard) fail(resource string, seq uint64, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.state(resource)
	if seq != st.seq {
		return
	}

	st.phase = PhaseIdle
	st.err = err
}

// Busy reports whether a mutation for the resource is in flight;
// forms disable their submit control while it is.
func (d *Dashboard) Busy(resource string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state(resource).phase != PhaseIdle
}

// Errors returns the surfaced error messages, one per resource, for
// the UI banner.
func (d *Dashboard) Errors() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	msgs := []string{}

	for _, resource := range resourceOrder {
		if st, ok := d.states[resource]; ok && st.err != nil {
			msgs = append(msgs, st.err.Error())
		}
	}

	return msgs
}

// DismissErrors clears every surfaced error; the banner is
// dismissible, not sticky.
func (d *Dashboard) DismissErrors() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, st := range d.states {
		st.err = nil
	}
}
