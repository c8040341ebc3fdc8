package emulator

// Watch reports changes to an observed value. The first observation
// after creation or Reset always counts as a change.
type Watch[T comparable] struct {
	last  T
	valid bool
}

// Changed records the value, and returns it with true if it differs
// from the previous observation.
func (w *Watch[T]) Changed(value T) (T, bool) {
	if w.valid && w.last == value {
		return value, false
	}
	w.last = value
	w.valid = true
	return value, true
}

// Reset forgets the last observation.
func (w *Watch[T]) Reset() {
	w.valid = false
}
