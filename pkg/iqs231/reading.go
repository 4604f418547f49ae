package iqs231

// Reading is a register value together with the MainEvents byte that the
// chip sent in the same transaction.
type Reading[T any] struct {
	Events MainEvents
	Value  T
}

// Split returns the events and the value.
func (r Reading[T]) Split() (MainEvents, T) {
	return r.Events, r.Value
}

// MapReading converts the value of r with f and keeps its events.
func MapReading[T, U any](r Reading[T], f func(T) U) Reading[U] {
	return Reading[U]{Events: r.Events, Value: f(r.Value)}
}

// readingFromBytes decodes the two bytes returned by a register read:
// the events byte first, then the register value.
func readingFromBytes(b [2]byte) Reading[uint8] {
	return Reading[uint8]{Events: MainEvents(b[0]), Value: b[1]}
}

// join16 merges the high and low byte reads of a 16-bit value. Either
// transaction may have seen a new event, so the events are OR-ed.
func join16(hi, lo Reading[uint8]) Reading[uint16] {
	return Reading[uint16]{
		Events: hi.Events | lo.Events,
		Value:  uint16(hi.Value)<<8 | uint16(lo.Value),
	}
}
