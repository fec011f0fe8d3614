package sequence

// Recurrence constants. The modulus 2^32 is implicit in uint32 overflow.
const (
	Multiplier uint32 = 1664525
	Increment  uint32 = 1013904223
)

// Advance returns the state that follows current.
func Advance(current uint32) uint32 {
	return Multiplier*current + Increment
}

// Sequence returns the n states that follow start, in order.
func Sequence(start uint32, n int) []uint32 {
	if n <= 0 {
		return nil
	}
	out := make([]uint32, n)
	state := start
	for i := range out {
		state = Advance(state)
		out[i] = state
	}
	return out
}
