package sequential

// Signal is the per-basis state of the sequential decoder.
type Signal int

// Decoder states. NONE is settled; INCREMENT and FLAG wait one more step
// for the information that resolves them.
const (
	SignalNone Signal = iota
	SignalIncrement
	SignalFlag
)

// String implements fmt.Stringer.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "NONE"
	case SignalIncrement:
		return "INCREMENT"
	case SignalFlag:
		return "FLAG"
	}
	return "UNKNOWN"
}
