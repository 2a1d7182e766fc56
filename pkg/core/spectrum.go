package core

// Peak represents a single m/z, intensity pair from an MS1 scan.
type Peak struct {
	MZ        float64
	Intensity float64
}
