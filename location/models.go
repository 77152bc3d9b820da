package location

// Location represents a single position fix.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}
