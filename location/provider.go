package location

// Provider obtains a single instantaneous position fix. No continuous
// tracking, no accuracy retry loop.
type Provider interface {
	GetLocation() (Location, error)
}
