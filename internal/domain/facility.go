package domain

// Facility holds per-facility resource capacity. Read-only input to the
// allocator; mutated only by explicit facility configuration.
type Facility struct {
	ID             int64
	Name           string
	Chairs         int
	PedicureChairs int
}

// Service is a catalog entry with the default duration used when a request
// carries no explicit override
type Service struct {
	ID                     int64
	FacilityID             int64
	Name                   string
	DefaultDurationMinutes int
	Price                  float64
	IsActive               bool
}
