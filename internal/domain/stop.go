package domain

// StopKind distinguishes the depot entry from delivery stops.
type StopKind string

const (
	StopDepot    StopKind = "depot"
	StopDelivery StopKind = "delivery"
)

// Represents one entry in the optimization stop sequence.
// Ordering in the containing slice is significant: by convention
// index 0 holds the depot when one is present.
type Stop struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Kind    StopKind `json:"kind"`
}

// HasCoords reports whether the stop carries GPS coordinates.
func (s Stop) HasCoords() bool {
	return s.Lat != nil && s.Lng != nil
}
