package domain

// DashboardStat is a single headline metric with its period-over-period change.
type DashboardStat struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// VehiclePosition is a map marker for live tracking.
type VehiclePosition struct {
	VehicleID string        `json:"vehicleId"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Status    VehicleStatus `json:"status"`
}

// DashboardState feeds the stats cards and the live map.
type DashboardState struct {
	Deliveries     DashboardStat     `json:"deliveries"`
	ActiveRoutes   DashboardStat     `json:"activeRoutes"`
	FleetOnline    DashboardStat     `json:"fleetOnline"`
	FleetTotal     float64           `json:"fleetTotal"`
	AvgDeliveryMin DashboardStat     `json:"avgDeliveryMin"`
	RecentActivity []string          `json:"recentActivity"`
	Positions      []VehiclePosition `json:"positions"`
}

// FleetState holds every vehicle known to the session.
type FleetState struct {
	Vehicles []Vehicle `json:"vehicles"`
}

// DriversState holds every driver known to the session.
type DriversState struct {
	List []Driver `json:"list"`
}

// AnalyticsKPI is a KPI card value with a trend annotation.
type AnalyticsKPI struct {
	Value     float64 `json:"value"`
	Change    string  `json:"change"`
	Direction string  `json:"direction"`
}

// AnalyticsState carries the weekly series rendered as charts.
type AnalyticsState struct {
	TotalDeliveries  AnalyticsKPI `json:"totalDeliveries"`
	OnTimeRate       AnalyticsKPI `json:"onTimeRate"`
	FuelCost         AnalyticsKPI `json:"fuelCost"`
	DistanceKm       AnalyticsKPI `json:"distanceKm"`
	WeeklyLabels     []string     `json:"weeklyLabels"`
	WeeklyDeliveries []float64    `json:"weeklyDeliveries"`
	WeeklyOnTimeRate []float64    `json:"weeklyOnTimeRate"`
	WeeklyFuelCost   []float64    `json:"weeklyFuelCost"`
	WeeklyDistanceKm []float64    `json:"weeklyDistanceKm"`
}

// OptimizerState is the workflow sub-domain: the stop sequence under
// construction, the active constraints and the last computed result.
type OptimizerState struct {
	Stops       []Stop              `json:"stops"`
	Constraints Constraints         `json:"constraints"`
	Result      *OptimizationResult `json:"result,omitempty"`
}

// Snapshot is the aggregate of all store sub-domains. It is the unit of
// persistence: the whole snapshot is serialized on every mutation and
// deep-merged over defaults on load.
type Snapshot struct {
	Dashboard DashboardState `json:"dashboard"`
	Fleet     FleetState     `json:"fleet"`
	Drivers   DriversState   `json:"drivers"`
	Analytics AnalyticsState `json:"analytics"`
	Optimizer OptimizerState `json:"optimizer"`
}

// DefaultSnapshot returns the state a brand-new session starts from.
// Collections are non-nil so persisted snapshots always carry them.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Dashboard: DashboardState{
			RecentActivity: []string{},
			Positions:      []VehiclePosition{},
		},
		Fleet:   FleetState{Vehicles: []Vehicle{}},
		Drivers: DriversState{List: []Driver{}},
		Analytics: AnalyticsState{
			WeeklyLabels:     []string{},
			WeeklyDeliveries: []float64{},
			WeeklyOnTimeRate: []float64{},
			WeeklyFuelCost:   []float64{},
			WeeklyDistanceKm: []float64{},
		},
		Optimizer: OptimizerState{
			Stops:       []Stop{},
			Constraints: DefaultConstraints(),
		},
	}
}

// Clone returns a deep copy so readers can hold a snapshot without
// observing later mutations.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Dashboard.RecentActivity = append([]string(nil), s.Dashboard.RecentActivity...)
	out.Dashboard.Positions = append([]VehiclePosition(nil), s.Dashboard.Positions...)
	out.Fleet.Vehicles = append([]Vehicle(nil), s.Fleet.Vehicles...)
	out.Drivers.List = append([]Driver(nil), s.Drivers.List...)
	out.Analytics.WeeklyLabels = append([]string(nil), s.Analytics.WeeklyLabels...)
	out.Analytics.WeeklyDeliveries = append([]float64(nil), s.Analytics.WeeklyDeliveries...)
	out.Analytics.WeeklyOnTimeRate = append([]float64(nil), s.Analytics.WeeklyOnTimeRate...)
	out.Analytics.WeeklyFuelCost = append([]float64(nil), s.Analytics.WeeklyFuelCost...)
	out.Analytics.WeeklyDistanceKm = append([]float64(nil), s.Analytics.WeeklyDistanceKm...)
	out.Optimizer.Stops = cloneStops(s.Optimizer.Stops)
	if s.Optimizer.Result != nil {
		r := *s.Optimizer.Result
		r.OrderedStops = cloneStops(s.Optimizer.Result.OrderedStops)
		if s.Optimizer.Result.Savings != nil {
			sv := *s.Optimizer.Result.Savings
			r.Savings = &sv
		}
		out.Optimizer.Result = &r
	}
	return out
}

func cloneStops(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	for i := range out {
		if out[i].Lat != nil {
			lat := *out[i].Lat
			out[i].Lat = &lat
		}
		if out[i].Lng != nil {
			lng := *out[i].Lng
			out[i].Lng = &lng
		}
	}
	return out
}
