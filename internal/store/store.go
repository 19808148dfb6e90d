package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"omniroute-console/internal/domain"
	"omniroute-console/internal/ports"
)

const confirmTimeout = 15 * time.Second

// Store is the single source of truth for the session.
//
// One goroutine owns the state: every mutation and read is a closure
// submitted to the ops channel and runs to completion before the next
// one starts, so mutations never interleave. Remote confirmations run
// as detached tasks and post their patch back onto the same queue.
//
// Every mutation re-persists the whole snapshot before returning
// control to the caller.
type Store struct {
	slot    ports.KeyValueSlot
	backend ports.FleetBackend // nil means purely local session

	state domain.Snapshot

	ops     chan func()
	stopped chan struct{}
	pending sync.WaitGroup

	closeOnce sync.Once
}

// Open loads the persisted snapshot, merges it over defaults and starts
// the mutation queue. backend may be nil for offline-only sessions.
func Open(slot ports.KeyValueSlot, backend ports.FleetBackend) *Store {
	s := &Store{
		slot:    slot,
		backend: backend,
		state:   loadSnapshot(slot),
		ops:     make(chan func()),
		stopped: make(chan struct{}),
	}

	go s.loop()
	return s
}

func (s *Store) loop() {
	for fn := range s.ops {
		fn()
	}
	close(s.stopped)
}

// do runs fn on the mutation queue and waits for it to finish.
func (s *Store) do(fn func()) {
	done := make(chan struct{})
	s.ops <- func() {
		fn()
		close(done)
	}
	<-done
}

// Wait blocks until all in-flight remote confirmations have settled.
func (s *Store) Wait() {
	s.pending.Wait()
}

// Close drains pending confirmations and stops the mutation queue.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.pending.Wait()
		close(s.ops)
		<-s.stopped
	})
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.Snapshot {
	var snap domain.Snapshot
	s.do(func() {
		snap = s.state.Clone()
	})
	return snap
}

// Clear erases the persisted snapshot and resets the session to defaults.
func (s *Store) Clear() {
	s.do(func() {
		s.state = domain.DefaultSnapshot()
		if err := s.slot.Delete(StateKey); err != nil {
			log.Printf("store: clear persisted snapshot: %v", err)
		}
	})
}

func (s *Store) persist() {
	saveSnapshot(s.slot, s.state)
}

// Optimizer sub-domain.

// AddStop appends a delivery stop by name and address.
func (s *Store) AddStop(name, address string) {
	s.do(func() {
		s.state.Optimizer.Stops = append(s.state.Optimizer.Stops, domain.Stop{
			Name:    name,
			Address: address,
			Kind:    domain.StopDelivery,
		})
		s.persist()
	})
}

// AddStopAt appends a delivery stop picked from the map.
func (s *Store) AddStopAt(name string, lat, lng float64) {
	s.do(func() {
		s.state.Optimizer.Stops = append(s.state.Optimizer.Stops, domain.Stop{
			Name: name,
			Lat:  &lat,
			Lng:  &lng,
			Kind: domain.StopDelivery,
		})
		s.persist()
	})
}

// AddDepot places the depot entry at index 0, replacing any previous one.
func (s *Store) AddDepot(name, address string, coords *domain.LatLng) {
	s.do(func() {
		depot := domain.Stop{Name: name, Address: address, Kind: domain.StopDepot}
		if coords != nil {
			lat, lng := coords.Lat, coords.Lng
			depot.Lat, depot.Lng = &lat, &lng
		}

		stops := s.state.Optimizer.Stops
		if len(stops) > 0 && stops[0].Kind == domain.StopDepot {
			stops[0] = depot
		} else {
			stops = append([]domain.Stop{depot}, stops...)
		}
		s.state.Optimizer.Stops = stops
		s.persist()
	})
}

// RemoveStop deletes the stop at index. Out-of-range indexes are ignored.
func (s *Store) RemoveStop(index int) {
	s.do(func() {
		stops := s.state.Optimizer.Stops
		if index < 0 || index >= len(stops) {
			return
		}
		s.state.Optimizer.Stops = append(stops[:index], stops[index+1:]...)
		s.persist()
	})
}

// UpdateConstraints applies a field-wise patch; nil fields keep their value.
func (s *Store) UpdateConstraints(patch domain.ConstraintsPatch) {
	s.do(func() {
		c := &s.state.Optimizer.Constraints
		if patch.MaxDistanceKm != nil {
			c.MaxDistanceKm = *patch.MaxDistanceKm
		}
		if patch.MaxDurationMin != nil {
			c.MaxDurationMin = *patch.MaxDurationMin
		}
		if patch.VehicleCapacityKg != nil {
			c.VehicleCapacityKg = *patch.VehicleCapacityKg
		}
		if patch.UseAlternateSolver != nil {
			c.UseAlternateSolver = *patch.UseAlternateSolver
		}
		s.persist()
	})
}

// SetResult overwrites the optimization result wholesale.
// A result already present is replaced, never merged. Stale results are
// not invalidated when stops change afterwards; re-optimization is a
// deliberate user action.
func (s *Store) SetResult(r domain.OptimizationResult) {
	s.do(func() {
		s.state.Optimizer.Result = &r
		s.persist()
	})
}

// Fleet sub-domain.

// AddVehicle applies the optimistic mutation protocol: the vehicle is
// appended, counters updated and the snapshot persisted before this
// method returns. The remote creation is fired as a detached task; on
// success the entity is matched back by plate and patched with the
// server-assigned identifier. On failure nothing is rolled back; the
// vehicle simply keeps an empty RemoteID.
func (s *Store) AddVehicle(v domain.Vehicle) string {
	if v.LocalID == "" {
		v.LocalID = uuid.NewString()
	}
	if v.Status == "" {
		v.Status = domain.VehicleIdle
	}
	v.RemoteID = ""
	v.FuelPercent = domain.ClampFuel(v.FuelPercent)

	s.do(func() {
		s.state.Fleet.Vehicles = append(s.state.Fleet.Vehicles, v)
		s.refreshFleetCounters()
		s.persist()
	})

	if s.backend != nil {
		s.pending.Add(1)
		go s.confirmVehicle(v)
	}

	return v.LocalID
}

func (s *Store) confirmVehicle(v domain.Vehicle) {
	defer s.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
	defer cancel()

	remote, err := s.backend.CreateVehicle(ctx, v)
	if err != nil {
		log.Printf("store: vehicle %q not confirmed remotely: %v", v.Plate, err)
		return
	}

	s.ReconcileVehicle(v.Plate, remote.ID)
}

// ReconcileVehicle assigns the server identifier to the one local
// vehicle matched by plate that does not have one yet. Applying the
// same confirmation twice is a no-op.
func (s *Store) ReconcileVehicle(plate, remoteID string) {
	if remoteID == "" {
		return
	}

	s.do(func() {
		for i := range s.state.Fleet.Vehicles {
			v := &s.state.Fleet.Vehicles[i]
			if v.Plate == plate && v.RemoteID == "" {
				v.RemoteID = remoteID
				s.persist()
				return
			}
		}
	})
}

// UpdateVehicleStatus changes a vehicle's status, matched by local id.
func (s *Store) UpdateVehicleStatus(localID string, status domain.VehicleStatus) {
	s.do(func() {
		for i := range s.state.Fleet.Vehicles {
			if s.state.Fleet.Vehicles[i].LocalID == localID {
				s.state.Fleet.Vehicles[i].Status = status
				break
			}
		}
		s.refreshFleetCounters()
		s.persist()
	})
}

// SetVehicleFuel records a fuel reading, clamped to 0..100.
func (s *Store) SetVehicleFuel(localID string, pct float64) {
	s.do(func() {
		for i := range s.state.Fleet.Vehicles {
			if s.state.Fleet.Vehicles[i].LocalID == localID {
				s.state.Fleet.Vehicles[i].FuelPercent = domain.ClampFuel(pct)
				break
			}
		}
		s.persist()
	})
}

// refreshFleetCounters recomputes the dashboard aggregates from the
// fleet collection. Runs on the mutation queue.
func (s *Store) refreshFleetCounters() {
	online := 0
	active := 0
	for _, v := range s.state.Fleet.Vehicles {
		if v.Status != domain.VehicleOffline {
			online++
		}
		if v.Status == domain.VehicleActive {
			active++
		}
	}
	s.state.Dashboard.FleetOnline.Value = float64(online)
	s.state.Dashboard.FleetTotal = float64(len(s.state.Fleet.Vehicles))
	s.state.Dashboard.ActiveRoutes.Value = float64(active)
}

// Drivers sub-domain.

// AddDriver follows the same optimistic protocol as AddVehicle, with
// the phone number as the natural key for reconciliation.
func (s *Store) AddDriver(d domain.Driver) string {
	if d.LocalID == "" {
		d.LocalID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = domain.DriverOffDuty
	}
	d.RemoteID = ""
	d.Rating = domain.ClampRating(d.Rating)

	s.do(func() {
		s.state.Drivers.List = append(s.state.Drivers.List, d)
		s.persist()
	})

	if s.backend != nil {
		s.pending.Add(1)
		go s.confirmDriver(d)
	}

	return d.LocalID
}

func (s *Store) confirmDriver(d domain.Driver) {
	defer s.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
	defer cancel()

	remote, err := s.backend.CreateDriver(ctx, d)
	if err != nil {
		log.Printf("store: driver %q not confirmed remotely: %v", d.Name, err)
		return
	}

	s.ReconcileDriver(d.Phone, remote.ID)
}

// ReconcileDriver assigns the server identifier to the one local driver
// matched by phone that does not have one yet.
func (s *Store) ReconcileDriver(phone, remoteID string) {
	if remoteID == "" {
		return
	}

	s.do(func() {
		for i := range s.state.Drivers.List {
			d := &s.state.Drivers.List[i]
			if d.Phone == phone && d.RemoteID == "" {
				d.RemoteID = remoteID
				s.persist()
				return
			}
		}
	})
}

// AssignDriver links a driver to a vehicle by local ids.
func (s *Store) AssignDriver(driverID, vehicleID string) {
	s.do(func() {
		var vehicle *domain.Vehicle
		for i := range s.state.Fleet.Vehicles {
			if s.state.Fleet.Vehicles[i].LocalID == vehicleID {
				vehicle = &s.state.Fleet.Vehicles[i]
				break
			}
		}
		if vehicle == nil {
			return
		}

		for i := range s.state.Drivers.List {
			if s.state.Drivers.List[i].LocalID == driverID {
				s.state.Drivers.List[i].AssignedVehicleID = vehicleID
				vehicle.DriverName = s.state.Drivers.List[i].Name
				break
			}
		}
		s.persist()
	})
}

// Dashboard sub-domain.

// RecordActivity prepends a line to the recent-activity feed, keeping
// at most 20 entries.
func (s *Store) RecordActivity(line string) {
	s.do(func() {
		feed := append([]string{line}, s.state.Dashboard.RecentActivity...)
		if len(feed) > 20 {
			feed = feed[:20]
		}
		s.state.Dashboard.RecentActivity = feed
		s.persist()
	})
}

// TrackPosition upserts a live map position for a vehicle.
func (s *Store) TrackPosition(p domain.VehiclePosition) {
	s.do(func() {
		for i := range s.state.Dashboard.Positions {
			if s.state.Dashboard.Positions[i].VehicleID == p.VehicleID {
				s.state.Dashboard.Positions[i] = p
				s.persist()
				return
			}
		}
		s.state.Dashboard.Positions = append(s.state.Dashboard.Positions, p)
		s.persist()
	})
}
