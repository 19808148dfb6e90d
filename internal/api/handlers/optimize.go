package handlers

import (
	"log"
	"net/http"

	"omniroute-console/internal/api/dto"
	"omniroute-console/internal/domain"
	"omniroute-console/internal/services"
)

type OptimizeHandler struct{}

// Optimize runs the route solver over the submitted stop sequence and
// returns the optimized order with aggregate metrics.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, domain.Stop{
			Name:    s.Name,
			Address: s.Address,
			Lat:     s.Lat,
			Lng:     s.Lng,
			Kind:    domain.StopKind(s.Kind),
		})
	}

	out, err := services.Optimize(r.Context(), services.OptimizeRequest{
		Stops: stops,
		Constraints: domain.Constraints{
			MaxDistanceKm:      req.Constraints.MaxDistanceKm,
			MaxDurationMin:     req.Constraints.MaxDurationMin,
			VehicleCapacityKg:  req.Constraints.VehicleCapacityKg,
			UseAlternateSolver: req.Constraints.UseAlternateSolver,
		},
	})
	if err != nil {
		log.Printf("optimize failed: %v", err)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ordered := make([]dto.StopPayload, 0, len(out.OrderedStops))
	for _, s := range out.OrderedStops {
		ordered = append(ordered, dto.StopPayload{
			Name:    s.Name,
			Address: s.Address,
			Lat:     s.Lat,
			Lng:     s.Lng,
			Kind:    string(s.Kind),
		})
	}

	res := dto.OptimizeResponse{
		TotalDistanceKm:          out.TotalDistanceKm,
		EstimatedDurationMinutes: out.EstimatedMinutes,
		FuelCost:                 out.FuelCost,
		SolutionQualityScore:     out.QualityScore,
		SolverUsed:               out.SolverUsed,
		ExecutionTimeMs:          out.ExecutionTimeMs,
		OrderedStops:             ordered,
	}
	if out.Savings != nil {
		res.Savings = &dto.SavingsPayload{
			DistancePct: out.Savings.DistancePct,
			TimePct:     out.Savings.TimePct,
			FuelPct:     out.Savings.FuelPct,
		}
	}

	writeData(w, r, http.StatusOK, res)
}
