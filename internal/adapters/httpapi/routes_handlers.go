package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	routeCommands "github.com/andrescamacho/fueleu-go/internal/application/routes/commands"
	routeQueries "github.com/andrescamacho/fueleu-go/internal/application/routes/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/route"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// routeFilter reads the optional route filter parameters
func routeFilter(r *http.Request) (route.Filter, error) {
	var f route.Filter
	var err error

	f.ShipID = queryString(r, "shipId")
	f.VesselType = queryString(r, "vesselType")
	f.FuelType = queryString(r, "fuelType")
	if f.Year, err = queryInt(r, "year"); err != nil {
		return f, err
	}
	if f.MinEmissions, err = queryFloat(r, "minEmissions"); err != nil {
		return f, err
	}
	if f.MinIntensity, err = queryFloat(r, "minIntensity"); err != nil {
		return f, err
	}
	if f.MinFuel, err = queryFloat(r, "minFuel"); err != nil {
		return f, err
	}
	return f, nil
}

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	filter, err := routeFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[routeQueries.ListRoutesResponse](r, s.mediator, &routeQueries.ListRoutesQuery{Filter: filter})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]routeJSON, len(resp.Routes))
	for i, rt := range resp.Routes {
		out[i] = toRouteJSON(rt)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCompareRoutes(w http.ResponseWriter, r *http.Request) {
	shipID, year, err := requiredShipYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter, err := routeFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter.ShipID, filter.Year = nil, nil

	resp, err := send[routeQueries.CompareRoutesResponse](r, s.mediator, &routeQueries.CompareRoutesQuery{
		ShipID: shipID,
		Year:   year,
		Filter: filter,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompareJSON(resp.ShipID, resp.Year, resp.Routes, resp.Chart))
}

func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[routeQueries.GetComparisonResponse](r, s.mediator, &routeQueries.GetComparisonQuery{Year: year})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]yearComparisonJSON, len(resp.Comparisons))
	for i, c := range resp.Comparisons {
		out[i] = yearComparisonJSON{
			Year:          c.Year,
			RouteID:       c.RouteID,
			VesselType:    c.VesselType,
			FuelType:      c.FuelType,
			BaselineGHG:   c.BaselineGHG,
			ComparisonGHG: c.ComparisonGHG,
			PercentDiff:   c.PercentDiff,
			Compliant:     c.Compliant,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetBaseline(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RouteID string `json:"routeId"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.RouteID == "" {
		writeError(w, r, shared.NewValidationError("routeId", "required"))
		return
	}

	resp, err := send[routeCommands.SetBaselineResponse](r, s.mediator, &routeCommands.SetBaselineCommand{RouteID: body.RouteID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"routeId": resp.RouteID, "baseline": resp.Baseline})
}

func (s *Server) handleComputeRouteMetrics(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["id"]

	resp, err := send[routeCommands.ComputeRouteMetricsResponse](r, s.mediator,
		&routeCommands.ComputeRouteMetricsCommand{RouteID: routeID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"routeId":   resp.RouteID,
		"energy":    resp.Metrics.EnergyMJ,
		"emissions": resp.Metrics.EmissionsGCO2eq,
		"intensity": resp.Metrics.IntensityGPerMJ,
	})
}
