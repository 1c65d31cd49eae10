package httpapi

import (
	"net/http"

	complianceCommands "github.com/andrescamacho/fueleu-go/internal/application/compliance/commands"
	complianceQueries "github.com/andrescamacho/fueleu-go/internal/application/compliance/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func (s *Server) handleComputeCB(w http.ResponseWriter, r *http.Request) {
	var body computeCBRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[complianceCommands.ComputeCBResponse](r, s.mediator, &complianceCommands.ComputeCBCommand{
		ShipID:          body.ShipID,
		ActualIntensity: body.ActualIntensity,
		FuelTons:        body.FuelTons,
		Year:            body.Year,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComplianceResultJSON(resp.Result))
}

func (s *Server) handleGetAdjustedCB(w http.ResponseWriter, r *http.Request) {
	shipID, year, err := requiredShipYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[complianceQueries.GetAdjustedCBResponse](r, s.mediator,
		&complianceQueries.GetAdjustedCBQuery{ShipID: shipID, Year: year})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAdjustedCBJSON(resp.AdjustedCB))
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if year == nil {
		writeError(w, r, shared.NewValidationError("year", "required"))
		return
	}

	resp, err := send[complianceQueries.ListSnapshotsResponse](r, s.mediator, &complianceQueries.ListSnapshotsQuery{Year: *year})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]snapshotJSON, len(resp.Snapshots))
	for i, snap := range resp.Snapshots {
		out[i] = snapshotJSON{
			ShipID:     snap.ShipYear().ShipID(),
			Year:       snap.ShipYear().Year(),
			CB:         snap.CB(),
			ComputedAt: snap.ComputedAt(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
