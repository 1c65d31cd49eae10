package httpapi

import (
	"net/http"

	bankingCommands "github.com/andrescamacho/fueleu-go/internal/application/banking/commands"
	bankingQueries "github.com/andrescamacho/fueleu-go/internal/application/banking/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func (s *Server) handleGetBankRecords(w http.ResponseWriter, r *http.Request) {
	shipID, year, err := requiredShipYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[bankingQueries.GetBankRecordsResponse](r, s.mediator,
		&bankingQueries.GetBankRecordsQuery{ShipID: shipID, Year: year})
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := bankRecordsJSON{
		ShipID:    resp.ShipID,
		Year:      resp.Year,
		CBBefore:  resp.CBBefore,
		Available: resp.Available,
		Applied:   resp.Applied,
		Entries:   make([]bankEntryJSON, len(resp.Entries)),
	}
	for i, e := range resp.Entries {
		out.Entries[i] = toBankEntryJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBankSurplus(w http.ResponseWriter, r *http.Request) {
	var body bankRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[bankingCommands.BankSurplusResponse](r, s.mediator, &bankingCommands.BankSurplusCommand{
		ShipID: body.ShipID,
		Year:   body.Year,
		Amount: body.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBankResponseJSON(resp))
}

func (s *Server) handleApplyBank(w http.ResponseWriter, r *http.Request) {
	var body bankRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	if body.Amount == nil {
		writeError(w, r, shared.NewValidationError("amount", "required"))
		return
	}

	resp, err := send[bankingCommands.ApplyBankResponse](r, s.mediator, &bankingCommands.ApplyBankCommand{
		ShipID: body.ShipID,
		Year:   body.Year,
		Amount: *body.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResponseJSON{
		ShipID:    resp.ShipID,
		Year:      resp.Year,
		Applied:   resp.Applied,
		CBBefore:  resp.CBBefore,
		CBAfter:   resp.CBAfter,
		Available: resp.Available,
	})
}
