package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	poolingCommands "github.com/andrescamacho/fueleu-go/internal/application/pooling/commands"
	poolingQueries "github.com/andrescamacho/fueleu-go/internal/application/pooling/queries"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	var body createPoolRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	cmd := &poolingCommands.CreatePoolCommand{
		ShipIDs:  body.ShipIDs,
		Year:     body.Year,
		Strategy: body.Strategy,
	}
	for _, m := range body.Members {
		cmd.Members = append(cmd.Members, poolingCommands.MemberInput{ShipID: m.ShipID, CBBefore: m.CBBefore})
	}

	resp, err := send[poolingCommands.CreatePoolResponse](r, s.mediator, cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := poolJSON{
		PoolID:   resp.PoolID,
		Year:     resp.Year,
		PooledCB: resp.PooledCB,
		Strategy: resp.Strategy,
		Ships:    make([]poolShipJSON, len(resp.Ships)),
	}
	for i, ship := range resp.Ships {
		out.Ships[i] = poolShipJSON{ShipID: ship.ShipID, AdjustedCB: ship.AdjustedCB, CBAfter: ship.CBAfter}
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleGetPoolMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := send[poolingQueries.GetPoolMembersResponse](r, s.mediator,
		&poolingQueries.GetPoolMembersQuery{PoolID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPoolMembersJSON(resp.Pool, resp.Members))
}

func (s *Server) handleGetPoolForShip(w http.ResponseWriter, r *http.Request) {
	shipID, year, err := requiredShipYear(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := send[poolingQueries.GetPoolForShipResponse](r, s.mediator,
		&poolingQueries.GetPoolForShipQuery{ShipID: shipID, Year: year})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if resp.Membership == nil {
		writeError(w, r, shared.NewNotFoundError("pool membership", shipID))
		return
	}

	m := resp.Membership
	writeJSON(w, http.StatusOK, membershipJSON{
		PoolID:     m.PoolID.String(),
		ShipID:     m.ShipID,
		Year:       m.Year,
		PooledCB:   m.PooledCB,
		AdjustedCB: m.AdjustedCB,
		CBAfter:    m.CBAfter,
		Strategy:   m.Strategy.String(),
	})
}
