package pooling

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

// DefaultMinMembers is the smallest pool the regulation allows
const DefaultMinMembers = 2

// Member links a ship-year to a pool with the balance it brought in
type Member struct {
	poolID     uuid.UUID
	shipYear   shared.ShipYear
	adjustedCB float64
	cbAfter    float64
}

// ReconstructMember rebuilds a member from persistence; an invalid ship-year is an error
func ReconstructMember(poolID uuid.UUID, shipID string, year int, adjustedCB, cbAfter float64) (Member, error) {
	sy, err := shared.NewShipYear(shipID, year)
	if err != nil {
		return Member{}, err
	}
	return Member{poolID: poolID, shipYear: sy, adjustedCB: adjustedCB, cbAfter: cbAfter}, nil
}

func (m Member) PoolID() uuid.UUID         { return m.poolID }
func (m Member) ShipID() string            { return m.shipYear.ShipID() }
func (m Member) Year() int                 { return m.shipYear.Year() }
func (m Member) AdjustedCB() float64       { return m.adjustedCB }
func (m Member) CBAfter() float64          { return m.cbAfter }
func (m Member) ShipYear() shared.ShipYear { return m.shipYear }

// Pool is created once per formation request and never updated afterwards
type Pool struct {
	id        uuid.UUID
	year      int
	pooledCB  float64
	strategy  Strategy
	createdAt time.Time
	members   []Member
}

// NewPool builds a pool from an allocation
func NewPool(year int, allocation Allocation, now time.Time) (*Pool, error) {
	id := uuid.New()
	members := make([]Member, len(allocation.Members))
	for i, m := range allocation.Members {
		sy, err := shared.NewShipYear(m.ShipID, year)
		if err != nil {
			return nil, err
		}
		members[i] = Member{
			poolID:     id,
			shipYear:   sy,
			adjustedCB: m.CBBefore,
			cbAfter:    m.CBAfter,
		}
	}
	return &Pool{
		id:        id,
		year:      year,
		pooledCB:  allocation.PooledCB,
		strategy:  allocation.Strategy,
		createdAt: now,
		members:   members,
	}, nil
}

// ReconstructPool rebuilds a pool from persistence
func ReconstructPool(id uuid.UUID, year int, pooledCB float64, strategy Strategy, createdAt time.Time, members []Member) *Pool {
	return &Pool{
		id:        id,
		year:      year,
		pooledCB:  pooledCB,
		strategy:  strategy,
		createdAt: createdAt,
		members:   members,
	}
}

func (p *Pool) ID() uuid.UUID        { return p.id }
func (p *Pool) Year() int            { return p.year }
func (p *Pool) PooledCB() float64    { return p.pooledCB }
func (p *Pool) Strategy() Strategy   { return p.strategy }
func (p *Pool) CreatedAt() time.Time { return p.createdAt }

func (p *Pool) Members() []Member {
	out := make([]Member, len(p.members))
	copy(out, p.members)
	return out
}

// Membership is a ship-year's view of the pool it belongs to
type Membership struct {
	PoolID     uuid.UUID
	ShipID     string
	Year       int
	PooledCB   float64
	AdjustedCB float64
	CBAfter    float64
	Strategy   Strategy
}

// ValidateRequest checks the shape of a formation request before any balance is resolved
func ValidateRequest(shipIDs []string, year int, minMembers int) ([]string, error) {
	if minMembers < DefaultMinMembers {
		minMembers = DefaultMinMembers
	}

	seen := make(map[string]bool, len(shipIDs))
	distinct := make([]string, 0, len(shipIDs))
	for _, id := range shipIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, shared.NewDomainError("Ship IDs must not be empty")
		}
		if seen[id] {
			return nil, shared.NewDomainErrorf("Ship %s is listed more than once", id)
		}
		seen[id] = true
		distinct = append(distinct, id)
	}

	if len(distinct) < minMembers {
		return nil, shared.NewDomainErrorf("At least %d ships required to create a pool", minMembers)
	}
	if year <= 0 {
		return nil, shared.NewDomainError("Year must be a positive number")
	}
	return distinct, nil
}

// AlreadyPooledError reports a ship-year that is already a pool member
func AlreadyPooledError(shipID string, year int) *shared.DomainError {
	return shared.NewDomainErrorf("Ship %s is already in a pool for year %d", shipID, year)
}
