package repo

import (
	"context"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/pgdb"
	"gig-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type User interface {
	GetUserById(ctx context.Context, id string) (*entity.User, error)
	DoesUserExistById(ctx context.Context, id string) (bool, error)
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error)
	GetGigById(ctx context.Context, id string) (*entity.Gig, error)
	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error)
	GetGigsByOwnerId(ctx context.Context, ownerId string, pg *entity.PaginationInput) ([]entity.Gig, error)
	// UpdateGigById writes only while the gig is still open; returns
	// ErrConflict once it has been assigned.
	UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error
	// DeleteGigById deletes the gig and all its bids in one transaction,
	// only while the gig is still open.
	DeleteGigById(ctx context.Context, id string) error
}

type Bid interface {
	// CreateBid inserts the bid and increments the gig's bid_count in a
	// single transaction, conditional on the gig still being open.
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetGigBids(ctx context.Context, gigId string) ([]entity.Bid, error)
	GetUserBids(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	// DeleteBidById removes a still-pending bid and decrements the gig's
	// bid_count in a single transaction.
	DeleteBidById(ctx context.Context, id string) error
	// HireBid transitions the gig open→assigned and the bid
	// pending→hired in one transaction. Both writes are conditional on
	// the current status; a lost race returns ErrConflict with no state
	// change.
	HireBid(ctx context.Context, gigId string, bidId string) error
	// RejectCompetingBids marks every other pending bid on the gig
	// rejected. Idempotent; safe to retry until it succeeds.
	RejectCompetingBids(ctx context.Context, gigId string, winnerBidId string) (int64, error)
	// GetUnsettledGigIds reports assigned gigs that still hold pending
	// bids, i.e. hires whose rejection step did not finish.
	GetUnsettledGigIds(ctx context.Context) ([]uuid.UUID, error)
}

type Repositories struct {
	Diagnostics
	User
	Gig
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		User:        pgdb.NewUserRepo(p),
		Gig:         pgdb.NewGigRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
