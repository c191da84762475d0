package service

import (
	"context"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)

	GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)
	GetUserGigs(ctx context.Context, ownerId string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)

	UpdateGigById(ctx context.Context, gigId string, callerId string, input *entity.UpdateGigInput) (*entity.GigOutputModel, error)
	DeleteGigById(ctx context.Context, gigId string, callerId string) error
}

type Bid interface {
	SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	WithdrawBid(ctx context.Context, bidId string, freelancerId string) error

	Hire(ctx context.Context, bidId string, clientId string) (*entity.HireOutputModel, error)

	GetBidsForGig(ctx context.Context, gigId string, callerId string) (*entity.GigBidsOutputModel, error)
	GetUserBids(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	// SettleUnfinishedHires completes the rejection step for any gig
	// assigned by a hire that did not finish closing out its bids.
	SettleUnfinishedHires(ctx context.Context) error
}

type Services struct {
	Diagnostics Diagnostics
	Gig         Gig
	Bid         Bid
}

func NewServices(repos *repo.Repositories) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Gig:         NewGigService(repos),
		Bid:         NewBidService(repos),
	}
}
