package service

import (
	"context"
	"errors"
	"time"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"
	"gig-marketplace-api/pkg/logger"
)

const (
	maxRejectAttempts = 3
	rejectRetryDelay  = 100 * time.Millisecond
)

type BidService struct {
	bidRepo  repo.Bid
	gigRepo  repo.Gig
	userRepo repo.User
}

func NewBidService(repos *repo.Repositories) *BidService {
	return &BidService{
		bidRepo:  repos.Bid,
		gigRepo:  repos.Gig,
		userRepo: repos.User,
	}
}

func (s *BidService) SubmitBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() == input.FreelancerId {
		return nil, ErrOwnGigBid
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotOpen
	}

	exists, err := s.userRepo.DoesUserExistById(ctx, input.FreelancerId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrDuplicate):
			return nil, ErrDuplicateBid
		case errors.Is(err, repo_errors.ErrConflict):
			// the gig was assigned after the precondition read
			return nil, ErrGigNotOpen
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) WithdrawBid(ctx context.Context, bidId string, freelancerId string) error {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrBidNotFound
		}

		return err
	}

	if bid.FreelancerId.String() != freelancerId {
		return ErrNotBidOwner
	}

	if bid.Status != common.BidPending {
		return ErrBidAlreadyProcessed
	}

	if err := s.bidRepo.DeleteBidById(ctx, bidId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return ErrBidAlreadyProcessed
		}

		return err
	}

	return nil
}

// Hire selects the winning bid for a gig. Preconditions are checked in
// order (bid exists, gig exists, caller owns the gig, gig open, bid
// pending), then the repo applies the conditional open→assigned and
// pending→hired writes in one transaction. Losing a race surfaces as a
// conflict, never as a second winner. The bulk rejection of competing
// bids runs after the commit and is retried; once the transaction has
// committed the hire is never undone.
func (s *BidService) Hire(ctx context.Context, bidId string, clientId string) (*entity.HireOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != clientId {
		return nil, ErrNotGigOwner
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotOpen
	}

	if bid.Status != common.BidPending {
		return nil, ErrBidAlreadyProcessed
	}

	gigId := gig.Id.String()
	if err := s.bidRepo.HireBid(ctx, gigId, bidId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, s.classifyHireConflict(ctx, gigId)
		}

		return nil, err
	}

	logger.Info().
		Str("gigId", gigId).
		Str("bidId", bidId).
		Msg("gig assigned")

	rejected := s.rejectCompetingBids(ctx, gigId, bidId)

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return &entity.HireOutputModel{
		Bid:           *mapBidWithGig(bid),
		RejectedCount: rejected,
	}, nil
}

// classifyHireConflict distinguishes "another hire won the gig" from
// "the chosen bid was withdrawn or settled mid-flight".
func (s *BidService) classifyHireConflict(ctx context.Context, gigId string) error {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err == nil && gig.Status != common.GigOpen {
		return ErrGigNotOpen
	}

	return ErrBidAlreadyProcessed
}

// rejectCompetingBids runs the idempotent bulk rejection with capped
// retries. On exhaustion the gig is left for SettleUnfinishedHires; the
// committed hire stands either way.
func (s *BidService) rejectCompetingBids(ctx context.Context, gigId string, winnerBidId string) int64 {
	var lastErr error
	for attempt := 1; attempt <= maxRejectAttempts; attempt++ {
		rejected, err := s.bidRepo.RejectCompetingBids(ctx, gigId, winnerBidId)
		if err == nil {
			logger.Info().
				Str("gigId", gigId).
				Int64("rejected", rejected).
				Msg("competing bids rejected")

			return rejected
		}

		lastErr = err
		logger.Warn().
			Err(err).
			Str("gigId", gigId).
			Int("attempt", attempt).
			Msg("rejecting competing bids failed")
		time.Sleep(rejectRetryDelay)
	}

	logger.Error().
		Err(lastErr).
		Str("gigId", gigId).
		Msg("competing bids left pending, reconciler will settle the gig")

	return 0
}

func (s *BidService) GetBidsForGig(ctx context.Context, gigId string, callerId string) (*entity.GigBidsOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != callerId {
		return nil, ErrNotGigOwner
	}

	bids, err := s.bidRepo.GetGigBids(ctx, gigId)
	if err != nil {
		return nil, err
	}

	return &entity.GigBidsOutputModel{
		Gig:      mapGigSummary(gig),
		BidCount: len(bids),
		Bids:     mapBids(bids),
	}, nil
}

func (s *BidService) GetUserBids(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetUserBids(ctx, freelancerId, pg)
	if err != nil {
		return nil, err
	}

	return mapBidsWithGig(bids), nil
}

// SettleUnfinishedHires is the repair path for hires interrupted between
// the commit and the bulk rejection: it finds assigned gigs still
// holding pending bids and finishes rejecting them.
func (s *BidService) SettleUnfinishedHires(ctx context.Context) error {
	gigIds, err := s.bidRepo.GetUnsettledGigIds(ctx)
	if err != nil {
		return err
	}

	for _, gigId := range gigIds {
		gig, err := s.gigRepo.GetGigById(ctx, gigId.String())
		if err != nil {
			return err
		}
		if gig.SelectedBidId == nil {
			// unreachable while the assigned⟺selected invariant holds
			continue
		}

		rejected, err := s.bidRepo.RejectCompetingBids(ctx, gigId.String(), gig.SelectedBidId.String())
		if err != nil {
			return err
		}

		logger.Info().
			Str("gigId", gigId.String()).
			Int64("rejected", rejected).
			Msg("settled unfinished hire")
	}

	return nil
}
