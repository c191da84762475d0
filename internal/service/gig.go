package service

import (
	"context"
	"errors"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"
)

type GigService struct {
	gigRepo  repo.Gig
	bidRepo  repo.Bid
	userRepo repo.User
}

func NewGigService(repos *repo.Repositories) *GigService {
	return &GigService{
		gigRepo:  repos.Gig,
		bidRepo:  repos.Bid,
		userRepo: repos.User,
	}
}

func (s *GigService) CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error) {
	exists, err := s.userRepo.DoesUserExistById(ctx, input.OwnerId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	id, err := s.gigRepo.CreateGig(ctx, input)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapGig(gig), nil
}

// GetGigById returns the gig and, once it is assigned, the winning bid
// with the freelancer's identity.
func (s *GigService) GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	out := mapGig(gig)
	if gig.Status == common.GigAssigned && gig.SelectedBidId != nil {
		hiredBid, err := s.bidRepo.GetBidById(ctx, gig.SelectedBidId.String())
		if err != nil {
			return nil, err
		}
		out.HiredBid = mapBid(hiredBid)
	}

	return out, nil
}

func (s *GigService) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error) {
	gigs, err := s.gigRepo.GetOpenGigs(ctx, search, pg)
	if err != nil {
		return nil, err
	}

	return mapGigs(gigs), nil
}

func (s *GigService) GetUserGigs(ctx context.Context, ownerId string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error) {
	gigs, err := s.gigRepo.GetGigsByOwnerId(ctx, ownerId, pg)
	if err != nil {
		return nil, err
	}

	return mapGigs(gigs), nil
}

func (s *GigService) UpdateGigById(ctx context.Context, gigId string, callerId string, input *entity.UpdateGigInput) (*entity.GigOutputModel, error) {
	if input.Title == "" && input.Description == "" && input.Budget <= 0 {
		return nil, ErrNoNewChanges
	}

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

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotOpen
	}

	err = s.gigRepo.UpdateGigById(ctx, gigId, input)
	if err != nil {
		// a hire slipped in between the read above and this write
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrGigNotOpen
		}

		return nil, err
	}

	gig, err = s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		return nil, err
	}

	return mapGig(gig), nil
}

func (s *GigService) DeleteGigById(ctx context.Context, gigId string, callerId string) error {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrGigNotFound
		}

		return err
	}

	if gig.OwnerId.String() != callerId {
		return ErrNotGigOwner
	}

	if gig.Status != common.GigOpen {
		return ErrGigAssigned
	}

	if err := s.gigRepo.DeleteGigById(ctx, gigId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return ErrGigAssigned
		}

		return err
	}

	return nil
}
