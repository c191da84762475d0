package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the postgres repos. Every
// mutating operation holds one lock, so concurrent hires contend the
// same way the conditional row updates do in the database.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]entity.User
	gigs  map[string]*entity.Gig
	bids  map[string]*entity.Bid

	// next N RejectCompetingBids calls fail, for exercising the retry
	// and reconciler paths
	failRejects int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]entity.User),
		gigs:  make(map[string]*entity.Gig),
		bids:  make(map[string]*entity.Bid),
	}
}

func (f *fakeStore) repositories() *repo.Repositories {
	return &repo.Repositories{User: f, Gig: f, Bid: f}
}

func (f *fakeStore) addUser(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.users[id.String()] = entity.User{Id: id, Name: name, Email: name + "@example.com"}

	return id.String()
}

func (f *fakeStore) addGig(ownerId string, status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.gigs[id.String()] = &entity.Gig{
		Id:          id,
		Title:       "Build a landing page",
		Description: "A landing page with a contact form and basic styling",
		Budget:      500,
		OwnerId:     uuid.MustParse(ownerId),
		Status:      status,
	}

	return id.String()
}

func (f *fakeStore) addBid(gigId string, freelancerId string, status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.bids[id.String()] = &entity.Bid{
		Id:           id,
		GigId:        uuid.MustParse(gigId),
		FreelancerId: uuid.MustParse(freelancerId),
		Message:      "I can deliver this within a week",
		BidPrice:     450,
		Status:       status,
	}
	if status == common.BidPending {
		f.gigs[gigId].BidCount++
	}

	return id.String()
}

func (f *fakeStore) gigCopy(g *entity.Gig) *entity.Gig {
	out := *g
	if g.SelectedBidId != nil {
		selected := *g.SelectedBidId
		out.SelectedBidId = &selected
	}
	if owner, ok := f.users[g.OwnerId.String()]; ok {
		out.OwnerName, out.OwnerEmail = owner.Name, owner.Email
	}

	return &out
}

func (f *fakeStore) bidCopy(b *entity.Bid) *entity.Bid {
	out := *b
	if freelancer, ok := f.users[b.FreelancerId.String()]; ok {
		out.FreelancerName, out.FreelancerEmail = freelancer.Name, freelancer.Email
	}
	if gig, ok := f.gigs[b.GigId.String()]; ok {
		out.GigTitle, out.GigBudget, out.GigStatus = gig.Title, gig.Budget, gig.Status
	}

	return &out
}

func paginate[T any](items []T, pg *entity.PaginationInput) []T {
	if pg == nil {
		return items
	}
	if pg.Offset >= len(items) {
		return []T{}
	}
	items = items[pg.Offset:]
	if pg.Limit < len(items) {
		items = items[:pg.Limit]
	}

	return items
}

func (f *fakeStore) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &user, nil
}

func (f *fakeStore) DoesUserExistById(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.users[id]

	return ok, nil
}

func (f *fakeStore) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.gigs[id.String()] = &entity.Gig{
		Id:          id,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		OwnerId:     uuid.MustParse(input.OwnerId),
		Status:      common.GigOpen,
	}

	return id, nil
}

func (f *fakeStore) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return f.gigCopy(gig), nil
}

func (f *fakeStore) GetOpenGigs(ctx context.Context, search string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := make([]entity.Gig, 0)
	needle := strings.ToLower(search)
	for _, gig := range f.gigs {
		if gig.Status != common.GigOpen {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(gig.Title), needle) &&
			!strings.Contains(strings.ToLower(gig.Description), needle) {
			continue
		}
		matches = append(matches, *f.gigCopy(gig))
	}

	return paginate(matches, pg), nil
}

func (f *fakeStore) GetGigsByOwnerId(ctx context.Context, ownerId string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := make([]entity.Gig, 0)
	for _, gig := range f.gigs {
		if gig.OwnerId.String() == ownerId {
			matches = append(matches, *f.gigCopy(gig))
		}
	}

	return paginate(matches, pg), nil
}

func (f *fakeStore) UpdateGigById(ctx context.Context, id string, input *entity.UpdateGigInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if gig.Status != common.GigOpen {
		return repo_errors.ErrConflict
	}

	if input.Title != "" {
		gig.Title = input.Title
	}
	if input.Description != "" {
		gig.Description = input.Description
	}
	if input.Budget > 0 {
		gig.Budget = input.Budget
	}

	return nil
}

func (f *fakeStore) DeleteGigById(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if gig.Status != common.GigOpen {
		return repo_errors.ErrConflict
	}

	for bidId, bid := range f.bids {
		if bid.GigId.String() == id {
			delete(f.bids, bidId)
		}
	}
	delete(f.gigs, id)

	return nil
}

func (f *fakeStore) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[input.GigId]
	if !ok || gig.Status != common.GigOpen {
		return uuid.Nil, repo_errors.ErrConflict
	}
	for _, bid := range f.bids {
		if bid.GigId.String() == input.GigId && bid.FreelancerId.String() == input.FreelancerId {
			return uuid.Nil, repo_errors.ErrDuplicate
		}
	}

	id := uuid.New()
	f.bids[id.String()] = &entity.Bid{
		Id:           id,
		GigId:        gig.Id,
		FreelancerId: uuid.MustParse(input.FreelancerId),
		Message:      input.Message,
		BidPrice:     input.BidPrice,
		Status:       common.BidPending,
	}
	gig.BidCount++

	return id, nil
}

func (f *fakeStore) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bid, ok := f.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return f.bidCopy(bid), nil
}

func (f *fakeStore) GetGigBids(ctx context.Context, gigId string) ([]entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := make([]entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.GigId.String() == gigId {
			matches = append(matches, *f.bidCopy(bid))
		}
	}

	return matches, nil
}

func (f *fakeStore) GetUserBids(ctx context.Context, freelancerId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := make([]entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.FreelancerId.String() == freelancerId {
			matches = append(matches, *f.bidCopy(bid))
		}
	}

	return paginate(matches, pg), nil
}

func (f *fakeStore) DeleteBidById(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bid, ok := f.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if bid.Status != common.BidPending {
		return repo_errors.ErrConflict
	}

	if gig, ok := f.gigs[bid.GigId.String()]; ok {
		gig.BidCount--
	}
	delete(f.bids, id)

	return nil
}

func (f *fakeStore) HireBid(ctx context.Context, gigId string, bidId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[gigId]
	if !ok || gig.Status != common.GigOpen {
		return repo_errors.ErrConflict
	}
	bid, ok := f.bids[bidId]
	if !ok || bid.GigId.String() != gigId || bid.Status != common.BidPending {
		return repo_errors.ErrConflict
	}

	selected := bid.Id
	gig.Status = common.GigAssigned
	gig.SelectedBidId = &selected
	bid.Status = common.BidHired

	return nil
}

func (f *fakeStore) RejectCompetingBids(ctx context.Context, gigId string, winnerBidId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRejects > 0 {
		f.failRejects--
		return 0, errors.New("fake reject failure")
	}

	var rejected int64
	for _, bid := range f.bids {
		if bid.GigId.String() == gigId && bid.Id.String() != winnerBidId && bid.Status == common.BidPending {
			bid.Status = common.BidRejected
			rejected++
		}
	}

	return rejected, nil
}

func (f *fakeStore) GetUnsettledGigIds(ctx context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]bool)
	ids := make([]uuid.UUID, 0)
	for _, bid := range f.bids {
		gig, ok := f.gigs[bid.GigId.String()]
		if !ok || gig.Status != common.GigAssigned || bid.Status != common.BidPending {
			continue
		}
		if !seen[gig.Id.String()] {
			seen[gig.Id.String()] = true
			ids = append(ids, gig.Id)
		}
	}

	return ids, nil
}
