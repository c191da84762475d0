package service

import (
	"gig-marketplace-api/internal/entity"
)

func mapGig(g *entity.Gig) *entity.GigOutputModel {
	return &entity.GigOutputModel{
		Id:          g.Id.String(),
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Owner: entity.UserSummary{
			Id:    g.OwnerId.String(),
			Name:  g.OwnerName,
			Email: g.OwnerEmail,
		},
		Status:    g.Status,
		BidCount:  g.BidCount,
		CreatedAt: g.CreatedAt,
	}
}

func mapGigs(gigs []entity.Gig) []entity.GigOutputModel {
	s := make([]entity.GigOutputModel, 0)
	for _, gig := range gigs {
		s = append(s, *mapGig(&gig))
	}

	return s
}

func mapGigSummary(g *entity.Gig) entity.GigSummary {
	return entity.GigSummary{
		Id:     g.Id.String(),
		Title:  g.Title,
		Budget: g.Budget,
		Status: g.Status,
	}
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        b.Id.String(),
		GigId:     b.GigId.String(),
		Message:   b.Message,
		BidPrice:  b.BidPrice,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		Freelancer: entity.UserSummary{
			Id:    b.FreelancerId.String(),
			Name:  b.FreelancerName,
			Email: b.FreelancerEmail,
		},
	}
}

// mapBidWithGig additionally carries the joined gig context, used in
// bidder-facing listings and the hire response.
func mapBidWithGig(b *entity.Bid) *entity.BidOutputModel {
	out := mapBid(b)
	out.Gig = &entity.GigSummary{
		Id:     b.GigId.String(),
		Title:  b.GigTitle,
		Budget: b.GigBudget,
		Status: b.GigStatus,
	}

	return out
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapBidsWithGig(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBidWithGig(&bid))
	}

	return s
}
