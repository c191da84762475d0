package entity

import (
	"github.com/google/uuid"
)

// db model; freelancer and gig columns come from joins
type Bid struct {
	Id              uuid.UUID `json:"id" db:"id"`
	GigId           uuid.UUID `json:"gigId" db:"gig_id"`
	FreelancerId    uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Message         string    `json:"message" db:"message"`
	BidPrice        float64   `json:"bidPrice" db:"bid_price"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
	UpdatedAt       string    `json:"updatedAt" db:"updated_at"`
	FreelancerName  string    `json:"freelancerName" db:"freelancer_name"`
	FreelancerEmail string    `json:"freelancerEmail" db:"freelancer_email"`
	GigTitle        string    `json:"gigTitle" db:"gig_title"`
	GigBudget       float64   `json:"gigBudget" db:"gig_budget"`
	GigStatus       string    `json:"gigStatus" db:"gig_status"`
}

// service + repo input model
type CreateBidInput struct {
	GigId        string  // given
	FreelancerId string  // given
	Message      string  // given
	BidPrice     float64 // given
	// Status should be set: "pending"
	// Id, CreatedAt, UpdatedAt set automatically
}

// controller model
type BidOutputModel struct {
	Id         string      `json:"id"`
	GigId      string      `json:"gigId"`
	Message    string      `json:"message"`
	BidPrice   float64     `json:"bidPrice"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"createdAt"`
	Freelancer UserSummary `json:"freelancer"`
	Gig        *GigSummary `json:"gig,omitempty"`
}

// hire() response: the winning bid plus how many competitors were closed out
type HireOutputModel struct {
	Bid           BidOutputModel `json:"bid"`
	RejectedCount int64          `json:"rejectedCount"`
}

// owner's view of a gig's bid list
type GigBidsOutputModel struct {
	Gig      GigSummary       `json:"gig"`
	BidCount int              `json:"bidCount"`
	Bids     []BidOutputModel `json:"bids"`
}
