package entity

import (
	"github.com/google/uuid"
)

// db model
type Gig struct {
	Id            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Budget        float64    `json:"budget" db:"budget"`
	OwnerId       uuid.UUID  `json:"ownerId" db:"owner_id"`
	OwnerName     string     `json:"ownerName" db:"owner_name"`
	OwnerEmail    string     `json:"ownerEmail" db:"owner_email"`
	Status        string     `json:"status" db:"status"`
	SelectedBidId *uuid.UUID `json:"selectedBidId" db:"selected_bid_id"`
	BidCount      int        `json:"bidCount" db:"bid_count"`
	CreatedAt     string     `json:"createdAt" db:"created_at"`
	UpdatedAt     string     `json:"updatedAt" db:"updated_at"`
}

// service + repo input model
type CreateGigInput struct {
	Title       string // given
	Description string // given
	Budget      float64 // given
	OwnerId     string // given
	// Status should be set: "open", BidCount: 0
	// Id, CreatedAt, UpdatedAt set automatically
}

// empty fields keep their current value
type UpdateGigInput struct {
	Title       string
	Description string
	Budget      float64
}

// controller model
type GigOutputModel struct {
	Id          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Budget      float64      `json:"budget"`
	Owner       UserSummary  `json:"owner"`
	Status      string       `json:"status"`
	BidCount    int          `json:"bidCount"`
	CreatedAt   string       `json:"createdAt"`
	HiredBid    *BidOutputModel `json:"hiredBid,omitempty"`
}

// embedded in bid listings so a bidder sees the gig context
type GigSummary struct {
	Id     string  `json:"id"`
	Title  string  `json:"title"`
	Budget float64 `json:"budget"`
	Status string  `json:"status"`
}
