package service

import "errors"

// Sentinels grouped by kind. Controllers map NotFound→404, Forbidden→403,
// Conflict→409, InvalidInput→400; anything unlisted is an internal error
// whose detail is logged, never returned to the caller.
var (
	// NotFound
	ErrGigNotFound  = errors.New("gig not found")
	ErrBidNotFound  = errors.New("bid not found")
	ErrUserNotFound = errors.New("user not found")

	// Forbidden
	ErrNotGigOwner = errors.New("caller does not own the gig")
	ErrNotBidOwner = errors.New("caller does not own the bid")
	ErrOwnGigBid   = errors.New("cannot bid on your own gig")

	// Conflict
	ErrGigNotOpen          = errors.New("gig no longer open")
	ErrGigAssigned         = errors.New("cannot delete assigned gig")
	ErrBidAlreadyProcessed = errors.New("bid already processed")
	ErrDuplicateBid        = errors.New("bid already submitted for this gig")

	// InvalidInput
	ErrNoNewChanges = errors.New("no new values")
)
