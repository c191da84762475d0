// Package common holds the gig and bid status vocabulary shared by the
// repo, service and controller layers, plus the transition rules both
// state machines obey.
package common

// Gig statuses.
const (
	GigOpen     = "open"
	GigAssigned = "assigned"
)

// Bid statuses.
const (
	BidPending  = "pending"
	BidHired    = "hired"
	BidRejected = "rejected"
)

// gigTransitions: open → assigned, once, irreversibly.
var gigTransitions = map[string][]string{
	GigOpen:     {GigAssigned},
	GigAssigned: {},
}

// bidTransitions: pending is the only non-terminal state.
var bidTransitions = map[string][]string{
	BidPending:  {BidHired, BidRejected},
	BidHired:    {},
	BidRejected: {},
}

func IsValidGigStatus(s string) bool {
	_, ok := gigTransitions[s]
	return ok
}

func IsValidBidStatus(s string) bool {
	_, ok := bidTransitions[s]
	return ok
}

func IsGigTransitionAllowed(from, to string) bool {
	for _, t := range gigTransitions[from] {
		if t == to {
			return true
		}
	}

	return false
}

func IsBidTransitionAllowed(from, to string) bool {
	for _, t := range bidTransitions[from] {
		if t == to {
			return true
		}
	}

	return false
}
