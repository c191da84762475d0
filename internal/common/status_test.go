package common_test

import (
	"testing"

	"gig-marketplace-api/internal/common"
)

func TestIsValidGigStatus(t *testing.T) {
	for _, s := range []string{common.GigOpen, common.GigAssigned} {
		if !common.IsValidGigStatus(s) {
			t.Errorf("IsValidGigStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "closed", "OPEN", common.BidPending} {
		if common.IsValidGigStatus(s) {
			t.Errorf("IsValidGigStatus(%q) = true, want false", s)
		}
	}
}

func TestIsValidBidStatus(t *testing.T) {
	for _, s := range []string{common.BidPending, common.BidHired, common.BidRejected} {
		if !common.IsValidBidStatus(s) {
			t.Errorf("IsValidBidStatus(%q) = false, want true", s)
		}
	}
	if common.IsValidBidStatus(common.GigOpen) {
		t.Error("IsValidBidStatus(open) = true, want false")
	}
}

func TestGigTransitions(t *testing.T) {
	if !common.IsGigTransitionAllowed(common.GigOpen, common.GigAssigned) {
		t.Error("open → assigned should be allowed")
	}

	forbidden := []struct{ from, to string }{
		{common.GigAssigned, common.GigOpen},
		{common.GigAssigned, common.GigAssigned},
		{common.GigOpen, common.GigOpen},
	}
	for _, c := range forbidden {
		if common.IsGigTransitionAllowed(c.from, c.to) {
			t.Errorf("%s → %s should be forbidden", c.from, c.to)
		}
	}
}

func TestBidTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{common.BidPending, common.BidHired},
		{common.BidPending, common.BidRejected},
	}
	for _, c := range allowed {
		if !common.IsBidTransitionAllowed(c.from, c.to) {
			t.Errorf("%s → %s should be allowed", c.from, c.to)
		}
	}

	// hired and rejected are terminal
	for _, from := range []string{common.BidHired, common.BidRejected} {
		for _, to := range []string{common.BidPending, common.BidHired, common.BidRejected} {
			if common.IsBidTransitionAllowed(from, to) {
				t.Errorf("%s → %s should be forbidden (terminal state)", from, to)
			}
		}
	}
}
