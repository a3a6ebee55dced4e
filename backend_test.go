package tundra

import (
	"errors"
	"testing"
)

func TestClaimDevice_Exclusive(t *testing.T) {
	claim, err := ClaimDevice()
	if err != nil {
		t.Fatalf("ClaimDevice failed: %v", err)
	}
	defer claim.Release()

	if _, err := ClaimDevice(); !errors.Is(err, ErrDeviceClaimed) {
		t.Errorf("second ClaimDevice error = %v, want ErrDeviceClaimed", err)
	}
}

func TestClaimDevice_ReleaseAllowsReclaim(t *testing.T) {
	claim, err := ClaimDevice()
	if err != nil {
		t.Fatalf("ClaimDevice failed: %v", err)
	}
	claim.Release()

	again, err := ClaimDevice()
	if err != nil {
		t.Fatalf("ClaimDevice after Release failed: %v", err)
	}
	again.Release()
}

func TestDeviceClaim_DoubleReleaseHarmless(t *testing.T) {
	claim, err := ClaimDevice()
	if err != nil {
		t.Fatalf("ClaimDevice failed: %v", err)
	}
	claim.Release()
	claim.Release()

	// A stale second release must not free a claim someone else holds.
	current, err := ClaimDevice()
	if err != nil {
		t.Fatalf("ClaimDevice failed: %v", err)
	}
	defer current.Release()

	claim.Release()
	if _, err := ClaimDevice(); !errors.Is(err, ErrDeviceClaimed) {
		t.Errorf("ClaimDevice error = %v, want ErrDeviceClaimed after stale release", err)
	}
}
