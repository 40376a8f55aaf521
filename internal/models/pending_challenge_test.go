package models

import "testing"

func TestPendingChallengeTransitions(t *testing.T) {
	allowed := []struct {
		from, to PendingChallengeStatus
	}{
		{PendingChallengePending, PendingChallengeProofSubmitted},
		{PendingChallengePending, PendingChallengeDeclined},
		{PendingChallengeProofSubmitted, PendingChallengeVerified},
		{PendingChallengeProofSubmitted, PendingChallengeRejected},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to PendingChallengeStatus
	}{
		{PendingChallengePending, PendingChallengeVerified},
		{PendingChallengePending, PendingChallengeRejected},
		{PendingChallengeProofSubmitted, PendingChallengeDeclined},
		{PendingChallengeProofSubmitted, PendingChallengePending},
		{PendingChallengeVerified, PendingChallengeRejected},
		{PendingChallengeRejected, PendingChallengeVerified},
		{PendingChallengeDeclined, PendingChallengeProofSubmitted},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be forbidden", tc.from, tc.to)
		}
	}
}

func TestPendingChallengeTerminal(t *testing.T) {
	for _, status := range []PendingChallengeStatus{PendingChallengeVerified, PendingChallengeRejected, PendingChallengeDeclined} {
		if !status.Terminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range []PendingChallengeStatus{PendingChallengePending, PendingChallengeProofSubmitted} {
		if status.Terminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestParsePendingChallengeStatus(t *testing.T) {
	got, ok := ParsePendingChallengeStatus("  proof_submitted ")
	if !ok || got != PendingChallengeProofSubmitted {
		t.Errorf("ParsePendingChallengeStatus = %s, %v", got, ok)
	}

	if _, ok := ParsePendingChallengeStatus("bogus"); ok {
		t.Errorf("bogus status should not parse")
	}
}
