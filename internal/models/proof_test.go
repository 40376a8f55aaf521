package models

import "testing"

func TestProofStatusTransitions(t *testing.T) {
	if !ProofPending.CanTransition(ProofApproved) {
		t.Errorf("PENDING -> APPROVED should be allowed")
	}
	if !ProofPending.CanTransition(ProofRejected) {
		t.Errorf("PENDING -> REJECTED should be allowed")
	}

	// a settled proof never moves again
	if ProofApproved.CanTransition(ProofRejected) {
		t.Errorf("APPROVED -> REJECTED should be forbidden")
	}
	if ProofRejected.CanTransition(ProofApproved) {
		t.Errorf("REJECTED -> APPROVED should be forbidden")
	}
	if ProofApproved.CanTransition(ProofPending) {
		t.Errorf("APPROVED -> PENDING should be forbidden")
	}
}

func TestParseProofStatusLegacyForms(t *testing.T) {
	cases := []struct {
		raw  string
		want ProofStatus
	}{
		{"APPROVED", ProofApproved},
		{"approved", ProofApproved},
		{"Accepted", ProofApproved},
		{"REJECTED", ProofRejected},
		{"declined", ProofRejected},
		{" pending ", ProofPending},
	}
	for _, tc := range cases {
		got, ok := ParseProofStatus(tc.raw)
		if !ok || got != tc.want {
			t.Errorf("ParseProofStatus(%q) = %s, %v, want %s", tc.raw, got, ok, tc.want)
		}
	}

	if _, ok := ParseProofStatus("maybe"); ok {
		t.Errorf("unknown status should not parse")
	}
}

func TestLogStatusForProof(t *testing.T) {
	if LogStatusForProof(ProofApproved) != ProofLogApproved {
		t.Errorf("approved proof maps to approved log")
	}
	if LogStatusForProof(ProofRejected) != ProofLogRejected {
		t.Errorf("rejected proof maps to rejected log")
	}
	if LogStatusForProof(ProofPending) != ProofLogSubmitted {
		t.Errorf("pending proof maps to submitted log")
	}
}
