package exporting

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"ecospin/internal/models"
)

func TestWriteProofsCSV(t *testing.T) {
	reviewer := int64(9)
	reviewedAt := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	reason := "photo does not show the action"

	proofs := []*models.Proof{
		{
			ID: 1, UserID: 7, ChallengeID: 3, PendingChallengeID: 11,
			Status: models.ProofApproved, TotalVotes: 4,
			ReviewedBy: &reviewer, ReviewedAt: &reviewedAt,
			CreatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, UserID: 8, ChallengeID: 3, PendingChallengeID: 12,
			Status: models.ProofRejected, RejectionReason: &reason,
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteProofsCSV(&buf, proofs); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[1][4] != "APPROVED" || rows[1][7] != "9" {
		t.Errorf("approved row = %v", rows[1])
	}
	if rows[2][5] != reason || rows[2][8] != "" {
		t.Errorf("rejected row = %v", rows[2])
	}
}

func TestWritePointEventsCSV(t *testing.T) {
	events := []*models.PointEvent{
		{ID: 1, UserID: 7, Amount: 20, Reason: models.PointReasonQuizCorrect, Ref: 5, CreatedAt: time.Now()},
		{ID: 2, UserID: 7, Amount: 1, Reason: models.PointReasonVoteReceived, Ref: 1, CreatedAt: time.Now()},
	}

	var buf bytes.Buffer
	if err := WritePointEventsCSV(&buf, events); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[1][3] != "QUIZ_CORRECT" || rows[2][2] != "1" {
		t.Errorf("unexpected rows: %v", rows[1:])
	}
}
