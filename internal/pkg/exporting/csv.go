package exporting

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ecospin/internal/models"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatInt64Ptr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// WriteProofsCSV streams the proof table as CSV, one row per proof.
func WriteProofsCSV(w io.Writer, proofs []*models.Proof) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{
		"id", "user_id", "challenge_id", "pending_challenge_id",
		"status", "rejection_reason", "total_votes",
		"reviewed_by", "reviewed_at", "created_at",
	})
	if err != nil {
		return err
	}

	for _, proof := range proofs {
		reason := ""
		if proof.RejectionReason != nil {
			reason = *proof.RejectionReason
		}

		err := writer.Write([]string{
			strconv.FormatInt(proof.ID, 10),
			strconv.FormatInt(proof.UserID, 10),
			strconv.FormatInt(proof.ChallengeID, 10),
			strconv.FormatInt(proof.PendingChallengeID, 10),
			string(proof.Status),
			reason,
			strconv.Itoa(proof.TotalVotes),
			formatInt64Ptr(proof.ReviewedBy),
			formatTimePtr(proof.ReviewedAt),
			formatTime(proof.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePointEventsCSV streams the point event trace as CSV.
func WritePointEventsCSV(w io.Writer, events []*models.PointEvent) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{"id", "user_id", "amount", "reason", "ref", "created_at"})
	if err != nil {
		return err
	}

	for _, event := range events {
		err := writer.Write([]string{
			strconv.FormatInt(event.ID, 10),
			strconv.FormatInt(event.UserID, 10),
			strconv.Itoa(event.Amount),
			string(event.Reason),
			strconv.FormatInt(event.Ref, 10),
			formatTime(event.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
