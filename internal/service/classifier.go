package service

import (
	"math"
	"time"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

// ClassifySubmission maps a raw submission state to its business status.
//
// Reclaimed submissions are resubmissions whatever their lateness. Turned in
// or returned submissions are submitted, or submitted-late when flagged late.
// Not yet submitted work is missing once now is past the due date, otherwise
// pending. The late flag is only consulted for submitted states.
func ClassifySubmission(state string, late bool, due *time.Time, now time.Time) models.SubmissionStatus {
	switch state {
	case models.SubmissionStateReclaimedByStudent:
		return models.StatusResubmission
	case models.SubmissionStateTurnedIn, models.SubmissionStateReturned:
		if late {
			return models.StatusSubmittedLate
		}
		return models.StatusSubmitted
	case models.SubmissionStateCreated, models.SubmissionStateNew:
		if due != nil && now.After(*due) {
			return models.StatusMissing
		}
		return models.StatusPending
	default:
		return models.StatusUnknown
	}
}

// OnTimePercentage computes (submitted - submittedLate) / max(1, total) * 100
// rounded to two decimals. The value is not clamped and can be negative.
func OnTimePercentage(t models.StatusTotals) float64 {
	total := t.Total
	if total < 1 {
		total = 1
	}
	raw := float64(t.Submitted-t.SubmittedLate) / float64(total) * 100
	return math.Round(raw*100) / 100
}

// CohortRating buckets an on-time percentage.
func CohortRating(onTime float64) string {
	switch {
	case onTime >= 80:
		return models.CohortRatingExcellent
	case onTime >= 60:
		return models.CohortRatingGood
	default:
		return models.CohortRatingNeedsAttention
	}
}
