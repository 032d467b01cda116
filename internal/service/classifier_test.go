package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
)

func TestClassifySubmission(t *testing.T) {
	due := time.Date(2025, 10, 5, 23, 59, 59, 0, time.UTC)
	before := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		state string
		late  bool
		due   *time.Time
		now   time.Time
		want  models.SubmissionStatus
	}{
		{"reclaimed on time", models.SubmissionStateReclaimedByStudent, false, &due, before, models.StatusResubmission},
		{"reclaimed late past due", models.SubmissionStateReclaimedByStudent, true, &due, after, models.StatusResubmission},
		{"turned in", models.SubmissionStateTurnedIn, false, &due, after, models.StatusSubmitted},
		{"turned in late", models.SubmissionStateTurnedIn, true, &due, before, models.StatusSubmittedLate},
		{"returned", models.SubmissionStateReturned, false, nil, after, models.StatusSubmitted},
		{"returned late", models.SubmissionStateReturned, true, nil, after, models.StatusSubmittedLate},
		{"created past due", models.SubmissionStateCreated, false, &due, after, models.StatusMissing},
		{"created before due", models.SubmissionStateCreated, false, &due, before, models.StatusPending},
		{"created late flag ignored", models.SubmissionStateCreated, true, &due, before, models.StatusPending},
		{"created no due date", models.SubmissionStateCreated, true, nil, after, models.StatusPending},
		{"new past due", models.SubmissionStateNew, false, &due, after, models.StatusMissing},
		{"created exactly at due", models.SubmissionStateCreated, false, &due, due, models.StatusPending},
		{"unspecified", "SUBMISSION_STATE_UNSPECIFIED", false, &due, after, models.StatusUnknown},
		{"empty", "", true, nil, after, models.StatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifySubmission(tc.state, tc.late, tc.due, tc.now)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, ClassifySubmission(tc.state, tc.late, tc.due, tc.now))
		})
	}
}

func TestOnTimePercentage(t *testing.T) {
	assert.Equal(t, 0.0, OnTimePercentage(models.StatusTotals{Total: 3, Submitted: 1, SubmittedLate: 1, Missing: 1}))
	assert.Equal(t, 66.67, OnTimePercentage(models.StatusTotals{Total: 3, Submitted: 2}))
	assert.Equal(t, 0.0, OnTimePercentage(models.StatusTotals{}))
	assert.Equal(t, -50.0, OnTimePercentage(models.StatusTotals{Total: 2, SubmittedLate: 1, Missing: 1}))
}

func TestCohortRating(t *testing.T) {
	assert.Equal(t, models.CohortRatingExcellent, CohortRating(80))
	assert.Equal(t, models.CohortRatingGood, CohortRating(79.99))
	assert.Equal(t, models.CohortRatingGood, CohortRating(60))
	assert.Equal(t, models.CohortRatingNeedsAttention, CohortRating(59.5))
	assert.Equal(t, models.CohortRatingNeedsAttention, CohortRating(-10))
}
