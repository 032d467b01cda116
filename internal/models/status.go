package models

import (
	"fmt"
	"strings"
)

// SubmissionStatus is the business status derived from a submission.
type SubmissionStatus string

const (
	StatusSubmitted     SubmissionStatus = "submitted"
	StatusSubmittedLate SubmissionStatus = "submitted-late"
	StatusMissing       SubmissionStatus = "missing"
	StatusPending       SubmissionStatus = "pending"
	StatusResubmission  SubmissionStatus = "resubmission"
	StatusUnknown       SubmissionStatus = "unknown"
)

// FilterableStatuses lists the statuses accepted as query filters.
var FilterableStatuses = []SubmissionStatus{
	StatusSubmitted,
	StatusSubmittedLate,
	StatusMissing,
	StatusPending,
	StatusResubmission,
}

// legacy labels used by the Spanish dashboard.
var statusAliases = map[string]SubmissionStatus{
	"entregado": StatusSubmitted,
	"atrasado":  StatusSubmittedLate,
	"faltante":  StatusMissing,
	"pendiente": StatusPending,
	"reentrega": StatusResubmission,
}

// ParseSubmissionStatus converts a filter label into a status. Empty input
// yields an empty status and no error.
func ParseSubmissionStatus(raw string) (SubmissionStatus, error) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return "", nil
	}
	for _, status := range FilterableStatuses {
		if label == string(status) {
			return status, nil
		}
	}
	if status, ok := statusAliases[label]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown submission status %q", raw)
}

// StatusTotals counts classified submissions.
type StatusTotals struct {
	Total         int `json:"total"`
	Submitted     int `json:"submitted"`
	SubmittedLate int `json:"submittedLate"`
	Missing       int `json:"missing"`
	Pending       int `json:"pending"`
	Resubmission  int `json:"resubmission"`
	Unknown       int `json:"unknown"`
}

// Add counts one submission with the given status.
func (t *StatusTotals) Add(status SubmissionStatus) {
	t.Total++
	switch status {
	case StatusSubmitted:
		t.Submitted++
	case StatusSubmittedLate:
		t.SubmittedLate++
	case StatusMissing:
		t.Missing++
	case StatusPending:
		t.Pending++
	case StatusResubmission:
		t.Resubmission++
	default:
		t.Unknown++
	}
}

// Merge adds other into t.
func (t *StatusTotals) Merge(other StatusTotals) {
	t.Total += other.Total
	t.Submitted += other.Submitted
	t.SubmittedLate += other.SubmittedLate
	t.Missing += other.Missing
	t.Pending += other.Pending
	t.Resubmission += other.Resubmission
	t.Unknown += other.Unknown
}
