package models

import (
	"strings"
	"time"
)

// DefaultCohort labels courses that carry neither a section nor a name.
const DefaultCohort = "General"

// Submission states reported by the classroom provider.
const (
	SubmissionStateNew                = "NEW"
	SubmissionStateCreated            = "CREATED"
	SubmissionStateTurnedIn           = "TURNED_IN"
	SubmissionStateReturned           = "RETURNED"
	SubmissionStateReclaimedByStudent = "RECLAIMED_BY_STUDENT"
)

// Course mirrors a classroom course. TeacherIDs and StudentIDs are only filled
// when the matching roster was loaded for the request.
type Course struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Section    string   `json:"section,omitempty"`
	OwnerID    string   `json:"ownerId,omitempty"`
	State      string   `json:"courseState,omitempty"`
	Cohort     string   `json:"cohort"`
	TeacherIDs []string `json:"teacherIds,omitempty"`
	StudentIDs []string `json:"studentIds,omitempty"`
}

// DeriveCohort returns the section when present, else the name, else DefaultCohort.
func DeriveCohort(section, name string) string {
	if s := strings.TrimSpace(section); s != "" {
		return s
	}
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return DefaultCohort
}

// RosterMember is a student or teacher enrolled in a course.
type RosterMember struct {
	CourseID  string `json:"courseId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// Identity resolves the stable key of a member: user id, then profile id, then
// full name. The boolean is false when none is set; such members are skipped.
func (m RosterMember) Identity() (string, bool) {
	for _, candidate := range []string{m.UserID, m.ProfileID, m.Name} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v, true
		}
	}
	return "", false
}

// Matches reports whether id names this member by user id or profile id.
func (m RosterMember) Matches(id string) bool {
	if id == "" {
		return false
	}
	return m.UserID == id || m.ProfileID == id
}

// DueDate is a calendar date as sent by the provider. Zero fields are unset.
type DueDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
	Day   int `json:"day,omitempty"`
}

// TimeOfDay is a wall-clock time in UTC. Zero fields are unset.
type TimeOfDay struct {
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}

// AssembleDueDate builds the absolute UTC due instant.
//
// A nil date or a missing year means there is no due date. A missing month or
// day defaults to 1. A nil time of day defaults to 23:59:59.
func AssembleDueDate(date *DueDate, tod *TimeOfDay) (time.Time, bool) {
	if date == nil || date.Year == 0 {
		return time.Time{}, false
	}
	month := date.Month
	if month == 0 {
		month = 1
	}
	day := date.Day
	if day == 0 {
		day = 1
	}
	hour, minute, second := 23, 59, 59
	if tod != nil {
		hour, minute, second = tod.Hours, tod.Minutes, tod.Seconds
	}
	return time.Date(date.Year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// CourseWork is an assignment inside a course.
type CourseWork struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"courseId"`
	Title        string     `json:"title"`
	State        string     `json:"state,omitempty"`
	WorkType     string     `json:"workType,omitempty"`
	MaxPoints    float64    `json:"maxPoints,omitempty"`
	DueDate      *DueDate   `json:"dueDate,omitempty"`
	DueTime      *TimeOfDay `json:"dueTime,omitempty"`
	CreationTime string     `json:"creationTime,omitempty"`
	UpdateTime   string     `json:"updateTime,omitempty"`
}

// Due returns the assembled due instant of the coursework.
func (cw CourseWork) Due() (time.Time, bool) {
	return AssembleDueDate(cw.DueDate, cw.DueTime)
}

// Submission is one student's submission for a coursework.
type Submission struct {
	ID           string           `json:"id,omitempty"`
	CourseID     string           `json:"courseId,omitempty"`
	CourseWorkID string           `json:"courseWorkId"`
	UserID       string           `json:"userId"`
	State        string           `json:"state"`
	Late         bool             `json:"late"`
	Status       SubmissionStatus `json:"status,omitempty"`
}

// Page is one page of a provider listing.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}
