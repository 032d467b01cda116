package models

// Cohort ratings derived from the on-time percentage.
const (
	CohortRatingExcellent      = "excellent"
	CohortRatingGood           = "good"
	CohortRatingNeedsAttention = "needs-attention"
)

// ClassroomFilter narrows the course set of an aggregate. Cohort matches the
// derived course cohort case-insensitively; TeacherID must appear in the
// course's teacher roster.
type ClassroomFilter struct {
	Cohort    string `json:"cohort,omitempty"`
	TeacherID string `json:"teacherId,omitempty"`
}

// Pagination carries listing metadata.
type Pagination struct {
	PageSize   int `json:"page_size,omitempty"`
	Limit      int `json:"limit,omitempty"`
	TotalCount int `json:"total_count"`
}

// TeacherAggregate is a teacher merged across the filtered courses.
type TeacherAggregate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	PhotoURL string   `json:"profilePhoto,omitempty"`
	Courses  []string `json:"courses"`
}

// StudentAggregate is a student merged across the filtered courses. Cohort is
// taken from the first course that listed the student.
type StudentAggregate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PhotoURL        string   `json:"profilePhoto,omitempty"`
	Cohort          string   `json:"cohort"`
	EnrolledCourses []string `json:"enrolledCourses"`
}

// StudentProgress is the per-student status rollup.
type StudentProgress struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Cohort           string       `json:"cohort"`
	Courses          []string     `json:"courses"`
	Totals           StatusTotals `json:"totals"`
	OnTimePercentage float64      `json:"onTimePercentage"`
}

// Summary is the dashboard headline across the filtered courses. Resubmissions
// are reported separately and are not part of the pending tally.
type Summary struct {
	TotalStudents           int `json:"totalStudents"`
	TotalTeachers           int `json:"totalTeachers"`
	TotalCourses            int `json:"totalCourses"`
	TotalAssignments        int `json:"totalAssignments"`
	OnTimeSubmissions       int `json:"onTimeSubmissions"`
	LateSubmissions         int `json:"lateSubmissions"`
	PendingSubmissions      int `json:"pendingSubmissions"`
	ResubmissionSubmissions int `json:"resubmissionSubmissions"`
	TotalSubmissions        int `json:"totalSubmissions"`
}

// CohortStats rolls progress up per cohort.
type CohortStats struct {
	Cohort           string       `json:"cohort"`
	StudentsCount    int          `json:"studentsCount"`
	CoursesCount     int          `json:"coursesCount"`
	TotalAssignments int          `json:"totalAssignments"`
	Totals           StatusTotals `json:"totals"`
	OnTimePercentage float64      `json:"onTimePercentage"`
	Rating           string       `json:"rating"`
}

// CourseWorkStats rolls submissions up per coursework.
type CourseWorkStats struct {
	CourseWork       CourseWork   `json:"courseWork"`
	DueAt            *string      `json:"dueAt"`
	Totals           StatusTotals `json:"totals"`
	OnTimePercentage float64      `json:"onTimePercentage"`
}

// SessionStatus reports whether an upstream session is available.
type SessionStatus struct {
	Authenticated bool    `json:"authenticated"`
	Expiry        *string `json:"expiry,omitempty"`
}

// CacheRefresh reports a cache invalidation and the warm-up job it queued.
type CacheRefresh struct {
	Namespace string `json:"namespace"`
	JobID     string `json:"jobId,omitempty"`
	Queued    bool   `json:"queued"`
}

// ResponseMeta accompanies every query response.
type ResponseMeta struct {
	CacheHit         bool  `json:"cache_hit"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}
