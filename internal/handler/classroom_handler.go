package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-dashboard-api/internal/middleware"
	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	"github.com/noah-isme/classroom-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
	"github.com/noah-isme/classroom-dashboard-api/pkg/response"
)

type classroomService interface {
	Courses(ctx context.Context, req service.CourseListRequest) (*service.CourseListResult, bool, error)
	Teachers(ctx context.Context, filter models.ClassroomFilter) ([]models.TeacherAggregate, bool, error)
	Students(ctx context.Context, filter models.ClassroomFilter) ([]models.StudentAggregate, bool, error)
	StudentProgress(ctx context.Context, filter models.ClassroomFilter) ([]models.StudentProgress, bool, error)
	Summary(ctx context.Context, filter models.ClassroomFilter, status string) (*models.Summary, bool, error)
	CohortStats(ctx context.Context, filter models.ClassroomFilter) ([]models.CohortStats, bool, error)
	CourseStudents(ctx context.Context, req service.RosterRequest) ([]models.RosterMember, bool, error)
	CourseTeachers(ctx context.Context, req service.RosterRequest) ([]models.RosterMember, bool, error)
	CourseWork(ctx context.Context, req service.RosterRequest) ([]models.CourseWork, bool, error)
	CourseWorkStats(ctx context.Context, req service.RosterRequest) ([]models.CourseWorkStats, bool, error)
	Submissions(ctx context.Context, req service.SubmissionListRequest) ([]models.Submission, bool, error)
}

// ClassroomHandler serves course, roster and progress queries.
type ClassroomHandler struct {
	service classroomService
}

// NewClassroomHandler constructs the handler.
func NewClassroomHandler(service classroomService) *ClassroomHandler {
	return &ClassroomHandler{service: service}
}

// Courses godoc
// @Summary List courses
// @Tags Classroom
// @Produce json
// @Param pageSize query int false "Provider page size (1-1000)"
// @Param limit query int false "Maximum number of courses read"
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/classroom/courses [get]
func (h *ClassroomHandler) Courses(c *gin.Context) {
	pageSize, err := pageSizeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	result, hit, err := h.service.Courses(c.Request.Context(), service.CourseListRequest{
		PageSize: pageSize,
		Limit:    limit,
		Filter:   filterFromQuery(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"courses": result.Courses, "count": len(result.Courses)}, &result.Pagination)
}

// Teachers godoc
// @Summary Teachers across the filtered courses
// @Tags Classroom
// @Produce json
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/teachers [get]
func (h *ClassroomHandler) Teachers(c *gin.Context) {
	start := time.Now()
	teachers, hit, err := h.service.Teachers(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"teachers": teachers, "count": len(teachers)}, nil)
}

// Students godoc
// @Summary Students across the filtered courses
// @Tags Classroom
// @Produce json
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/students [get]
func (h *ClassroomHandler) Students(c *gin.Context) {
	start := time.Now()
	students, hit, err := h.service.Students(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"students": students, "count": len(students)}, nil)
}

// StudentProgress godoc
// @Summary Per-student submission status rollup
// @Tags Classroom
// @Produce json
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/students/progress [get]
func (h *ClassroomHandler) StudentProgress(c *gin.Context) {
	start := time.Now()
	progress, hit, err := h.service.StudentProgress(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"students": progress, "count": len(progress)}, nil)
}

// Summary godoc
// @Summary Dashboard headline counts
// @Tags Classroom
// @Produce json
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Param status query string false "Only tally submissions with this status"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/summary [get]
func (h *ClassroomHandler) Summary(c *gin.Context) {
	status, err := statusQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, hit, err := h.service.Summary(c.Request.Context(), filterFromQuery(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, summary, nil)
}

// CohortStats godoc
// @Summary Per-cohort submission rollup
// @Tags Classroom
// @Produce json
// @Param cohort query string false "Cohort label"
// @Param teacherId query string false "Teacher user or profile ID"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/cohorts/stats [get]
func (h *ClassroomHandler) CohortStats(c *gin.Context) {
	start := time.Now()
	stats, hit, err := h.service.CohortStats(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"cohorts": stats, "count": len(stats)}, nil)
}

// CourseStudents godoc
// @Summary Student roster of a course
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param pageSize query int false "Provider page size (1-1000)"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/courses/{courseId}/students [get]
func (h *ClassroomHandler) CourseStudents(c *gin.Context) {
	req, ok := rosterRequest(c)
	if !ok {
		return
	}
	start := time.Now()
	students, hit, err := h.service.CourseStudents(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"students": students, "count": len(students)}, nil)
}

// CourseTeachers godoc
// @Summary Teacher roster of a course
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param pageSize query int false "Provider page size (1-1000)"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/courses/{courseId}/teachers [get]
func (h *ClassroomHandler) CourseTeachers(c *gin.Context) {
	req, ok := rosterRequest(c)
	if !ok {
		return
	}
	start := time.Now()
	teachers, hit, err := h.service.CourseTeachers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"teachers": teachers, "count": len(teachers)}, nil)
}

// CourseWork godoc
// @Summary Coursework of a course
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param pageSize query int false "Provider page size (1-1000)"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/courses/{courseId}/courseWork [get]
func (h *ClassroomHandler) CourseWork(c *gin.Context) {
	req, ok := rosterRequest(c)
	if !ok {
		return
	}
	start := time.Now()
	work, hit, err := h.service.CourseWork(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"courseWork": work, "count": len(work)}, nil)
}

// CourseWorkStats godoc
// @Summary Submission status tallies per coursework
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/courses/{courseId}/courseWork/stats [get]
func (h *ClassroomHandler) CourseWorkStats(c *gin.Context) {
	req, ok := rosterRequest(c)
	if !ok {
		return
	}
	start := time.Now()
	stats, hit, err := h.service.CourseWorkStats(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"courseWork": stats, "count": len(stats)}, nil)
}

// Submissions godoc
// @Summary Submissions of a coursework
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param courseWorkId path string true "Coursework ID"
// @Param pageSize query int false "Provider page size (1-1000)"
// @Param status query string false "submitted, submitted-late, missing, pending or resubmission"
// @Success 200 {object} response.Envelope
// @Router /api/classroom/courses/{courseId}/courseWork/{courseWorkId}/submissions [get]
func (h *ClassroomHandler) Submissions(c *gin.Context) {
	pageSize, err := pageSizeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := statusQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	submissions, hit, err := h.service.Submissions(c.Request.Context(), service.SubmissionListRequest{
		CourseID:     strings.TrimSpace(c.Param("courseId")),
		CourseWorkID: strings.TrimSpace(c.Param("courseWorkId")),
		PageSize:     pageSize,
		Status:       status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, hit, gin.H{"submissions": submissions, "count": len(submissions)}, nil)
}

func respond(c *gin.Context, start time.Time, cacheHit bool, data interface{}, pagination *models.Pagination) {
	middleware.RecordCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, data, pagination, middleware.ResponseMeta(c, start))
}

func filterFromQuery(c *gin.Context) models.ClassroomFilter {
	return models.ClassroomFilter{
		Cohort:    strings.TrimSpace(c.Query("cohort")),
		TeacherID: strings.TrimSpace(c.Query("teacherId")),
	}
}

func rosterRequest(c *gin.Context) (service.RosterRequest, bool) {
	pageSize, err := pageSizeQuery(c)
	if err != nil {
		response.Error(c, err)
		return service.RosterRequest{}, false
	}
	return service.RosterRequest{CourseID: strings.TrimSpace(c.Param("courseId")), PageSize: pageSize}, true
}

// intQuery parses an optional integer query parameter. Absent means zero.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be an integer")
	}
	return value, nil
}

// pageSizeQuery parses the provider page size. Absent means the configured
// default; a present value must be at least 1.
func pageSizeQuery(c *gin.Context) (int, error) {
	_, present := c.GetQuery("pageSize")
	value, err := intQuery(c, "pageSize")
	if err != nil {
		return 0, err
	}
	if present && value < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "pageSize must be between 1 and 1000")
	}
	return value, nil
}

// statusQuery normalises the status filter to its canonical label.
func statusQuery(c *gin.Context) (string, error) {
	status, err := models.ParseSubmissionStatus(c.Query("status"))
	if err != nil {
		return "", appErrors.Validation(err, "status must be one of submitted, submitted-late, missing, pending, resubmission")
	}
	return string(status), nil
}
