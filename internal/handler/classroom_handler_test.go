package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-dashboard-api/internal/middleware"
	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	"github.com/noah-isme/classroom-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Meta  map[string]interface{} `json:"meta"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type fakeClassroomSrv struct {
	calls          int
	hit            bool
	err            error
	lastFilter     models.ClassroomFilter
	lastStatus     string
	lastCourses    service.CourseListRequest
	lastRoster     service.RosterRequest
	lastSubmission service.SubmissionListRequest
}

func (f *fakeClassroomSrv) Courses(_ context.Context, req service.CourseListRequest) (*service.CourseListResult, bool, error) {
	f.calls++
	f.lastCourses = req
	if f.err != nil {
		return nil, false, f.err
	}
	return &service.CourseListResult{
		Courses:    []models.Course{{ID: "math", Name: "Math", Cohort: "2025-A"}},
		Pagination: models.Pagination{PageSize: req.PageSize, TotalCount: 1},
	}, f.hit, nil
}

func (f *fakeClassroomSrv) Teachers(_ context.Context, filter models.ClassroomFilter) ([]models.TeacherAggregate, bool, error) {
	f.calls++
	f.lastFilter = filter
	return []models.TeacherAggregate{{ID: "t1", Courses: []string{"math"}}}, f.hit, f.err
}

func (f *fakeClassroomSrv) Students(_ context.Context, filter models.ClassroomFilter) ([]models.StudentAggregate, bool, error) {
	f.calls++
	f.lastFilter = filter
	return []models.StudentAggregate{{ID: "s1"}, {ID: "s2"}}, f.hit, f.err
}

func (f *fakeClassroomSrv) StudentProgress(_ context.Context, filter models.ClassroomFilter) ([]models.StudentProgress, bool, error) {
	f.calls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, false, f.err
	}
	return []models.StudentProgress{{ID: "s1", Name: "Ana"}}, f.hit, nil
}

func (f *fakeClassroomSrv) Summary(_ context.Context, filter models.ClassroomFilter, status string) (*models.Summary, bool, error) {
	f.calls++
	f.lastFilter = filter
	f.lastStatus = status
	if f.err != nil {
		return nil, false, f.err
	}
	return &models.Summary{TotalCourses: 1, OnTimeSubmissions: 2}, f.hit, nil
}

func (f *fakeClassroomSrv) CohortStats(_ context.Context, filter models.ClassroomFilter) ([]models.CohortStats, bool, error) {
	f.calls++
	f.lastFilter = filter
	return []models.CohortStats{{Cohort: "2025-A"}}, f.hit, f.err
}

func (f *fakeClassroomSrv) CourseStudents(_ context.Context, req service.RosterRequest) ([]models.RosterMember, bool, error) {
	f.calls++
	f.lastRoster = req
	return []models.RosterMember{{UserID: "s1"}}, f.hit, f.err
}

func (f *fakeClassroomSrv) CourseTeachers(_ context.Context, req service.RosterRequest) ([]models.RosterMember, bool, error) {
	f.calls++
	f.lastRoster = req
	return []models.RosterMember{{UserID: "t1"}}, f.hit, f.err
}

func (f *fakeClassroomSrv) CourseWork(_ context.Context, req service.RosterRequest) ([]models.CourseWork, bool, error) {
	f.calls++
	f.lastRoster = req
	return []models.CourseWork{{ID: "w1"}}, f.hit, f.err
}

func (f *fakeClassroomSrv) CourseWorkStats(_ context.Context, req service.RosterRequest) ([]models.CourseWorkStats, bool, error) {
	f.calls++
	f.lastRoster = req
	return []models.CourseWorkStats{}, f.hit, f.err
}

func (f *fakeClassroomSrv) Submissions(_ context.Context, req service.SubmissionListRequest) ([]models.Submission, bool, error) {
	f.calls++
	f.lastSubmission = req
	return []models.Submission{{UserID: "s1", Status: models.StatusMissing}}, f.hit, f.err
}

func newClassroomRouter(srv classroomService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClassroomHandler(srv)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	r.GET("/courses", h.Courses)
	r.GET("/teachers", h.Teachers)
	r.GET("/students", h.Students)
	r.GET("/students/progress", h.StudentProgress)
	r.GET("/summary", h.Summary)
	r.GET("/cohorts/stats", h.CohortStats)
	r.GET("/courses/:courseId/students", h.CourseStudents)
	r.GET("/courses/:courseId/teachers", h.CourseTeachers)
	r.GET("/courses/:courseId/courseWork", h.CourseWork)
	r.GET("/courses/:courseId/courseWork/stats", h.CourseWorkStats)
	r.GET("/courses/:courseId/courseWork/:courseWorkId/submissions", h.Submissions)
	return r
}

func serve(t *testing.T, r *gin.Engine, target string) (*httptest.ResponseRecorder, responseEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestClassroomHandlerCoursesPassesQuery(t *testing.T) {
	srv := &fakeClassroomSrv{hit: true}
	rec, envelope := serve(t, newClassroomRouter(srv), "/courses?pageSize=20&limit=5&cohort=2025-A&teacherId=t1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.CourseListRequest{
		PageSize: 20,
		Limit:    5,
		Filter:   models.ClassroomFilter{Cohort: "2025-A", TeacherID: "t1"},
	}, srv.lastCourses)
	assert.Equal(t, float64(1), envelope.Data["count"])
	assert.Len(t, envelope.Data["courses"], 1)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestClassroomHandlerRejectsMalformedInputBeforeService(t *testing.T) {
	srv := &fakeClassroomSrv{}
	r := newClassroomRouter(srv)

	for _, target := range []string{
		"/courses?pageSize=abc",
		"/courses?limit=1.5",
		"/summary?status=done",
		"/courses/math/courseWork/w1/submissions?status=unknown",
		"/courses/math/students?pageSize=x",
		"/courses?pageSize=0",
		"/courses?pageSize=-3",
		"/courses/math/teachers?pageSize=0",
		"/courses/math/courseWork/w1/submissions?pageSize=0",
	} {
		rec, envelope := serve(t, r, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.NotNil(t, envelope.Error, target)
		assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code, target)
	}
	assert.Zero(t, srv.calls)
}

func TestClassroomHandlerAbsentPageSizeUsesDefault(t *testing.T) {
	srv := &fakeClassroomSrv{}
	r := newClassroomRouter(srv)

	rec, _ := serve(t, r, "/courses")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, srv.lastCourses.PageSize)

	rec, _ = serve(t, r, "/courses/math/students")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, srv.lastRoster.PageSize)
}

func TestClassroomHandlerNormalisesStatus(t *testing.T) {
	srv := &fakeClassroomSrv{}
	r := newClassroomRouter(srv)

	rec, envelope := serve(t, r, "/summary?status=Entregado&cohort=2025-A")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "submitted", srv.lastStatus)
	assert.Equal(t, "2025-A", srv.lastFilter.Cohort)
	assert.Equal(t, float64(2), envelope.Data["onTimeSubmissions"])

	rec, envelope = serve(t, r, "/courses/math/courseWork/w1/submissions?status=faltante&pageSize=50")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.SubmissionListRequest{CourseID: "math", CourseWorkID: "w1", PageSize: 50, Status: "missing"}, srv.lastSubmission)
	assert.Equal(t, float64(1), envelope.Data["count"])
}

func TestClassroomHandlerAggregates(t *testing.T) {
	srv := &fakeClassroomSrv{}
	r := newClassroomRouter(srv)

	cases := map[string]string{
		"/teachers?teacherId=t1":         "teachers",
		"/students":                      "students",
		"/students/progress":             "students",
		"/cohorts/stats":                 "cohorts",
		"/courses/math/students":         "students",
		"/courses/math/teachers":         "teachers",
		"/courses/math/courseWork":       "courseWork",
		"/courses/math/courseWork/stats": "courseWork",
	}
	for target, key := range cases {
		rec, envelope := serve(t, r, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, envelope.Data, key, target)
		assert.Contains(t, envelope.Data, "count", target)
		assert.Equal(t, false, envelope.Meta["cache_hit"], target)
	}
	assert.Equal(t, "math", srv.lastRoster.CourseID)
}

func TestClassroomHandlerMapsErrors(t *testing.T) {
	r := newClassroomRouter(&fakeClassroomSrv{err: appErrors.ErrNotAuthenticated})
	rec, envelope := serve(t, r, "/students/progress")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NOT_AUTHENTICATED", envelope.Error.Code)

	r = newClassroomRouter(&fakeClassroomSrv{err: appErrors.Clone(appErrors.ErrUpstreamFetch, "fetch courses timed out")})
	rec, envelope = serve(t, r, "/summary")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_FETCH_FAILED", envelope.Error.Code)
}
