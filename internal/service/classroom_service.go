package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

// Cache namespaces of provider data.
const (
	NamespaceCourses        = "courses"
	NamespaceTeachers       = "teachers"
	NamespaceStudents       = "students"
	NamespaceCourseWork     = "courseWork"
	NamespaceCourseWorkItem = "courseWorkItem"
	NamespaceSubmissions    = "submissions"
)

// CacheNamespaces lists every namespace the classroom service writes.
var CacheNamespaces = []string{
	NamespaceCourses,
	NamespaceTeachers,
	NamespaceStudents,
	NamespaceCourseWork,
	NamespaceCourseWorkItem,
	NamespaceSubmissions,
}

// ClassroomSource is the paged classroom provider.
type ClassroomSource interface {
	ListCourses(ctx context.Context, pageSize int, pageToken string) (models.Page[models.Course], error)
	ListTeachers(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.RosterMember], error)
	ListStudents(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.RosterMember], error)
	ListCourseWork(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.CourseWork], error)
	ListSubmissions(ctx context.Context, courseID, courseWorkID string, pageSize int, pageToken string) (models.Page[models.Submission], error)
	GetCourseWork(ctx context.Context, courseID, courseWorkID string) (*models.CourseWork, error)
}

// ClassroomServiceConfig tunes upstream access.
type ClassroomServiceConfig struct {
	PageSize        int
	CacheTTL        time.Duration
	CollationLocale string
}

// ClassroomServiceParams groups constructor dependencies.
type ClassroomServiceParams struct {
	Source    ClassroomSource
	Cache     *CacheService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    ClassroomServiceConfig
}

// ClassroomService answers course, roster and progress queries from the
// classroom provider, going through the cache for every provider listing.
type ClassroomService struct {
	source    ClassroomSource
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	locale    language.Tag
	cfg       ClassroomServiceConfig
}

// NewClassroomService constructs a ClassroomService with sane defaults.
func NewClassroomService(params ClassroomServiceParams) *ClassroomService {
	cfg := params.Config
	if cfg.PageSize <= 0 || cfg.PageSize > 1000 {
		cfg.PageSize = 100
	}
	locale, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		locale = language.Spanish
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ClassroomService{
		source:    params.Source,
		cache:     params.Cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		locale:    locale,
		cfg:       cfg,
	}
	if err := registerRequestValidators(svc.validator); err != nil {
		panic("register request validators: " + err.Error())
	}
	return svc
}

// registerRequestValidators adds the custom tags used by the request structs.
func registerRequestValidators(v *validator.Validate) error {
	return v.RegisterValidation("submission_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseSubmissionStatus(fl.Field().String())
		return err == nil
	})
}

// CourseListRequest describes the course listing query.
type CourseListRequest struct {
	PageSize int `validate:"omitempty,min=1,max=1000"`
	Limit    int `validate:"min=0"`
	Filter   models.ClassroomFilter
}

// CourseListResult carries the filtered courses.
type CourseListResult struct {
	Courses    []models.Course
	Pagination models.Pagination
}

// SubmissionListRequest describes the submissions listing of one coursework.
type SubmissionListRequest struct {
	CourseID     string `validate:"required"`
	CourseWorkID string `validate:"required"`
	PageSize     int    `validate:"omitempty,min=1,max=1000"`
	Status       string `validate:"omitempty,submission_status"`
}

// RosterRequest describes a per-course listing.
type RosterRequest struct {
	CourseID string `validate:"required"`
	PageSize int    `validate:"omitempty,min=1,max=1000"`
}

// Courses lists the courses matching the filter. PageSize is the provider
// page size and Limit caps the number of courses read from the provider.
func (s *ClassroomService) Courses(ctx context.Context, req CourseListRequest) (*CourseListResult, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid course query")
	}
	pageSize := s.pageSize(req.PageSize)
	courses, hit, err := s.listCourses(ctx, pageSize, req.Limit)
	if err != nil {
		return nil, false, err
	}
	filtered, filterHit, err := s.filterCourses(ctx, courses, req.Filter)
	if err != nil {
		return nil, false, err
	}
	return &CourseListResult{
		Courses:    filtered,
		Pagination: models.Pagination{PageSize: pageSize, Limit: req.Limit, TotalCount: len(filtered)},
	}, hit && filterHit, nil
}

// CourseStudents lists the student roster of a course.
func (s *ClassroomService) CourseStudents(ctx context.Context, req RosterRequest) ([]models.RosterMember, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid roster query")
	}
	return s.studentRoster(ctx, req.CourseID, s.pageSize(req.PageSize))
}

// CourseTeachers lists the teacher roster of a course.
func (s *ClassroomService) CourseTeachers(ctx context.Context, req RosterRequest) ([]models.RosterMember, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid roster query")
	}
	return s.teacherRoster(ctx, req.CourseID, s.pageSize(req.PageSize))
}

// CourseWork lists the coursework of a course.
func (s *ClassroomService) CourseWork(ctx context.Context, req RosterRequest) ([]models.CourseWork, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid coursework query")
	}
	return s.courseWork(ctx, req.CourseID, s.pageSize(req.PageSize))
}

// Submissions lists the submissions of a coursework. With a status filter the
// coursework due date is looked up, each submission is classified and only
// matching ones are kept; a failed due date lookup counts as no due date.
func (s *ClassroomService) Submissions(ctx context.Context, req SubmissionListRequest) ([]models.Submission, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid submission query")
	}
	status, _ := models.ParseSubmissionStatus(req.Status)

	submissions, hit, err := s.submissions(ctx, req.CourseID, req.CourseWorkID, s.pageSize(req.PageSize))
	if err != nil {
		return nil, false, err
	}
	if status == "" {
		return submissions, hit, nil
	}

	due, dueHit := s.courseWorkDue(ctx, req.CourseID, req.CourseWorkID)
	now := s.now()
	filtered := make([]models.Submission, 0, len(submissions))
	for _, sub := range submissions {
		sub.Status = ClassifySubmission(sub.State, sub.Late, due, now)
		if sub.Status == status {
			filtered = append(filtered, sub)
		}
	}
	return filtered, hit && dueHit, nil
}

// filteredCourses lists every course and applies the filter.
func (s *ClassroomService) filteredCourses(ctx context.Context, filter models.ClassroomFilter) ([]models.Course, bool, error) {
	courses, hit, err := s.listCourses(ctx, s.cfg.PageSize, 0)
	if err != nil {
		return nil, false, err
	}
	filtered, filterHit, err := s.filterCourses(ctx, courses, filter)
	if err != nil {
		return nil, false, err
	}
	return filtered, hit && filterHit, nil
}

// filterCourses keeps courses whose derived cohort equals filter.Cohort
// ignoring case and, when filter.TeacherID is set, whose teacher roster lists
// that id. Applying both intersects the two sets.
func (s *ClassroomService) filterCourses(ctx context.Context, courses []models.Course, filter models.ClassroomFilter) ([]models.Course, bool, error) {
	cohort := strings.TrimSpace(filter.Cohort)
	teacherID := strings.TrimSpace(filter.TeacherID)
	allHit := true
	result := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if course.Cohort == "" {
			course.Cohort = models.DeriveCohort(course.Section, course.Name)
		}
		if cohort != "" && !strings.EqualFold(course.Cohort, cohort) {
			continue
		}
		if teacherID != "" {
			teachers, hit, err := s.teacherRoster(ctx, course.ID, s.cfg.PageSize)
			if err != nil {
				return nil, false, err
			}
			allHit = allHit && hit
			course.TeacherIDs = memberIDs(teachers)
			if !rosterContains(teachers, teacherID) {
				continue
			}
		}
		result = append(result, course)
	}
	return result, allHit, nil
}

// courseRosters fetches the teacher and student rosters of a course concurrently.
func (s *ClassroomService) courseRosters(ctx context.Context, courseID string) (teachers, students []models.RosterMember, hit bool, err error) {
	var teacherHit, studentHit bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teachers, teacherHit, err = s.teacherRoster(gctx, courseID, s.cfg.PageSize)
		return err
	})
	g.Go(func() error {
		var err error
		students, studentHit, err = s.studentRoster(gctx, courseID, s.cfg.PageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, false, err
	}
	return teachers, students, teacherHit && studentHit, nil
}

func (s *ClassroomService) listCourses(ctx context.Context, pageSize, limit int) ([]models.Course, bool, error) {
	params := CacheParams{"pageSize": strconv.Itoa(pageSize), "limit": strconv.Itoa(limit)}
	return cachedList(ctx, s, NamespaceCourses, params, func(ctx context.Context) ([]models.Course, error) {
		return ListAll(ctx, func(ctx context.Context, token string) (models.Page[models.Course], error) {
			return s.source.ListCourses(ctx, pageSize, token)
		}, limit)
	})
}

func (s *ClassroomService) teacherRoster(ctx context.Context, courseID string, pageSize int) ([]models.RosterMember, bool, error) {
	return cachedList(ctx, s, NamespaceTeachers, CacheParams{"courseId": courseID}, func(ctx context.Context) ([]models.RosterMember, error) {
		return ListAll(ctx, func(ctx context.Context, token string) (models.Page[models.RosterMember], error) {
			return s.source.ListTeachers(ctx, courseID, pageSize, token)
		}, 0)
	})
}

func (s *ClassroomService) studentRoster(ctx context.Context, courseID string, pageSize int) ([]models.RosterMember, bool, error) {
	return cachedList(ctx, s, NamespaceStudents, CacheParams{"courseId": courseID}, func(ctx context.Context) ([]models.RosterMember, error) {
		return ListAll(ctx, func(ctx context.Context, token string) (models.Page[models.RosterMember], error) {
			return s.source.ListStudents(ctx, courseID, pageSize, token)
		}, 0)
	})
}

func (s *ClassroomService) courseWork(ctx context.Context, courseID string, pageSize int) ([]models.CourseWork, bool, error) {
	return cachedList(ctx, s, NamespaceCourseWork, CacheParams{"courseId": courseID}, func(ctx context.Context) ([]models.CourseWork, error) {
		return ListAll(ctx, func(ctx context.Context, token string) (models.Page[models.CourseWork], error) {
			return s.source.ListCourseWork(ctx, courseID, pageSize, token)
		}, 0)
	})
}

func (s *ClassroomService) submissions(ctx context.Context, courseID, courseWorkID string, pageSize int) ([]models.Submission, bool, error) {
	params := CacheParams{"courseId": courseID, "courseWorkId": courseWorkID}
	return cachedList(ctx, s, NamespaceSubmissions, params, func(ctx context.Context) ([]models.Submission, error) {
		return ListAll(ctx, func(ctx context.Context, token string) (models.Page[models.Submission], error) {
			return s.source.ListSubmissions(ctx, courseID, courseWorkID, pageSize, token)
		}, 0)
	})
}

// courseWorkDue looks up a single coursework's due instant. Failures are
// logged and reported as no due date.
func (s *ClassroomService) courseWorkDue(ctx context.Context, courseID, courseWorkID string) (*time.Time, bool) {
	params := CacheParams{"courseId": courseID, "courseWorkId": courseWorkID}
	var cw models.CourseWork
	hit, err := s.cache.Get(ctx, NamespaceCourseWorkItem, params, &cw)
	if err != nil || !hit {
		fetched, fetchErr := s.source.GetCourseWork(ctx, courseID, courseWorkID)
		if fetchErr != nil || fetched == nil {
			s.logger.Warn("coursework lookup failed, treating as no due date",
				zap.String("course_id", courseID),
				zap.String("course_work_id", courseWorkID),
				zap.Error(fetchErr),
			)
			return nil, false
		}
		cw = *fetched
		hit = false
		_ = s.cache.Set(ctx, NamespaceCourseWorkItem, params, cw, s.cfg.CacheTTL)
	}
	due, ok := cw.Due()
	if !ok {
		return nil, hit
	}
	return &due, hit
}

func (s *ClassroomService) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.PageSize
}

// cachedList serves a provider listing from the cache or loads and stores it.
// Cache backend errors fall through to the provider.
func cachedList[T any](ctx context.Context, s *ClassroomService, namespace string, params CacheParams, load func(context.Context) ([]T, error)) ([]T, bool, error) {
	var cached []T
	if hit, err := s.cache.Get(ctx, namespace, params, &cached); err == nil && hit {
		if cached == nil {
			cached = []T{}
		}
		return cached, true, nil
	}
	items, err := load(ctx)
	if err != nil {
		return nil, false, err
	}
	_ = s.cache.Set(ctx, namespace, params, items, s.cfg.CacheTTL)
	return items, false, nil
}

func rosterContains(members []models.RosterMember, id string) bool {
	for _, m := range members {
		if m.Matches(id) {
			return true
		}
	}
	return false
}

func memberIDs(members []models.RosterMember) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if id, ok := m.Identity(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
