package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	classroom "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
	"github.com/noah-isme/classroom-dashboard-api/pkg/middleware/requestid"
)

// Resource labels of classroom provider requests.
const (
	ResourceCourses     = "courses"
	ResourceTeachers    = "teachers"
	ResourceStudents    = "students"
	ResourceCourseWork  = "courseWork"
	ResourceSubmissions = "submissions"
)

// TokenSourceProvider yields the token source of the active upstream session.
type TokenSourceProvider interface {
	TokenSource() (oauth2.TokenSource, error)
}

// FetchObserver records upstream request timings.
type FetchObserver interface {
	ObserveUpstreamFetch(resource, outcome string, duration time.Duration)
}

// ClassroomRepositoryParams configures the classroom source.
type ClassroomRepositoryParams struct {
	Sessions TokenSourceProvider
	Endpoint string
	Timeout  time.Duration
	Metrics  FetchObserver
	Logger   *zap.Logger
	// ClientOptions are appended after the session token source.
	ClientOptions []option.ClientOption
}

// ClassroomRepository reads courses, rosters, coursework and submissions from
// the Google Classroom API one page at a time.
type ClassroomRepository struct {
	sessions TokenSourceProvider
	endpoint string
	timeout  time.Duration
	metrics  FetchObserver
	logger   *zap.Logger
	options  []option.ClientOption
}

// NewClassroomRepository constructs the repository.
func NewClassroomRepository(params ClassroomRepositoryParams) *ClassroomRepository {
	if params.Timeout <= 0 {
		params.Timeout = 15 * time.Second
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &ClassroomRepository{
		sessions: params.Sessions,
		endpoint: params.Endpoint,
		timeout:  params.Timeout,
		metrics:  params.Metrics,
		logger:   params.Logger,
		options:  params.ClientOptions,
	}
}

// ListCourses returns one page of the courses visible to the session.
func (r *ClassroomRepository) ListCourses(ctx context.Context, pageSize int, pageToken string) (models.Page[models.Course], error) {
	var page models.Page[models.Course]
	err := r.fetch(ctx, ResourceCourses, func(ctx context.Context, svc *classroom.Service) error {
		call := svc.Courses.List().PageToken(pageToken).Context(ctx)
		if pageSize > 0 {
			call = call.PageSize(int64(pageSize))
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		page.NextPageToken = resp.NextPageToken
		page.Items = make([]models.Course, 0, len(resp.Courses))
		for _, c := range resp.Courses {
			if c != nil {
				page.Items = append(page.Items, toCourse(c))
			}
		}
		return nil
	})
	return page, err
}

// ListTeachers returns one page of a course's teacher roster.
func (r *ClassroomRepository) ListTeachers(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.RosterMember], error) {
	var page models.Page[models.RosterMember]
	err := r.fetch(ctx, ResourceTeachers, func(ctx context.Context, svc *classroom.Service) error {
		call := svc.Courses.Teachers.List(courseID).PageToken(pageToken).Context(ctx)
		if pageSize > 0 {
			call = call.PageSize(int64(pageSize))
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		page.NextPageToken = resp.NextPageToken
		page.Items = make([]models.RosterMember, 0, len(resp.Teachers))
		for _, t := range resp.Teachers {
			if t != nil {
				page.Items = append(page.Items, toRosterMember(t.CourseId, t.UserId, t.Profile))
			}
		}
		return nil
	})
	return page, err
}

// ListStudents returns one page of a course's student roster.
func (r *ClassroomRepository) ListStudents(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.RosterMember], error) {
	var page models.Page[models.RosterMember]
	err := r.fetch(ctx, ResourceStudents, func(ctx context.Context, svc *classroom.Service) error {
		call := svc.Courses.Students.List(courseID).PageToken(pageToken).Context(ctx)
		if pageSize > 0 {
			call = call.PageSize(int64(pageSize))
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		page.NextPageToken = resp.NextPageToken
		page.Items = make([]models.RosterMember, 0, len(resp.Students))
		for _, s := range resp.Students {
			if s != nil {
				page.Items = append(page.Items, toRosterMember(s.CourseId, s.UserId, s.Profile))
			}
		}
		return nil
	})
	return page, err
}

// ListCourseWork returns one page of a course's coursework.
func (r *ClassroomRepository) ListCourseWork(ctx context.Context, courseID string, pageSize int, pageToken string) (models.Page[models.CourseWork], error) {
	var page models.Page[models.CourseWork]
	err := r.fetch(ctx, ResourceCourseWork, func(ctx context.Context, svc *classroom.Service) error {
		call := svc.Courses.CourseWork.List(courseID).PageToken(pageToken).Context(ctx)
		if pageSize > 0 {
			call = call.PageSize(int64(pageSize))
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		page.NextPageToken = resp.NextPageToken
		page.Items = make([]models.CourseWork, 0, len(resp.CourseWork))
		for _, cw := range resp.CourseWork {
			if cw != nil {
				page.Items = append(page.Items, toCourseWork(cw))
			}
		}
		return nil
	})
	return page, err
}

// ListSubmissions returns one page of the submissions of a coursework.
func (r *ClassroomRepository) ListSubmissions(ctx context.Context, courseID, courseWorkID string, pageSize int, pageToken string) (models.Page[models.Submission], error) {
	var page models.Page[models.Submission]
	err := r.fetch(ctx, ResourceSubmissions, func(ctx context.Context, svc *classroom.Service) error {
		call := svc.Courses.CourseWork.StudentSubmissions.List(courseID, courseWorkID).PageToken(pageToken).Context(ctx)
		if pageSize > 0 {
			call = call.PageSize(int64(pageSize))
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		page.NextPageToken = resp.NextPageToken
		page.Items = make([]models.Submission, 0, len(resp.StudentSubmissions))
		for _, s := range resp.StudentSubmissions {
			if s == nil {
				continue
			}
			page.Items = append(page.Items, models.Submission{
				ID:           s.Id,
				CourseID:     s.CourseId,
				CourseWorkID: s.CourseWorkId,
				UserID:       s.UserId,
				State:        s.State,
				Late:         s.Late,
			})
		}
		return nil
	})
	return page, err
}

// GetCourseWork fetches a single coursework.
func (r *ClassroomRepository) GetCourseWork(ctx context.Context, courseID, courseWorkID string) (*models.CourseWork, error) {
	var result *models.CourseWork
	err := r.fetch(ctx, ResourceCourseWork, func(ctx context.Context, svc *classroom.Service) error {
		cw, err := svc.Courses.CourseWork.Get(courseID, courseWorkID).Context(ctx).Do()
		if err != nil {
			return err
		}
		mapped := toCourseWork(cw)
		result = &mapped
		return nil
	})
	return result, err
}

func (r *ClassroomRepository) fetch(ctx context.Context, resource string, call func(context.Context, *classroom.Service) error) error {
	svc, err := r.client(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err = call(ctx, svc)
	outcome, mapped := mapFetchError(resource, err)
	if r.metrics != nil {
		r.metrics.ObserveUpstreamFetch(resource, outcome, time.Since(start))
	}
	if mapped != nil {
		r.logger.Warn("classroom fetch failed",
			zap.String("resource", resource),
			zap.String("outcome", outcome),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
	}
	return mapped
}

func (r *ClassroomRepository) client(ctx context.Context) (*classroom.Service, error) {
	if r.sessions == nil {
		return nil, appErrors.ErrNotAuthenticated
	}
	ts, err := r.sessions.TokenSource()
	if err != nil {
		return nil, err
	}
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if r.endpoint != "" {
		opts = append(opts, option.WithEndpoint(r.endpoint))
	}
	opts = append(opts, r.options...)
	svc, err := classroom.NewService(ctx, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamFetch.Code, appErrors.ErrUpstreamFetch.Status, "failed to build classroom client")
	}
	return svc, nil
}

func mapFetchError(resource string, err error) (string, error) {
	if err == nil {
		return models.FetchOutcomeOK, nil
	}
	if appErrors.Is(err, appErrors.ErrNotAuthenticated) {
		return models.FetchOutcomeAuth, err
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized:
			return models.FetchOutcomeAuth, appErrors.Wrap(err, appErrors.ErrNotAuthenticated.Code, appErrors.ErrNotAuthenticated.Status, "classroom provider rejected the session")
		case http.StatusNotFound:
			return models.FetchOutcomeError, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, fmt.Sprintf("%s not found", resource))
		}
		return models.FetchOutcomeError, appErrors.Wrap(err, appErrors.ErrUpstreamFetch.Code, appErrors.ErrUpstreamFetch.Status,
			fmt.Sprintf("fetch %s failed with status %d", resource, apiErr.Code))
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return models.FetchOutcomeAuth, appErrors.Wrap(err, appErrors.ErrNotAuthenticated.Code, appErrors.ErrNotAuthenticated.Status, "classroom session could not be refreshed")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.FetchOutcomeTimeout, appErrors.Wrap(err, appErrors.ErrUpstreamFetch.Code, appErrors.ErrUpstreamFetch.Status,
			fmt.Sprintf("fetch %s timed out", resource))
	}

	return models.FetchOutcomeError, appErrors.Wrap(err, appErrors.ErrUpstreamFetch.Code, appErrors.ErrUpstreamFetch.Status,
		fmt.Sprintf("fetch %s failed", resource))
}

func toCourse(c *classroom.Course) models.Course {
	return models.Course{
		ID:      c.Id,
		Name:    c.Name,
		Section: c.Section,
		OwnerID: c.OwnerId,
		State:   c.CourseState,
		Cohort:  models.DeriveCohort(c.Section, c.Name),
	}
}

func toRosterMember(courseID, userID string, profile *classroom.UserProfile) models.RosterMember {
	member := models.RosterMember{CourseID: courseID, UserID: userID}
	if profile == nil {
		return member
	}
	member.ProfileID = profile.Id
	member.Email = profile.EmailAddress
	member.PhotoURL = profile.PhotoUrl
	if profile.Name != nil {
		member.Name = profile.Name.FullName
	}
	return member
}

func toCourseWork(cw *classroom.CourseWork) models.CourseWork {
	result := models.CourseWork{
		ID:           cw.Id,
		CourseID:     cw.CourseId,
		Title:        cw.Title,
		State:        cw.State,
		WorkType:     cw.WorkType,
		MaxPoints:    cw.MaxPoints,
		CreationTime: cw.CreationTime,
		UpdateTime:   cw.UpdateTime,
	}
	if cw.DueDate != nil {
		result.DueDate = &models.DueDate{
			Year:  int(cw.DueDate.Year),
			Month: int(cw.DueDate.Month),
			Day:   int(cw.DueDate.Day),
		}
	}
	if cw.DueTime != nil {
		result.DueTime = &models.TimeOfDay{
			Hours:   int(cw.DueTime.Hours),
			Minutes: int(cw.DueTime.Minutes),
			Seconds: int(cw.DueTime.Seconds),
		}
	}
	return result
}
