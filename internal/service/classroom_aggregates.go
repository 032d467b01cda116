package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
)

// Teachers merges the teacher rosters of the filtered courses by identity,
// accumulating the courses each teacher teaches.
func (s *ClassroomService) Teachers(ctx context.Context, filter models.ClassroomFilter) ([]models.TeacherAggregate, bool, error) {
	courses, allHit, err := s.filteredCourses(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	index := make(map[string]int)
	result := make([]models.TeacherAggregate, 0)
	for _, course := range courses {
		teachers, hit, err := s.teacherRoster(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		for _, member := range teachers {
			id, ok := member.Identity()
			if !ok {
				s.logger.Debug("skipping teacher without identity", zap.String("course_id", course.ID))
				continue
			}
			pos, seen := index[id]
			if !seen {
				pos = len(result)
				index[id] = pos
				result = append(result, models.TeacherAggregate{
					ID:       id,
					Name:     member.Name,
					Email:    member.Email,
					PhotoURL: member.PhotoURL,
					Courses:  []string{},
				})
			}
			result[pos].Courses = appendUnique(result[pos].Courses, course.ID)
		}
	}
	return result, allHit, nil
}

// Students merges the student rosters of the filtered courses by identity.
// Each student keeps the cohort of the first course that listed them.
func (s *ClassroomService) Students(ctx context.Context, filter models.ClassroomFilter) ([]models.StudentAggregate, bool, error) {
	courses, allHit, err := s.filteredCourses(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	index := make(map[string]int)
	result := make([]models.StudentAggregate, 0)
	for _, course := range courses {
		students, hit, err := s.studentRoster(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		for _, member := range students {
			id, ok := member.Identity()
			if !ok {
				s.logger.Debug("skipping student without identity", zap.String("course_id", course.ID))
				continue
			}
			pos, seen := index[id]
			if !seen {
				pos = len(result)
				index[id] = pos
				result = append(result, models.StudentAggregate{
					ID:              id,
					Name:            member.Name,
					Email:           member.Email,
					PhotoURL:        member.PhotoURL,
					Cohort:          course.Cohort,
					EnrolledCourses: []string{},
				})
			}
			result[pos].EnrolledCourses = appendUnique(result[pos].EnrolledCourses, course.ID)
		}
	}
	return result, allHit, nil
}

// StudentProgress classifies every submission of the filtered courses and
// rolls the statuses up per student. The result holds every rostered student
// plus anyone who submitted, sorted by name with the configured collation.
func (s *ClassroomService) StudentProgress(ctx context.Context, filter models.ClassroomFilter) ([]models.StudentProgress, bool, error) {
	courses, allHit, err := s.filteredCourses(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	progress := newProgressIndex()
	for _, course := range courses {
		students, hit, err := s.studentRoster(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		for _, member := range students {
			id, ok := member.Identity()
			if !ok {
				s.logger.Debug("skipping student without identity", zap.String("course_id", course.ID))
				continue
			}
			progress.enroll(id, member.Name, member.Email, course)
		}

		hit, err = s.classifyCourse(ctx, course, now, func(sub models.Submission, status models.SubmissionStatus) {
			id := strings.TrimSpace(sub.UserID)
			if id == "" {
				return
			}
			entry := progress.enroll(id, "", "", course)
			entry.Totals.Add(status)
		})
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
	}

	result := make([]models.StudentProgress, 0, len(progress.order))
	for _, entry := range progress.order {
		entry.OnTimePercentage = OnTimePercentage(entry.Totals)
		result = append(result, *entry)
	}
	col := collate.New(s.locale, collate.IgnoreCase)
	sort.SliceStable(result, func(i, j int) bool {
		if cmp := col.CompareString(result[i].Name, result[j].Name); cmp != 0 {
			return cmp < 0
		}
		return result[i].ID < result[j].ID
	})
	return result, allHit, nil
}

// Summary counts unique teachers and students, courses, coursework and
// classified submissions across the filtered courses. Missing and pending
// submissions share the pending tally; resubmissions have their own. When
// status is set only submissions with that status are tallied.
func (s *ClassroomService) Summary(ctx context.Context, filter models.ClassroomFilter, status string) (*models.Summary, bool, error) {
	wanted, err := models.ParseSubmissionStatus(status)
	if err != nil {
		return nil, false, appErrors.Validation(err, "invalid status filter")
	}
	courses, allHit, err := s.filteredCourses(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	teacherIDs := make(map[string]struct{})
	studentIDs := make(map[string]struct{})
	summary := &models.Summary{TotalCourses: len(courses)}

	for _, course := range courses {
		teachers, students, hit, err := s.courseRosters(ctx, course.ID)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		collectIdentities(teacherIDs, teachers)
		collectIdentities(studentIDs, students)

		work, hit, err := s.courseWork(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		summary.TotalAssignments += len(work)

		hit, err = s.classifyCourseWork(ctx, course.ID, work, now, func(_ models.Submission, st models.SubmissionStatus) {
			if wanted != "" && st != wanted {
				return
			}
			summary.TotalSubmissions++
			switch st {
			case models.StatusSubmitted:
				summary.OnTimeSubmissions++
			case models.StatusSubmittedLate:
				summary.LateSubmissions++
			case models.StatusMissing, models.StatusPending:
				summary.PendingSubmissions++
			case models.StatusResubmission:
				summary.ResubmissionSubmissions++
			}
		})
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
	}
	summary.TotalTeachers = len(teacherIDs)
	summary.TotalStudents = len(studentIDs)
	return summary, allHit, nil
}

// CohortStats rolls the filtered courses up per derived cohort and rates each
// cohort by its on-time percentage.
func (s *ClassroomService) CohortStats(ctx context.Context, filter models.ClassroomFilter) ([]models.CohortStats, bool, error) {
	courses, allHit, err := s.filteredCourses(ctx, filter)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	type cohortAcc struct {
		stats    models.CohortStats
		students map[string]struct{}
	}
	index := make(map[string]*cohortAcc)
	order := make([]*cohortAcc, 0)

	for _, course := range courses {
		key := strings.ToLower(course.Cohort)
		acc, ok := index[key]
		if !ok {
			acc = &cohortAcc{stats: models.CohortStats{Cohort: course.Cohort}, students: map[string]struct{}{}}
			index[key] = acc
			order = append(order, acc)
		}
		acc.stats.CoursesCount++

		students, hit, err := s.studentRoster(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		collectIdentities(acc.students, students)

		work, hit, err := s.courseWork(ctx, course.ID, s.cfg.PageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		acc.stats.TotalAssignments += len(work)

		hit, err = s.classifyCourseWork(ctx, course.ID, work, now, func(sub models.Submission, st models.SubmissionStatus) {
			if id := strings.TrimSpace(sub.UserID); id != "" {
				acc.students[id] = struct{}{}
			}
			acc.stats.Totals.Add(st)
		})
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
	}

	result := make([]models.CohortStats, 0, len(order))
	for _, acc := range order {
		acc.stats.StudentsCount = len(acc.students)
		acc.stats.OnTimePercentage = OnTimePercentage(acc.stats.Totals)
		acc.stats.Rating = CohortRating(acc.stats.OnTimePercentage)
		result = append(result, acc.stats)
	}
	col := collate.New(s.locale, collate.IgnoreCase)
	sort.SliceStable(result, func(i, j int) bool {
		return col.CompareString(result[i].Cohort, result[j].Cohort) < 0
	})
	return result, allHit, nil
}

// CourseWorkStats tallies the submissions of each coursework of a course,
// ordered by due date with undated work last.
func (s *ClassroomService) CourseWorkStats(ctx context.Context, req RosterRequest) ([]models.CourseWorkStats, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid coursework query")
	}
	pageSize := s.pageSize(req.PageSize)
	work, allHit, err := s.courseWork(ctx, req.CourseID, pageSize)
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	type ranked struct {
		stats models.CourseWorkStats
		due   *time.Time
	}
	items := make([]ranked, 0, len(work))
	for _, cw := range work {
		subs, hit, err := s.submissions(ctx, req.CourseID, cw.ID, pageSize)
		if err != nil {
			return nil, false, err
		}
		allHit = allHit && hit
		item := ranked{stats: models.CourseWorkStats{CourseWork: cw}}
		if due, ok := cw.Due(); ok {
			item.due = &due
			formatted := due.Format(time.RFC3339)
			item.stats.DueAt = &formatted
		}
		for _, sub := range subs {
			item.stats.Totals.Add(ClassifySubmission(sub.State, sub.Late, item.due, now))
		}
		item.stats.OnTimePercentage = OnTimePercentage(item.stats.Totals)
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].due, items[j].due
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	result := make([]models.CourseWorkStats, 0, len(items))
	for _, item := range items {
		result = append(result, item.stats)
	}
	return result, allHit, nil
}

// classifyCourse loads the coursework of a course and classifies its submissions.
func (s *ClassroomService) classifyCourse(ctx context.Context, course models.Course, now time.Time, visit func(models.Submission, models.SubmissionStatus)) (bool, error) {
	work, hit, err := s.courseWork(ctx, course.ID, s.cfg.PageSize)
	if err != nil {
		return false, err
	}
	subHit, err := s.classifyCourseWork(ctx, course.ID, work, now, visit)
	if err != nil {
		return false, err
	}
	return hit && subHit, nil
}

// classifyCourseWork walks the submissions of each coursework in order and
// hands every classified submission to visit.
func (s *ClassroomService) classifyCourseWork(ctx context.Context, courseID string, work []models.CourseWork, now time.Time, visit func(models.Submission, models.SubmissionStatus)) (bool, error) {
	allHit := true
	for _, cw := range work {
		var due *time.Time
		if d, ok := cw.Due(); ok {
			due = &d
		}
		subs, hit, err := s.submissions(ctx, courseID, cw.ID, s.cfg.PageSize)
		if err != nil {
			return false, err
		}
		allHit = allHit && hit
		for _, sub := range subs {
			visit(sub, ClassifySubmission(sub.State, sub.Late, due, now))
		}
	}
	return allHit, nil
}

type progressIndex struct {
	byID  map[string]*models.StudentProgress
	order []*models.StudentProgress
}

func newProgressIndex() *progressIndex {
	return &progressIndex{byID: make(map[string]*models.StudentProgress)}
}

// enroll returns the entry of id, creating it on first sight. A student first
// seen through a submission is named by id until a roster supplies a name.
func (p *progressIndex) enroll(id, name, email string, course models.Course) *models.StudentProgress {
	entry, ok := p.byID[id]
	if !ok {
		entry = &models.StudentProgress{ID: id, Name: id, Cohort: course.Cohort, Courses: []string{}}
		p.byID[id] = entry
		p.order = append(p.order, entry)
	}
	if name != "" && entry.Name == id {
		entry.Name = name
	}
	if email != "" && entry.Email == "" {
		entry.Email = email
	}
	entry.Courses = appendUnique(entry.Courses, course.ID)
	return entry
}

func collectIdentities(set map[string]struct{}, members []models.RosterMember) {
	for _, m := range members {
		if id, ok := m.Identity(); ok {
			set[id] = struct{}{}
		}
	}
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
