package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/classroom-dashboard-api/pkg/errors"
	"github.com/noah-isme/classroom-dashboard-api/pkg/jobs"
)

// JobTypeCacheWarmup identifies warm-up jobs on the queue.
const JobTypeCacheWarmup = "cache_warmup"

type summaryComputer interface {
	Summary(ctx context.Context, filter models.ClassroomFilter, status string) (*models.Summary, bool, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) (string, error)
}

// WarmupService invalidates cached provider data and repopulates it in the
// background by computing the unfiltered summary, which reads every course,
// roster, coursework and submission listing.
type WarmupService struct {
	cache   *CacheService
	summary summaryComputer
	queue   jobEnqueuer
	logger  *zap.Logger
}

// NewWarmupService constructs the service. The queue is attached with SetQueue
// once it has been built around Handle.
func NewWarmupService(cache *CacheService, summary summaryComputer, logger *zap.Logger) *WarmupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarmupService{cache: cache, summary: summary, logger: logger}
}

// SetQueue attaches the queue warm-up jobs are sent to.
func (s *WarmupService) SetQueue(queue jobEnqueuer) {
	s.queue = queue
}

// Refresh clears a namespace, or everything when namespace is empty, and
// queues a warm-up job when a queue is attached. Refreshes issued while a
// warm-up is still waiting share that job.
func (s *WarmupService) Refresh(ctx context.Context, namespace string) (*models.CacheRefresh, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace != "" && !knownNamespace(namespace) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown cache namespace %q", namespace))
	}
	if err := s.cache.Clear(ctx, namespace); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear cache")
	}

	result := &models.CacheRefresh{Namespace: namespace}
	if s.queue == nil {
		return result, nil
	}
	id, err := s.queue.Enqueue(jobs.Job{Key: JobTypeCacheWarmup, Type: JobTypeCacheWarmup, Payload: namespace})
	if err != nil {
		s.logger.Warn("cache warm-up not queued", zap.Error(err))
		return result, nil
	}
	result.JobID = id
	result.Queued = true
	return result, nil
}

// Handle runs a warm-up job. A missing session is not retried.
func (s *WarmupService) Handle(ctx context.Context, job jobs.Job) error {
	if s.summary == nil {
		return nil
	}
	summary, _, err := s.summary.Summary(ctx, models.ClassroomFilter{}, "")
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotAuthenticated) {
			s.logger.Info("skipping cache warm-up without session", zap.String("job_id", job.ID))
			return nil
		}
		return err
	}
	s.logger.Info("cache warmed",
		zap.String("job_id", job.ID),
		zap.Int("courses", summary.TotalCourses),
		zap.Int("submissions", summary.TotalSubmissions),
	)
	return nil
}

func knownNamespace(namespace string) bool {
	for _, ns := range CacheNamespaces {
		if ns == namespace {
			return true
		}
	}
	return false
}
