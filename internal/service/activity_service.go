package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/animeaux-api/internal/dto"
	"github.com/noah-isme/animeaux-api/internal/models"
	"github.com/noah-isme/animeaux-api/internal/observability"
	"github.com/noah-isme/animeaux-api/internal/repository"
)

const activityGenerationKey = "activity:log:generation"

var (
	// ErrActivityNotFound indicates no activity log matches the identifier.
	ErrActivityNotFound = errors.New("activity log not found")
	// ErrInvalidActivityField indicates a projection names an unknown column.
	ErrInvalidActivityField = errors.New("invalid activity field")
)

// ActivityRecorder records audit entries for mutations. Create never fails:
// errors are handed to the error reporter and dropped.
type ActivityRecorder interface {
	Create(ctx context.Context, params ActivityParams)
}

// ActivityService exposes methods to record and query activity logs.
type ActivityService interface {
	ActivityRecorder
	Get(ctx context.Context, id string, fields []string) (dto.ActivityResponse, error)
	List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
}

// ActivityPublisher broadcasts recorded activity. *nats.Conn satisfies it.
type ActivityPublisher interface {
	Publish(subject string, data []byte) error
}

// ActivityServiceOptions wires the optional collaborators of the activity service.
type ActivityServiceOptions struct {
	Reporter  observability.ErrorReporter
	Cache     *redis.Client
	CacheTTL  time.Duration
	Publisher ActivityPublisher
	Subject   string
}

// ActivityRecordedEvent is published after an activity log is persisted.
type ActivityRecordedEvent struct {
	ID         string    `json:"id"`
	ActorType  string    `json:"actor_type"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type activityService struct {
	repo      repository.ActivityLogRepository
	validator *validator.Validate
	reporter  observability.ErrorReporter
	cache     *redis.Client
	ttl       time.Duration
	publisher ActivityPublisher
	subject   string
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, validator *validator.Validate, opts ActivityServiceOptions, logger zerolog.Logger) ActivityService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = observability.NewLogReporter(logger, "activity_recorder", nil)
	}

	return &activityService{
		repo:      repo,
		validator: validator,
		reporter:  reporter,
		cache:     opts.Cache,
		ttl:       ttl,
		publisher: opts.Publisher,
		subject:   opts.Subject,
		logger:    logger.With().Str("component", "activity_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/animeaux-api/internal/service/activity"),
	}
}

func (s *activityService) Create(ctx context.Context, params ActivityParams) {
	ctx, span := s.tracer.Start(ctx, "activity.create", trace.WithAttributes(
		attribute.String("activity.action", params.action()),
		attribute.String("activity.resource", string(params.Resource)),
		attribute.String("activity.resource_id", params.ResourceID),
	))
	defer span.End()

	fail := func(err error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "activity not recorded")
		observability.ActivityRecords().WithLabelValues(params.action(), string(params.Resource), "error").Inc()
		s.reporter.CaptureException(ctx, err, map[string]interface{}{"params": params})
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			fail(fmt.Errorf("activity recorder panic: %v", recovered))
		}
	}()

	entry, err := buildActivityLog(params)
	if err == nil {
		err = s.repo.Create(ctx, &entry)
	}
	if err != nil {
		fail(err)
		return
	}

	observability.ActivityRecords().WithLabelValues(string(entry.Action), string(entry.Resource), "ok").Inc()

	s.invalidateCache(ctx)
	s.publish(entry)
}

func (s *activityService) Get(ctx context.Context, id string, fields []string) (dto.ActivityResponse, error) {
	columns, err := activityColumns(fields)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	entry, err := s.repo.FindByID(ctx, strings.TrimSpace(id), columns...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(entry), nil
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	start := time.Now()
	defer func() {
		observability.ActivityListLatency().Observe(time.Since(start).Seconds())
	}()

	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityListResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "activity.list")
	defer span.End()

	filter := repository.ActivityLogFilter{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		ActorIDs:   trimAll(req.ActorIDs),
		ResourceID: strings.TrimSpace(req.ResourceID),
		DateStart:  req.DateStart,
		DateEnd:    req.DateEnd,
	}
	for _, action := range req.Actions {
		filter.Actions = append(filter.Actions, models.ActivityAction(action))
	}
	for _, resource := range req.Resources {
		filter.Resources = append(filter.Resources, models.ActivityResource(resource))
	}

	cacheKey := s.cacheKey(ctx, filter)
	if cacheKey != "" {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.ActivityListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.ActivityListRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		}
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		observability.ActivityListRequests().WithLabelValues("error").Inc()
		return dto.ActivityListResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
	}

	response := dto.ActivityListResponse{
		Items:      items,
		Pagination: paginationMeta(filter.Page, req.PageSize, total),
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write activity list cache")
			}
		}
	}

	observability.ActivityListRequests().WithLabelValues("miss").Inc()

	return response, nil
}

// cacheKey scopes cached pages to the current write generation, so any new
// record makes every previously cached page unreachable.
func (s *activityService) cacheKey(ctx context.Context, filter repository.ActivityLogFilter) string {
	if s.cache == nil {
		return ""
	}

	generation, err := s.cache.Get(ctx, activityGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("failed to read activity cache generation")
		return ""
	}

	payload, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)

	return fmt.Sprintf("activity:log:v1:%d:%s", generation, hex.EncodeToString(sum[:]))
}

func (s *activityService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, activityGenerationKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to bump activity cache generation")
	}
}

func (s *activityService) publish(entry models.ActivityLog) {
	if s.publisher == nil || s.subject == "" {
		return
	}

	payload, err := json.Marshal(ActivityRecordedEvent{
		ID:         entry.ID,
		ActorType:  string(entry.ActorType),
		ActorID:    entry.ActorID,
		Action:     string(entry.Action),
		Resource:   string(entry.Resource),
		ResourceID: entry.ResourceID,
		CreatedAt:  entry.CreatedAt,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode activity event")
		return
	}

	if err := s.publisher.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish activity event")
	}
}

func activityColumns(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	allowed := make(map[string]struct{}, len(models.ActivityLogColumns))
	for _, column := range models.ActivityLogColumns {
		allowed[column] = struct{}{}
	}

	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" {
			continue
		}
		if _, ok := allowed[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidActivityField, field)
		}
		columns = append(columns, name)
	}
	return columns, nil
}
