package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-activities/internal/dto"
	"github.com/noah-isme/gema-activities/internal/middleware"
	"github.com/noah-isme/gema-activities/internal/models"
	"github.com/noah-isme/gema-activities/internal/observability"
	"github.com/noah-isme/gema-activities/internal/repository"
)

var (
	// ErrActivityNotFound indicates the requested activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrRosterConflict is the kind shared by every membership state conflict.
	ErrRosterConflict = errors.New("roster conflict")
	// ErrAlreadySignedUp indicates the student is already on the roster.
	ErrAlreadySignedUp = fmt.Errorf("%w: student is already signed up", ErrRosterConflict)
	// ErrNotSignedUp indicates the student is not on the roster.
	ErrNotSignedUp = fmt.Errorf("%w: student is not signed up for this activity", ErrRosterConflict)
)

// ActivityService exposes the activity registry operations.
type ActivityService interface {
	List(ctx context.Context) (dto.ActivityListResponse, error)
	Signup(ctx context.Context, req dto.SignupRequest) (dto.MessageResponse, error)
	Unregister(ctx context.Context, req dto.UnregisterRequest) (dto.MessageResponse, error)
}

type activityService struct {
	repo        repository.ActivityRepository
	broadcaster RosterBroadcaster
	validator   *validator.Validate
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewActivityService constructs the activity service. A nil broadcaster disables roster events.
func NewActivityService(repo repository.ActivityRepository, broadcaster RosterBroadcaster, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:        repo,
		broadcaster: broadcaster,
		validator:   validate,
		logger:      logger.With().Str("component", "activity_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/gema-activities/internal/service/activity"),
		now:         time.Now,
	}
}

func (s *activityService) List(ctx context.Context) (dto.ActivityListResponse, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewActivityListResponse(activities), nil
}

func (s *activityService) Signup(ctx context.Context, req dto.SignupRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		observability.RosterOperations().WithLabelValues("signup", "invalid").Inc()
		return dto.MessageResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "activities.signup", trace.WithAttributes(
		attribute.String("activity.name", req.Activity),
	))
	defer span.End()

	activity, err := s.repo.AddParticipant(spanCtx, req.Activity, req.Email)
	if err != nil {
		err = s.translate(err)
		s.recordFailure(spanCtx, span, "signup", err)
		return dto.MessageResponse{}, err
	}

	s.recordSuccess(spanCtx, "signup", dto.RosterEventSignedUp, activity, req.Email)
	return dto.NewSignedUpMessage(req.Email, req.Activity), nil
}

func (s *activityService) Unregister(ctx context.Context, req dto.UnregisterRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		observability.RosterOperations().WithLabelValues("unregister", "invalid").Inc()
		return dto.MessageResponse{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "activities.unregister", trace.WithAttributes(
		attribute.String("activity.name", req.Activity),
	))
	defer span.End()

	activity, err := s.repo.RemoveParticipant(spanCtx, req.Activity, req.Email)
	if err != nil {
		err = s.translate(err)
		s.recordFailure(spanCtx, span, "unregister", err)
		return dto.MessageResponse{}, err
	}

	s.recordSuccess(spanCtx, "unregister", dto.RosterEventUnregistered, activity, req.Email)
	return dto.NewUnregisteredMessage(req.Email, req.Activity), nil
}

func (s *activityService) translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		return ErrActivityNotFound
	case errors.Is(err, repository.ErrParticipantExists):
		return ErrAlreadySignedUp
	case errors.Is(err, repository.ErrParticipantMissing):
		return ErrNotSignedUp
	default:
		return err
	}
}

func (s *activityService) loggerFor(ctx context.Context) *zerolog.Logger {
	logger := s.logger
	if correlation := middleware.CorrelationIDFromContext(ctx); correlation != "" {
		logger = s.logger.With().Str("correlation_id", correlation).Logger()
	}
	return &logger
}

func (s *activityService) recordFailure(ctx context.Context, span trace.Span, operation string, err error) {
	outcome := "error"
	switch {
	case errors.Is(err, ErrActivityNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrRosterConflict):
		outcome = "conflict"
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.loggerFor(ctx).Error().Err(err).Str("operation", operation).Msg("roster operation failed")
	}
	span.SetAttributes(attribute.String("roster.outcome", outcome))
	observability.RosterOperations().WithLabelValues(operation, outcome).Inc()
}

func (s *activityService) recordSuccess(ctx context.Context, operation, eventType string, activity models.Activity, email string) {
	observability.RosterOperations().WithLabelValues(operation, "success").Inc()
	observability.RosterParticipants().WithLabelValues(activity.Name).Set(float64(len(activity.Participants)))

	s.loggerFor(ctx).Info().
		Str("operation", operation).
		Str("activity", activity.Name).
		Int("participants", len(activity.Participants)).
		Msg("roster updated")

	if s.broadcaster == nil {
		return
	}

	s.broadcaster.Publish(ctx, dto.RosterEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		Activity:     activity.Name,
		Email:        email,
		Participants: len(activity.Participants),
		OccurredAt:   s.now().UTC(),
	})
}
