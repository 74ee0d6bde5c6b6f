package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"contact-service/internal/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStatus      = errors.New("invalid status")
)

// RequiredFieldsMessage is returned when name, email or message is blank.
const RequiredFieldsMessage = "Name, email, and message are required"

// Publisher hands stored submissions to the notification transport.
type Publisher interface {
	Publish(ctx context.Context, event SubmissionEvent) error
	Close() error
}

// EventHandler consumes published submissions on the notifier side.
type EventHandler interface {
	Handle(ctx context.Context, event SubmissionEvent) error
}

// NopPublisher drops every event; used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SubmissionEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Submission, error)
	Get(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]Submission, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Submission, error)
}

type service struct {
	repo      Repository
	publisher Publisher
	validate  *validator.Validate
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	newID     func() string
}

type Option func(*service)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDGenerator overrides the UUID generator, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *service) { s.newID = newID }
}

func NewService(repo Repository, publisher Publisher, logger *slog.Logger, m *metrics.Metrics, opts ...Option) Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	s := &service{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
		metrics:   m,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StoreError reports that the repository could not persist a submission.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return "failed to store submission: " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	req = req.Normalize()
	if err := s.validate.Struct(&req); err != nil {
		s.metrics.RecordSubmissionRejected(ctx, "validation")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phone := req.Phone
	if phone == "" {
		phone = PhoneNotProvided
	}

	submission := &Submission{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    StatusNew,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.ErrorContext(ctx, "failed to store submission", "error", err)
		s.metrics.RecordSubmissionRejected(ctx, "storage")
		return nil, &StoreError{Err: err}
	}

	s.logger.InfoContext(ctx, "submission stored", "submission_id", submission.ID, "email", submission.Email)
	s.metrics.RecordSubmissionReceived(ctx)

	// The submission is already stored; a lost notification must not fail it.
	if err := s.publisher.Publish(ctx, NewSubmissionEvent(submission)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish submission event", "submission_id", submission.ID, "error", err)
		s.metrics.RecordEventPublished(ctx, false)
	} else {
		s.metrics.RecordEventPublished(ctx, true)
	}

	return submission, nil
}

func (s *service) Get(ctx context.Context, id string) (*Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Submission, error) {
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Submission, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSubmissionNotFound
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "submission status updated", "submission_id", id, "status", status)
	return s.repo.GetByID(ctx, id)
}

func validStatus(status string) bool {
	switch status {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}
