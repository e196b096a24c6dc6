package flights

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, criteria repository.FlightCriteria) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (domain.Flight, error)
	Schedule(ctx context.Context, flight domain.Flight) (domain.Flight, error)
	Reschedule(ctx context.Context, flight domain.Flight) error
	ChangeStatus(ctx context.Context, id int64, status domain.FlightStatus) (domain.FlightStatusEvent, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	PublishWithRetry(ctx context.Context, topic, key string, payload any, maxRetries int) error
}

type FlightService struct {
	repo      repository.FlightRepository
	publisher Publisher
	topic     string
	retries   int
	log       *zap.Logger
	now       func() time.Time
}

type Option func(*FlightService)

// WithPublishRetries sets how many times a status event is offered to the
// publisher before ChangeStatus gives up. Values below one mean one attempt.
func WithPublishRetries(n int) Option {
	return func(s *FlightService) {
		if n > 0 {
			s.retries = n
		}
	}
}

// NewFlightService wires the service. A nil publisher disables status events.
func NewFlightService(repo repository.FlightRepository, publisher Publisher, topic string, log *zap.Logger, opts ...Option) *FlightService {
	s := &FlightService{repo: repo, publisher: publisher, topic: topic, retries: 1, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.FindAll(ctx)
}

func (s *FlightService) Search(ctx context.Context, criteria repository.FlightCriteria) ([]domain.Flight, error) {
	return s.repo.FindByCriteria(ctx, criteria)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (domain.Flight, error) {
	f, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Flight{}, err
	}
	if !found {
		return domain.Flight{}, repository.NotFound("flights.GetByID", fmt.Sprintf("id=%d", id))
	}
	return f, nil
}

func (s *FlightService) Schedule(ctx context.Context, flight domain.Flight) (domain.Flight, error) {
	created, err := s.repo.Create(ctx, flight)
	if err != nil {
		return domain.Flight{}, err
	}
	s.log.Info("flight scheduled", zap.Int64("flight_id", created.ID), zap.String("number", created.FlightNumber))
	return created, nil
}

func (s *FlightService) Reschedule(ctx context.Context, flight domain.Flight) error {
	return s.repo.Update(ctx, flight)
}

// ChangeStatus stores the new status and then publishes a FlightStatusEvent.
// A publish failure is returned together with the event; the stored status
// is not rolled back.
func (s *FlightService) ChangeStatus(ctx context.Context, id int64, status domain.FlightStatus) (domain.FlightStatusEvent, error) {
	const op = "flights.ChangeStatus"

	f, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.FlightStatusEvent{}, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.FlightStatusEvent{}, err
	}
	if !updated {
		return domain.FlightStatusEvent{}, repository.NotFound(op, fmt.Sprintf("id=%d", id))
	}

	event := domain.NewFlightStatusEvent(f, status, s.now())
	log := s.log.With(zap.Int64("flight_id", id), zap.String("from", string(f.Status)), zap.String("to", string(status)))
	if s.publisher == nil {
		log.Info("flight status changed")
		return event, nil
	}
	if err := s.publisher.PublishWithRetry(ctx, s.topic, strconv.FormatInt(id, 10), event, s.retries); err != nil {
		log.Error("publish flight status event", zap.Error(err))
		return event, fmt.Errorf("flight %d status stored, event not published: %w", id, err)
	}
	log.Info("flight status changed", zap.Stringer("event_id", event.EventID))
	return event, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

var _ FlightUseCase = (*FlightService)(nil)
