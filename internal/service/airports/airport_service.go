package airports

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type AirportUseCase interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (domain.Airport, error)
	GetByIataCode(ctx context.Context, code string) (domain.Airport, error)
	GetByIcaoCode(ctx context.Context, code string) (domain.Airport, error)
	ListByCountry(ctx context.Context, country string) ([]domain.Airport, error)
	ListByCity(ctx context.Context, city string) ([]domain.Airport, error)
	Add(ctx context.Context, airport domain.Airport) (domain.Airport, error)
	Update(ctx context.Context, airport domain.Airport) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// AirportService turns DAO absence into repository.ErrNotFound for callers
// that need a value.
type AirportService struct {
	repo repository.AirportRepository
}

func NewAirportService(repo repository.AirportRepository) *AirportService {
	return &AirportService{repo: repo}
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	return s.repo.FindAll(ctx)
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (domain.Airport, error) {
	a, found, err := s.repo.FindByID(ctx, id)
	return orNotFound(a, found, err, "airports.GetByID", "id", id)
}

func (s *AirportService) GetByIataCode(ctx context.Context, code string) (domain.Airport, error) {
	a, found, err := s.repo.FindByIataCode(ctx, code)
	return orNotFound(a, found, err, "airports.GetByIataCode", "iata", code)
}

func (s *AirportService) GetByIcaoCode(ctx context.Context, code string) (domain.Airport, error) {
	a, found, err := s.repo.FindByIcaoCode(ctx, code)
	return orNotFound(a, found, err, "airports.GetByIcaoCode", "icao", code)
}

func (s *AirportService) ListByCountry(ctx context.Context, country string) ([]domain.Airport, error) {
	return s.repo.FindByCountry(ctx, country)
}

func (s *AirportService) ListByCity(ctx context.Context, city string) ([]domain.Airport, error) {
	return s.repo.FindByCity(ctx, city)
}

func (s *AirportService) Add(ctx context.Context, airport domain.Airport) (domain.Airport, error) {
	return s.repo.Create(ctx, airport)
}

func (s *AirportService) Update(ctx context.Context, airport domain.Airport) error {
	return s.repo.Update(ctx, airport)
}

func (s *AirportService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func orNotFound[T any](v T, found bool, err error, op, name string, key any) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	if !found {
		var zero T
		return zero, repository.NotFound(op, fmt.Sprintf("%s=%v", name, key))
	}
	return v, nil
}

var _ AirportUseCase = (*AirportService)(nil)
