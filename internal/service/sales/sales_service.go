package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
)

// ErrPersistence indicates the ledger changed in memory but could not be saved.
var ErrPersistence = errors.New("failed to save data")

// ErrRecordNotFound indicates no record with the given id exists on that date.
var ErrRecordNotFound = errors.New("record not found")

// Repository persists the whole ledger.
type Repository interface {
	Load(ctx context.Context) (models.Ledger, error)
	Save(ctx context.Context, ledger models.Ledger) error
	Clear(ctx context.Context) error
}

// Service owns the in-memory ledger and writes every change through to the repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
	newID    func() string

	mu     sync.Mutex
	ledger models.Ledger
	loaded bool
}

// NewService constructs a sales service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Ledger returns a copy of the current ledger.
func (s *Service) Ledger(ctx context.Context) (models.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.ledger.Clone(), nil
}

// Dates lists the dates holding records, newest first.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(s.ledger))
	for date := range s.ledger {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Records returns the records of date in insertion order.
func (s *Service) Records(ctx context.Context, date string) ([]models.ProductSaleRecord, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	records := make([]models.ProductSaleRecord, len(s.ledger[date]))
	copy(records, s.ledger[date])
	return records, nil
}

// AddRecord validates input and appends a record to date. When only the save
// fails the record is kept and the error wraps ErrPersistence.
func (s *Service) AddRecord(ctx context.Context, date string, input models.RecordInput) (models.ProductSaleRecord, error) {
	if err := ValidateDate(date); err != nil {
		return models.ProductSaleRecord{}, err
	}

	record, err := buildRecord(s.validate, input, s.newID())
	if err != nil {
		return models.ProductSaleRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return models.ProductSaleRecord{}, err
	}

	s.ledger[date] = append(s.ledger[date], record)
	s.logger.Info("sale recorded",
		zap.String("date", date),
		zap.String("product", record.ProductName),
		zap.Float64("total", record.TotalSales))

	return record, s.persist(ctx)
}

// RemoveRecord deletes a record. The date disappears with its last record.
func (s *Service) RemoveRecord(ctx context.Context, date, id string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	records := s.ledger[date]
	kept := make([]models.ProductSaleRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%w: %s on %s", ErrRecordNotFound, id, date)
	}

	if len(kept) == 0 {
		delete(s.ledger, date)
	} else {
		s.ledger[date] = kept
	}
	s.logger.Info("sale removed", zap.String("date", date), zap.String("id", id))

	return s.persist(ctx)
}

// Clear wipes every record.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = models.Ledger{}
	s.loaded = true

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("failed to clear ledger", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.logger.Info("ledger cleared")
	return nil
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	ledger, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.ledger = ledger
	s.loaded = true
	return nil
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.ledger); err != nil {
		s.logger.Error("failed to persist ledger", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func totalSales(sold int, price float64) float64 {
	return decimal.NewFromInt(int64(sold)).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}
