package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookinub-backend/internal/metrics"
	"bookinub-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

type Service struct {
	repo     Repository
	val      *validation.Validator
	location *time.Location
	now      func() time.Time
}

func NewService(repo Repository, val *validation.Validator, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		val:      val,
		location: location,
		now:      time.Now,
	}
}

// timestamp is truncated to the precision MongoDB stores.
func (s *Service) timestamp() time.Time {
	return s.now().In(s.location).Truncate(time.Millisecond)
}

// Create validates req and stores it as a new pending booking. Nothing is
// written when validation fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Booking, error) {
	candidate, err := Validate(s.val, req)
	if err != nil {
		return Booking{}, err
	}

	now := s.timestamp()
	item := Booking{
		ID:           primitive.NewObjectID().Hex(),
		CustomerName: candidate.CustomerName,
		Email:        candidate.Email,
		Service:      candidate.Service,
		Date:         candidate.Date,
		Time:         candidate.Time,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	metrics.IncBookingCreated(string(item.Status))
	return item, nil
}

// ListAll returns every booking in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]Booking, error) {
	items, err := s.repo.List(ctx, ListFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

func (s *Service) ListAdmin(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, int64, error) {
	filter.Status = Status(strings.ToLower(strings.TrimSpace(string(filter.Status))))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	items, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdateStatus applies an administrative status change.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Booking, error) {
	id = strings.TrimSpace(id)
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !IsValidStatus(status) {
		return Booking{}, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !CanTransition(current.Status, status) {
		return Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, status, s.timestamp())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// the booking moved on between the read and the write
			return Booking{}, fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, id)
		}
		return Booking{}, fmt.Errorf("update booking status: %w", err)
	}
	metrics.IncStatusChange(string(current.Status), string(status))
	return updated, nil
}
