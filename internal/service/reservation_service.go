package service

import (
	"context"
	"errors"
	"log"
	"time"

	"savoria-backend/internal/domain"
)

var (
	ErrMissingDate  = errors.New("date parameter is required")
	ErrInvalidDate  = errors.New("valid date is required")
	ErrInvalidTime  = errors.New("valid time is required")
	ErrInvalidParty = errors.New("party size must be between 1 and 20")
	ErrMissingName  = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("valid email is required")
	ErrMissingPhone = errors.New("phone number is required")
)

type ReservationService struct {
	repo      ReservationRepository
	publisher EventPublisher
}

func NewReservationService(repo ReservationRepository, publisher EventPublisher) *ReservationService {
	return &ReservationService{repo: repo, publisher: publisher}
}

// Create validates the request and asks the repository to admit the
// reservation. Admission is immediate: a successful reservation is
// confirmed, never pending. Capacity enforcement lives inside the
// repository transaction.
func (s *ReservationService) Create(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	if err := validateReservationRequest(req); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.ReservationStatusConfirmed,
	}
	if err := s.repo.CreateReservation(res); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:          domain.EventReservationConfirmed,
		ReservationID: res.ID,
		Status:        res.Status,
		Timestamp:     time.Now(),
	})

	return res, nil
}

func (s *ReservationService) Get(id int) (*domain.Reservation, error) {
	return s.repo.GetReservation(id)
}

// Availability reports, for each evening slot on the date, whether it is
// still under capacity and how many live reservations it holds.
func (s *ReservationService) Availability(date string) ([]domain.TimeSlot, error) {
	if date == "" {
		return nil, ErrMissingDate
	}
	if !domain.ValidReservationDate(date) {
		return nil, ErrInvalidDate
	}

	counts, err := s.repo.SlotCounts(date)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}
	for _, t := range domain.ReservationTimeSlots() {
		slots = append(slots, domain.TimeSlot{
			Time:             t,
			Available:        counts[t] < domain.SlotCapacity,
			ReservationCount: counts[t],
		})
	}
	return slots, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id int) (*domain.Reservation, error) {
	res, err := s.repo.CancelReservation(id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:          domain.EventReservationCancelled,
		ReservationID: res.ID,
		Status:        res.Status,
		Timestamp:     time.Now(),
	})

	return res, nil
}

func (s *ReservationService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("failed to publish %s event: %v", event.Type, err)
	}
}

func validateReservationRequest(req *domain.CreateReservationRequest) error {
	if req.CustomerName == "" {
		return ErrMissingName
	}
	if !domain.ValidEmail(req.CustomerEmail) {
		return ErrInvalidEmail
	}
	if req.CustomerPhone == "" {
		return ErrMissingPhone
	}
	if !domain.ValidReservationDate(req.Date) {
		return ErrInvalidDate
	}
	if !domain.ValidReservationTime(req.Time) {
		return ErrInvalidTime
	}
	if req.PartySize < 1 || req.PartySize > 20 {
		return ErrInvalidParty
	}
	return nil
}

var _ ReservationServiceInterface = (*ReservationService)(nil)
