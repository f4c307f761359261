package services

import (
	"fmt"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"

	"gorm.io/gorm"
)

type BookingService struct {
	Repo *repository.BookingRepository
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{Repo: repository.NewBookingRepository(db)}
}

// BookingIn accepts either separate date ("2006-01-02") and time
// ("15:04") fields, as the front-end sends them, or a combined
// bookingTime string.
type BookingIn struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	BookingTime string `json:"bookingTime"`
	Guests      int    `json:"guests"`
	Note        string `json:"note"`
}

const bookingTimeLayout = "2006-01-02 15:04"

func (s *BookingService) Create(in *BookingIn) (*entity.Booking, error) {
	raw := in.BookingTime
	if in.Date != "" && in.Time != "" {
		raw = fmt.Sprintf("%s %s", in.Date, in.Time)
	}
	if raw == "" {
		return nil, apperr.InvalidArgument("date and time are required")
	}
	when, err := time.ParseInLocation(bookingTimeLayout, raw, time.Local)
	if err != nil {
		return nil, apperr.InvalidArgument("bad booking time %q, want %q", raw, bookingTimeLayout)
	}

	guests := in.Guests
	if guests < 1 {
		guests = 1
	}

	b := &entity.Booking{
		CustomerName:  in.Name,
		CustomerPhone: in.Phone,
		BookingTime:   when,
		GuestCount:    guests,
		Note:          in.Note,
		Status:        entity.BookingPending,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm marks a booking handled (staff phoned the customer back).
func (s *BookingService) Confirm(id uint) (*entity.Booking, error) {
	b, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking %d not found", id)
	}
	b.Status = entity.BookingConfirmed
	if err := s.Repo.Save(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) Delete(id uint) error {
	b, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.NotFound("booking %d not found", id)
	}
	return s.Repo.Delete(id)
}
