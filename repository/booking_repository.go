package repository

import (
	"errors"
	"time"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

func (r *BookingRepository) Create(b *entity.Booking) error {
	return r.DB.Create(b).Error
}

func (r *BookingRepository) Get(id uint) (*entity.Booking, error) {
	var b entity.Booking
	if err := r.DB.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) Save(b *entity.Booking) error {
	return r.DB.Save(b).Error
}

func (r *BookingRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Booking{}, id).Error
}

// ListBetween returns bookings whose requested time falls in
// [start, end), oldest first so staff see the day in order.
func (r *BookingRepository) ListBetween(start, end time.Time) ([]entity.Booking, error) {
	var out []entity.Booking
	err := r.DB.
		Where("booking_time >= ? AND booking_time < ?", start, end).
		Order("booking_time").
		Find(&out).Error
	return out, err
}
