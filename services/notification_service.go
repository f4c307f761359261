package services

import (
	"fmt"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"

	"gorm.io/gorm"
)

// NotificationService keeps the staff notification feed. Entries are
// appended on payment requests and wiped by checkout/cancel for the
// table.
type NotificationService struct {
	Repo      *repository.NotificationRepository
	TableRepo *repository.TableRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		Repo:      repository.NewNotificationRepository(db),
		TableRepo: repository.NewTableRepository(db),
	}
}

// RequestPayment records that a table asked for the bill.
func (s *NotificationService) RequestPayment(tableID uint) (*entity.Notification, error) {
	table, err := s.TableRepo.Get(nil, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperr.NotFound("table %d not found", tableID)
	}

	n := &entity.Notification{
		TableID: &table.ID,
		Message: fmt.Sprintf("%s requests payment", table.Number),
	}
	if err := s.Repo.Create(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) List(limit int) ([]entity.Notification, error) {
	return s.Repo.List(limit)
}

func (s *NotificationService) MarkRead(id uint) (*entity.Notification, error) {
	n, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("notification %d not found", id)
	}
	if !n.IsRead {
		n.IsRead = true
		if err := s.Repo.Save(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}
