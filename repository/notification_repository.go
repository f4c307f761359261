package repository

import (
	"errors"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) List(limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Notification
	err := r.DB.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *NotificationRepository) Get(id uint) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.DB.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) Save(n *entity.Notification) error {
	return r.DB.Save(n).Error
}

// DeleteByTable clears every notification raised for a table; checkout
// and cancel both call this inside their transaction.
func (r *NotificationRepository) DeleteByTable(tx *gorm.DB, tableID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Unscoped().Where("table_id = ?", tableID).Delete(&entity.Notification{}).Error
}

func (r *NotificationRepository) CountByTable(tableID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Notification{}).Where("table_id = ?", tableID).Count(&n).Error
	return n, err
}
