package repository

import (
	"errors"
	"time"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

// Get returns the table or (nil, nil) when it does not exist.
func (r *TableRepository) Get(tx *gorm.DB, id uint) (*entity.Table, error) {
	if tx == nil {
		tx = r.DB
	}
	var t entity.Table
	if err := tx.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List() ([]entity.Table, error) {
	var out []entity.Table
	err := r.DB.Order("id").Find(&out).Error
	return out, err
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) Save(tx *gorm.DB, t *entity.Table) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(t).Error
}

// ResetExpiredReservation frees a lapsed hold, touching only the
// reservation columns. The WHERE clause re-checks the row so a reset
// racing an occupy write matches zero rows instead of freeing a table
// that just took an order; reports whether the reset applied.
func (r *TableRepository) ResetExpiredReservation(tx *gorm.DB, id uint, now time.Time) (bool, error) {
	if tx == nil {
		tx = r.DB
	}
	res := tx.Model(&entity.Table{}).
		Where("id = ? AND status = ? AND expires_at < ?", id, entity.TableReserved, now).
		Updates(map[string]any{
			"status":      entity.TableAvailable,
			"reserved_at": nil,
			"expires_at":  nil,
		})
	return res.RowsAffected > 0, res.Error
}

// ListExpiredReservations returns reserved tables whose hold lapsed
// before now; used by the background sweep.
func (r *TableRepository) ListExpiredReservations(now time.Time) ([]entity.Table, error) {
	var out []entity.Table
	err := r.DB.
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", entity.TableReserved, now).
		Find(&out).Error
	return out, err
}
