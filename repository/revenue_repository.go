package repository

import (
	"time"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type RevenueRepository struct {
	DB *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *RevenueRepository {
	return &RevenueRepository{DB: db}
}

func (r *RevenueRepository) Create(tx *gorm.DB, rev *entity.Revenue) error {
	return tx.Create(rev).Error
}

func (r *RevenueRepository) List(limit int) ([]entity.Revenue, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []entity.Revenue
	err := r.DB.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *RevenueRepository) CountByOrder(orderID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Revenue{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

// RangeSummary aggregates settled revenue between start and end
// (inclusive of start, exclusive of end).
type RangeSummary struct {
	Total    int64 `json:"total"`
	Cash     int64 `json:"cash"`
	Transfer int64 `json:"transfer"`
	Orders   int64 `json:"orders"`
}

func (r *RevenueRepository) SummarizeRange(start, end time.Time) (*RangeSummary, error) {
	base := r.DB.Model(&entity.Revenue{}).Where("paid_at >= ? AND paid_at < ?", start, end)

	var sum RangeSummary
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("method = ?", entity.PayCash).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum.Cash).Error; err != nil {
		return nil, err
	}
	sum.Transfer = sum.Total - sum.Cash
	if err := base.Session(&gorm.Session{}).Count(&sum.Orders).Error; err != nil {
		return nil, err
	}
	return &sum, nil
}
