package repository

import (
	"errors"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Get(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Order
	err := r.DB.Preload("Items").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// GetOpenByTable follows the table's current-order pointer and returns
// the order only while it is still open (status not paid/cancelled).
// Returns (nil, nil) when the table has no open order.
func (r *OrderRepository) GetOpenByTable(tx *gorm.DB, table *entity.Table) (*entity.Order, error) {
	if tx == nil {
		tx = r.DB
	}
	if table.CurrentOrderID == nil {
		return nil, nil
	}
	var o entity.Order
	if err := tx.First(&o, *table.CurrentOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !o.Open() {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) Save(tx *gorm.DB, o *entity.Order) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(o).Error
}

// FindUnservedLine returns the order's unserved line for an item, or
// (nil, nil) when there is none. Served lines never merge.
func (r *OrderRepository) FindUnservedLine(tx *gorm.DB, orderID, itemID uint) (*entity.OrderItem, error) {
	var line entity.OrderItem
	err := tx.
		Where("order_id = ? AND item_id = ? AND is_served = ?", orderID, itemID, false).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *OrderRepository) CreateLine(tx *gorm.DB, line *entity.OrderItem) error {
	return tx.Create(line).Error
}

func (r *OrderRepository) SaveLine(tx *gorm.DB, line *entity.OrderItem) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(line).Error
}

// SetLineServed flips the served flag only, leaving quantity and note
// to concurrent merges.
func (r *OrderRepository) SetLineServed(tx *gorm.DB, lineID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&entity.OrderItem{}).Where("id = ?", lineID).Update("is_served", true).Error
}

func (r *OrderRepository) GetLine(lineID uint) (*entity.OrderItem, error) {
	var line entity.OrderItem
	if err := r.DB.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *OrderRepository) Lines(tx *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	if tx == nil {
		tx = r.DB
	}
	var out []entity.OrderItem
	err := tx.Where("order_id = ?", orderID).Order("id").Find(&out).Error
	return out, err
}

// SumLines recomputes the order total from current catalog prices.
// Prices are not snapshotted on lines, so a price change moves every
// unpaid total; Revenue.Amount is the frozen record after checkout.
func (r *OrderRepository) SumLines(tx *gorm.DB, orderID uint) (int64, error) {
	var total int64
	err := tx.Model(&entity.OrderItem{}).
		Select("COALESCE(SUM(order_items.quantity * items.price), 0)").
		Joins("JOIN items ON items.id = order_items.item_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}

// DeleteUnpaidByTable hard-deletes every non-paid order for a table,
// line items included. Paid orders (and their revenue) are untouched.
func (r *OrderRepository) DeleteUnpaidByTable(tx *gorm.DB, tableID uint) error {
	sub := tx.Model(&entity.Order{}).Select("id").
		Where("table_id = ? AND status <> ?", tableID, entity.OrderPaid)
	if err := tx.Unscoped().Where("order_id IN (?)", sub).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().
		Where("table_id = ? AND status <> ?", tableID, entity.OrderPaid).
		Delete(&entity.Order{}).Error
}
