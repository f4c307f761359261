package repository

import (
	"errors"

	"github.com/BeeBeBong/Emenu/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ---------------- Categories ----------------

func (r *MenuRepository) ListCategories() ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.Order("id").Find(&out).Error
	return out, err
}

func (r *MenuRepository) GetCategory(id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MenuRepository) CreateCategory(c *entity.Category) error {
	return r.DB.Create(c).Error
}

func (r *MenuRepository) SaveCategory(c *entity.Category) error {
	return r.DB.Save(c).Error
}

func (r *MenuRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&entity.Category{}, id).Error
}

// ---------------- Items ----------------

func (r *MenuRepository) ListItems() ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").Order("id").Find(&out).Error
	return out, err
}

func (r *MenuRepository) ListItemsByCategory(categoryID uint) ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").Where("category_id = ?", categoryID).Order("id").Find(&out).Error
	return out, err
}

// GetItem returns the item or (nil, nil) when absent.
func (r *MenuRepository) GetItem(tx *gorm.DB, id uint) (*entity.Item, error) {
	if tx == nil {
		tx = r.DB
	}
	var it entity.Item
	if err := tx.First(&it, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *MenuRepository) CreateItem(it *entity.Item) error {
	return r.DB.Create(it).Error
}

func (r *MenuRepository) SaveItem(it *entity.Item) error {
	return r.DB.Save(it).Error
}

func (r *MenuRepository) DeleteItem(id uint) error {
	return r.DB.Delete(&entity.Item{}, id).Error
}

// BestSeller is an item ranked by units ordered across all orders.
type BestSeller struct {
	ItemID    uint   `json:"itemId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Picture   string `json:"picture"`
	SoldCount int64  `json:"soldCount"`
}

func (r *MenuRepository) BestSellers(limit int) ([]BestSeller, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []BestSeller
	err := r.DB.Model(&entity.Item{}).
		Select("items.id AS item_id, items.name, items.price, items.picture, SUM(order_items.quantity) AS sold_count").
		Joins("JOIN order_items ON order_items.item_id = items.id AND order_items.deleted_at IS NULL").
		Group("items.id").
		Order("sold_count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
