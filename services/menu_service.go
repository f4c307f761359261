package services

import (
	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/repository"
	"github.com/BeeBeBong/Emenu/utils"

	"gorm.io/gorm"
)

// MenuService handles catalog CRUD: categories and priced items. Item
// price edits take effect immediately on every unpaid order total.
type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{Repo: repository.NewMenuRepository(db)}
}

// ----- DTOs -----

type CategoryIn struct {
	Name string `json:"name" binding:"required"`
}

type ItemIn struct {
	Name       string `json:"name" binding:"required"`
	Price      int64  `json:"price"`
	CategoryID uint   `json:"categoryId" binding:"required"`
	Picture    string `json:"picture"`
	// ImageBase64 optionally uploads the image blob inline (raw base64
	// or a data URI).
	ImageBase64 string `json:"imageBase64"`
}

type ItemView struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Img      string `json:"img"`
	Category string `json:"category"`
}

// ----- Categories -----

func (s *MenuService) ListCategories() ([]entity.Category, error) {
	return s.Repo.ListCategories()
}

func (s *MenuService) CreateCategory(in *CategoryIn) (*entity.Category, error) {
	c := &entity.Category{Name: in.Name}
	if err := s.Repo.CreateCategory(c); err != nil {
		return nil, apperr.Conflict("category %q already exists", in.Name)
	}
	return c, nil
}

func (s *MenuService) UpdateCategory(id uint, in *CategoryIn) (*entity.Category, error) {
	c, err := s.Repo.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category %d not found", id)
	}
	c.Name = in.Name
	if err := s.Repo.SaveCategory(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MenuService) DeleteCategory(id uint) error {
	c, err := s.Repo.GetCategory(id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFound("category %d not found", id)
	}
	return s.Repo.DeleteCategory(id)
}

// ----- Items -----

func (s *MenuService) ListItems() ([]ItemView, error) {
	items, err := s.Repo.ListItems()
	if err != nil {
		return nil, err
	}
	return itemViews(items), nil
}

func (s *MenuService) ListItemsByCategory(categoryID uint) ([]ItemView, error) {
	c, err := s.Repo.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category %d not found", categoryID)
	}
	items, err := s.Repo.ListItemsByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return itemViews(items), nil
}

func (s *MenuService) CreateItem(in *ItemIn) (*ItemView, error) {
	if in.Price < 0 {
		return nil, apperr.InvalidArgument("price must not be negative")
	}
	c, err := s.Repo.GetCategory(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category %d not found", in.CategoryID)
	}

	item := &entity.Item{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		Picture:    in.Picture,
	}
	if in.ImageBase64 != "" {
		data, mime, err := utils.DecodeBase64Image(in.ImageBase64)
		if err != nil {
			return nil, apperr.InvalidArgument("bad image payload: %v", err)
		}
		item.Image = data
		item.ImageType = mime
	}
	if err := s.Repo.CreateItem(item); err != nil {
		return nil, err
	}
	item.Category = *c
	v := itemView(item)
	return &v, nil
}

func (s *MenuService) UpdateItem(id uint, in *ItemIn) (*ItemView, error) {
	if in.Price < 0 {
		return nil, apperr.InvalidArgument("price must not be negative")
	}
	item, err := s.Repo.GetItem(nil, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item %d not found", id)
	}
	c, err := s.Repo.GetCategory(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category %d not found", in.CategoryID)
	}

	item.Name = in.Name
	item.Price = in.Price
	item.CategoryID = in.CategoryID
	item.Picture = in.Picture
	if in.ImageBase64 != "" {
		data, mime, err := utils.DecodeBase64Image(in.ImageBase64)
		if err != nil {
			return nil, apperr.InvalidArgument("bad image payload: %v", err)
		}
		item.Image = data
		item.ImageType = mime
	}
	if err := s.Repo.SaveItem(item); err != nil {
		return nil, err
	}
	item.Category = *c
	v := itemView(item)
	return &v, nil
}

func (s *MenuService) DeleteItem(id uint) error {
	item, err := s.Repo.GetItem(nil, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperr.NotFound("item %d not found", id)
	}
	return s.Repo.DeleteItem(id)
}

// ItemImage returns the stored blob and its MIME type.
func (s *MenuService) ItemImage(id uint) ([]byte, string, error) {
	item, err := s.Repo.GetItem(nil, id)
	if err != nil {
		return nil, "", err
	}
	if item == nil || len(item.Image) == 0 {
		return nil, "", apperr.NotFound("item %d has no image", id)
	}
	return item.Image, item.ImageType, nil
}

func itemViews(items []entity.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for i := range items {
		out = append(out, itemView(&items[i]))
	}
	return out
}

func itemView(item *entity.Item) ItemView {
	return ItemView{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Img:      itemImageURL(item),
		Category: item.Category.Name,
	}
}
