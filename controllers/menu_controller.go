package controllers

import (
	"net/http"
	"strconv"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{Service: services.NewMenuService(db)}
}

func paramID(c *gin.Context, name string) uint {
	id, _ := strconv.Atoi(c.Param(name))
	if id < 0 {
		return 0
	}
	return uint(id)
}

// ----- Categories -----

// GET /api/categories
func (mc *MenuController) ListCategories(c *gin.Context) {
	out, err := mc.Service.ListCategories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /api/categories
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var in services.CategoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := mc.Service.CreateCategory(&in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// PUT /api/categories/:id
func (mc *MenuController) UpdateCategory(c *gin.Context) {
	var in services.CategoryIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := mc.Service.UpdateCategory(paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /api/categories/:id
func (mc *MenuController) DeleteCategory(c *gin.Context) {
	if err := mc.Service.DeleteCategory(paramID(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, nil)
}

// ----- Items / menu -----

// GET /api/menu and GET /api/items
func (mc *MenuController) ListItems(c *gin.Context) {
	out, err := mc.Service.ListItems()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/menu/category/:id
func (mc *MenuController) ListItemsByCategory(c *gin.Context) {
	out, err := mc.Service.ListItemsByCategory(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /api/items
func (mc *MenuController) CreateItem(c *gin.Context) {
	var in services.ItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := mc.Service.CreateItem(&in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// PUT /api/items/:id
func (mc *MenuController) UpdateItem(c *gin.Context) {
	var in services.ItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := mc.Service.UpdateItem(paramID(c, "id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /api/items/:id
func (mc *MenuController) DeleteItem(c *gin.Context) {
	if err := mc.Service.DeleteItem(paramID(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, nil)
}

// GET /api/items/:id/image
func (mc *MenuController) ItemImage(c *gin.Context) {
	data, mime, err := mc.Service.ItemImage(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Data(http.StatusOK, mime, data)
}
