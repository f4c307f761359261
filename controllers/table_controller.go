package controllers

import (
	"log/slog"
	"time"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(db *gorm.DB, hold time.Duration, log *slog.Logger) *TableController {
	return &TableController{Service: services.NewTableService(db, hold, log)}
}

// GET /api/tables
func (tc *TableController) List(c *gin.Context) {
	out, err := tc.Service.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/tables/:id
func (tc *TableController) Get(c *gin.Context) {
	out, err := tc.Service.Get(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type createTableReq struct {
	Number string `json:"number" binding:"required"`
}

// POST /api/tables
func (tc *TableController) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := tc.Service.Create(req.Number)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /api/tables/:id/reserve
func (tc *TableController) Reserve(c *gin.Context) {
	out, err := tc.Service.Reserve(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
