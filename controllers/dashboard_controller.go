package controllers

import (
	"strconv"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	Service *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: services.NewDashboardService(db)}
}

// GET /api/dashboard/stats?range=today|yesterday|week|month|quarter|year
func (dc *DashboardController) Stats(c *gin.Context) {
	out, err := dc.Service.Stats(c.DefaultQuery("range", "today"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/revenues
func (dc *DashboardController) Revenues(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := dc.Service.Revenues(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
