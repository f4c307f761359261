package controllers

import (
	"strconv"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"
	"github.com/BeeBeBong/Emenu/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	Service *services.NotificationService
	Hub     *ws.NotifyHub
}

func NewNotificationController(db *gorm.DB, hub *ws.NotifyHub) *NotificationController {
	return &NotificationController{Service: services.NewNotificationService(db), Hub: hub}
}

type requestPaymentReq struct {
	TableID uint `json:"tableId" binding:"required"`
}

// POST /api/tables/request-payment: a table asks for the bill; the
// notification lands in the feed and is pushed to connected dashboards.
func (nc *NotificationController) RequestPayment(c *gin.Context) {
	var req requestPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	n, err := nc.Service.RequestPayment(req.TableID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if nc.Hub != nil {
		nc.Hub.Broadcast(n)
	}
	resp.Created(c, n)
}

// GET /api/notifications
func (nc *NotificationController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := nc.Service.List(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	out, err := nc.Service.MarkRead(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
