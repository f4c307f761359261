package controllers

import (
	"errors"
	"io"
	"strconv"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Service: services.NewOrderService(db)}
}

// POST /api/orders/create
func (oc *OrderController) Create(c *gin.Context) {
	var req services.AddItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Service.AddItems(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /api/orders/table/:tableId returns null data when the table
// has no open order; an empty table is not an error.
func (oc *OrderController) GetByTable(c *gin.Context) {
	out, err := oc.Service.OpenOrderByTable(paramID(c, "tableId"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/orders
func (oc *OrderController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := oc.Service.List(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	out, err := oc.Service.Get(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type checkoutReq struct {
	PaymentMethod string `json:"paymentMethod"`
}

// POST /api/tables/:id/checkout
func (oc *OrderController) Checkout(c *gin.Context) {
	var req checkoutReq
	// body is optional; an empty one means cash
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Service.Checkout(paramID(c, "id"), req.PaymentMethod)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type cancelReq struct {
	TableID uint `json:"tableId" binding:"required"`
}

// POST /api/orders/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := oc.Service.Cancel(req.TableID); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cancelled": true})
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /api/orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := oc.Service.UpdateStatus(paramID(c, "id"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /api/order-items/:id/served
func (oc *OrderController) MarkServed(c *gin.Context) {
	if err := oc.Service.MarkLineServed(paramID(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"served": true})
}
