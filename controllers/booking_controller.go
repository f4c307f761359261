package controllers

import (
	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{Service: services.NewBookingService(db)}
}

// POST /api/booking/create (public)
func (bc *BookingController) Create(c *gin.Context) {
	var in services.BookingIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	b, err := bc.Service.Create(&in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"bookingId": b.ID, "message": "booking received, staff will call back shortly"})
}

// PATCH /api/booking/:id/confirm
func (bc *BookingController) Confirm(c *gin.Context) {
	b, err := bc.Service.Confirm(paramID(c, "id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, b)
}

// DELETE /api/booking/delete/:id
func (bc *BookingController) Delete(c *gin.Context) {
	if err := bc.Service.Delete(paramID(c, "id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
