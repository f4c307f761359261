package controllers

import (
	"time"

	"github.com/BeeBeBong/Emenu/pkg/resp"
	"github.com/BeeBeBong/Emenu/services"
	"github.com/BeeBeBong/Emenu/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(db *gorm.DB, secret string, ttl time.Duration) *AuthController {
	return &AuthController{Service: services.NewAuthService(db, secret, ttl)}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ac.Service.Login(req.Username, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Service.Me(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"userId":   user.ID,
		"fullName": user.FullName,
		"role":     user.Role,
		"email":    user.Email,
	})
}
