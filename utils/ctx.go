package utils

import "github.com/gin-gonic/gin"

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}
