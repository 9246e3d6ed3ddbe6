package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome reports the service name and status.
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "clubledger",
		"status":  "ok",
	})
}
