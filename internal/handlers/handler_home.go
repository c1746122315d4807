package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome reports server liveness.
func GetHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
