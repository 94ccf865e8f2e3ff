package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root confirms the API is running
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Streamtape API Wrapper. See the README for endpoints."})
}

// Health is the liveness probe
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
