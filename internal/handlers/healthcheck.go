package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func Root(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{
    "message": "Welcome to the Wellness Tracker API",
    "version": "1.0.0",
  })
}
