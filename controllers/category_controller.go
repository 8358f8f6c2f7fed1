package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
)

// ListCategories handles GET /categories - active categories in display order
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	var categories []models.Category
	if err := db.Where("is_active = ?", true).Order("display_order").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get categories",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}
