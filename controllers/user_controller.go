package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
)

// UpdateCustomerProfileRequest represents the request body for updating a
// customer's profile
type UpdateCustomerProfileRequest struct {
	UserID   string `json:"userId" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// GetCustomerProfile handles GET /user/update-profile?userId= - current
// profile of an active customer
func GetCustomerProfile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User ID is required",
			},
		})
		return
	}

	db := config.GetDB()

	var customer models.Customer
	if err := db.Where("user_id = ? AND is_active = ?", userID, true).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found or inactive",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":          customer.UserID,
			"name":        customer.FullName,
			"phoneNumber": customer.PhoneNumber,
			"email":       customer.Email,
			"memberSince": customer.CreatedAt,
			"lastLogin":   customer.LastLogin,
		},
	})
}

// UpdateCustomerProfile handles PUT /user/update-profile - updates a
// customer's display name and email
func UpdateCustomerProfile(c *gin.Context) {
	var req UpdateCustomerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User ID and full name are required",
				"details": err.Error(),
			},
		})
		return
	}

	if strings.TrimSpace(req.FullName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Full name cannot be empty",
			},
		})
		return
	}

	db := config.GetDB()

	var customer models.Customer
	if err := db.Where("user_id = ? AND is_active = ?", req.UserID, true).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found or inactive",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"full_name": strings.TrimSpace(req.FullName),
		"email":     req.Email,
	}
	if err := db.Model(&customer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":          customer.UserID,
			"name":        customer.FullName,
			"phoneNumber": customer.PhoneNumber,
			"email":       customer.Email,
			"memberSince": customer.CreatedAt,
			"lastLogin":   customer.LastLogin,
		},
	})
}
