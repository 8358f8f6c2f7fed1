package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"gorm.io/gorm"
)

// RegisterOwnerRequest represents the request body for shop owner registration
type RegisterOwnerRequest struct {
	BusinessName string `json:"businessName" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	OwnerName    string `json:"ownerName"`
	Email        string `json:"email"`
}

// RegisterCustomerRequest represents the request body for customer registration
type RegisterCustomerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Email       string `json:"email"`
}

// LoginRequest represents the request body for phone-number login
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	UserType    string `json:"userType" binding:"required,oneof=owner customer"`
}

// RegisterOwner handles POST /auth/register-owner
func RegisterOwner(c *gin.Context) {
	var req RegisterOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Business name and phone number are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// Owners and customers are separate namespaces; only check the owner table
	var existing models.Owner
	if err := db.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PHONE_EXISTS",
				"message": "Phone number already registered",
			},
		})
		return
	}

	owner := models.Owner{
		OwnerID:      uuid.New().String(),
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		IsActive:     true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		// Every owner gets a default notification settings row
		return tx.Create(&models.NotificationSetting{
			OwnerID:      owner.OwnerID,
			ChatAlerts:   true,
			RatingAlerts: true,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to register shop owner",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Shop owner registered successfully",
		"owner_id": owner.OwnerID,
	})
}

// RegisterCustomer handles POST /auth/register-user
func RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Full name and phone number are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var existing models.Customer
	if err := db.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PHONE_EXISTS",
				"message": "Phone number already registered",
			},
		})
		return
	}

	customer := models.Customer{
		UserID:      uuid.New().String(),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsActive:    true,
	}

	if err := db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to register user",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user_id": customer.UserID,
	})
}

// Login handles POST /auth/login - phone number login for both account kinds
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Phone number and user type are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	now := time.Now()

	if req.UserType == "owner" {
		var owner models.Owner
		if err := db.Where("phone_number = ? AND is_active = ?", req.PhoneNumber, true).First(&owner).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User not found or inactive",
				},
			})
			return
		}

		if err := db.Model(&owner).Update("last_login", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Login failed",
					"details": err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"user": gin.H{
				"id":          owner.OwnerID,
				"name":        owner.BusinessName,
				"phoneNumber": owner.PhoneNumber,
				"type":        "owner",
			},
		})
		return
	}

	var customer models.Customer
	if err := db.Where("phone_number = ? AND is_active = ?", req.PhoneNumber, true).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found or inactive",
			},
		})
		return
	}

	if err := db.Model(&customer).Update("last_login", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Login failed",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"id":          customer.UserID,
			"name":        customer.FullName,
			"phoneNumber": customer.PhoneNumber,
			"type":        "customer",
		},
	})
}
