package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UpdatePreferencesRequest represents the request body for saving a
// customer's dashboard preferences blob
type UpdatePreferencesRequest struct {
	UserID      string          `json:"userId" binding:"required"`
	Preferences json.RawMessage `json:"preferences"`
}

// favoriteShop is a shop the customer interacts with most, ranked by
// combined conversation and rating count
type favoriteShop struct {
	ShopID        string  `json:"shop_id"`
	ShopName      string  `json:"shop_name"`
	AverageRating float64 `json:"average_rating"`
	ChatCount     int     `json:"chat_count"`
	RatingCount   int     `json:"rating_count"`
}

// OwnerDashboard handles GET /dashboard?shopId= - stats and recent
// activity for a shop owner
func OwnerDashboard(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Shop ID is required",
			},
		})
		return
	}

	db := config.GetDB()

	var shop models.Shop
	if err := db.Where("shop_id = ?", shopID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	var recentChats []ConversationSummary
	if err := db.Table("conversations").
		Select("conversations.*, shops.shop_name AS shop_name, users.full_name AS customer_name").
		Joins("JOIN shops ON shops.shop_id = conversations.shop_id").
		Joins("JOIN users ON users.user_id = conversations.user_id").
		Where("conversations.shop_id = ?", shopID).
		Order("conversations.updated_at DESC").
		Limit(5).
		Scan(&recentChats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	var recentRatings []RatingWithAuthor
	if err := db.Table("ratings").
		Select("ratings.*, users.full_name AS user_name").
		Joins("JOIN users ON users.user_id = ratings.user_id").
		Where("ratings.shop_id = ?", shopID).
		Order("ratings.created_at DESC").
		Limit(5).
		Scan(&recentRatings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	// Today's views come from the per-day counter, not the lifetime total
	today := time.Now().Format("2006-01-02")
	var viewsToday int
	if err := db.Model(&models.ShopView{}).
		Select("COALESCE(SUM(view_count), 0)").
		Where("shop_id = ? AND view_date = ?", shopID, today).
		Scan(&viewsToday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	if recentChats == nil {
		recentChats = []ConversationSummary{}
	}
	if recentRatings == nil {
		recentRatings = []RatingWithAuthor{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalChats":       shop.TotalChats,
			"totalViews":       shop.TotalViews,
			"averageRating":    shop.AverageRating,
			"totalRatings":     shop.TotalRatings,
			"viewsToday":       viewsToday,
			"visibilityRadius": shop.VisibilityRadiusKm,
		},
		"recentChats":   recentChats,
		"recentRatings": recentRatings,
	})
}

// CustomerDashboard handles GET /user/dashboard?userId= - profile, counts
// and recent activity for a customer
func CustomerDashboard(c *gin.Context) {
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
	if err := db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	if !customer.IsActive {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ACCOUNT_INACTIVE",
				"message": "User account is inactive",
			},
		})
		return
	}

	var totalChats int64
	db.Model(&models.Conversation{}).Where("user_id = ?", userID).Count(&totalChats)

	var totalRatings int64
	db.Model(&models.Rating{}).Where("user_id = ?", userID).Count(&totalRatings)

	var unreadMessages int
	db.Model(&models.Conversation{}).
		Select("COALESCE(SUM(unread_count_customer), 0)").
		Where("user_id = ?", userID).
		Scan(&unreadMessages)

	var recentChats []ConversationSummary
	if err := db.Table("conversations").
		Select("conversations.*, shops.shop_name AS shop_name, users.full_name AS customer_name").
		Joins("JOIN shops ON shops.shop_id = conversations.shop_id").
		Joins("JOIN users ON users.user_id = conversations.user_id").
		Where("conversations.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Limit(5).
		Scan(&recentChats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	type ratingWithShop struct {
		models.Rating
		ShopName string `json:"shop_name"`
	}
	var recentRatings []ratingWithShop
	if err := db.Table("ratings").
		Select("ratings.*, shops.shop_name AS shop_name").
		Joins("JOIN shops ON shops.shop_id = ratings.shop_id").
		Where("ratings.user_id = ?", userID).
		Order("ratings.created_at DESC").
		Limit(5).
		Scan(&recentRatings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	var favorites []favoriteShop
	if err := db.Table("shops").
		Select("shops.shop_id, shops.shop_name, shops.average_rating, "+
			"COUNT(DISTINCT c.conversation_id) AS chat_count, "+
			"COUNT(DISTINCT r.rating_id) AS rating_count").
		Joins("LEFT JOIN conversations c ON c.shop_id = shops.shop_id AND c.user_id = ?", userID).
		Joins("LEFT JOIN ratings r ON r.shop_id = shops.shop_id AND r.user_id = ?", userID).
		Where("c.conversation_id IS NOT NULL OR r.rating_id IS NOT NULL").
		Group("shops.shop_id, shops.shop_name, shops.average_rating").
		Order("(COUNT(DISTINCT c.conversation_id) + COUNT(DISTINCT r.rating_id)) DESC").
		Limit(3).
		Scan(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get dashboard data",
				"details": err.Error(),
			},
		})
		return
	}

	if recentChats == nil {
		recentChats = []ConversationSummary{}
	}
	if recentRatings == nil {
		recentRatings = []ratingWithShop{}
	}
	if favorites == nil {
		favorites = []favoriteShop{}
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
			"isActive":    customer.IsActive,
		},
		"stats": gin.H{
			"totalChats":     totalChats,
			"totalRatings":   totalRatings,
			"unreadMessages": unreadMessages,
		},
		"recentChats":   recentChats,
		"recentRatings": recentRatings,
		"favoriteShops": favorites,
	})
}

// UpdateDashboardPreferences handles PUT /user/dashboard - stores the
// customer's dashboard preferences as an opaque JSON blob
func UpdateDashboardPreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User ID is required",
				"details": err.Error(),
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

	if len(req.Preferences) > 0 {
		if err := db.Model(&customer).
			Update("preferences", datatypes.JSON(req.Preferences)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update preferences",
					"details": err.Error(),
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dashboard preferences updated successfully",
	})
}

// ClearCustomerData handles DELETE /user/dashboard?userId=&action= - the
// only bulk deletion surface: clears a customer's chats or ratings
func ClearCustomerData(c *gin.Context) {
	userID := c.Query("userId")
	action := c.Query("action")

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

	switch action {
	case "clear-chats":
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("conversation_id IN (?)",
				tx.Model(&models.Conversation{}).Select("conversation_id").Where("user_id = ?", userID),
			).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ?", userID).Delete(&models.Conversation{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to clear data",
					"details": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "All chats cleared successfully",
		})

	case "clear-ratings":
		if err := db.Where("user_id = ?", userID).Delete(&models.Rating{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to clear data",
					"details": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "All ratings cleared successfully",
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ACTION",
				"message": "Invalid action",
			},
		})
	}
}
