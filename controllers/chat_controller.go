package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateConversationRequest represents the request body for opening a chat
type CreateConversationRequest struct {
	ShopID string `json:"shopId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

// ConversationSummary is a conversation row joined with both sides' display
// names, as shown in chat lists.
type ConversationSummary struct {
	models.Conversation
	ShopName     string `json:"shop_name"`
	CustomerName string `json:"customer_name"`
}

// ListConversations handles GET /chats?shopId= | ?userId=
func ListConversations(c *gin.Context) {
	shopID := c.Query("shopId")
	userID := c.Query("userId")

	if shopID == "" && userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Shop ID or User ID is required",
			},
		})
		return
	}

	where, param := "conversations.user_id = ?", userID
	if shopID != "" {
		where, param = "conversations.shop_id = ?", shopID
	}

	db := config.GetDB()
	var conversations []ConversationSummary
	err := db.Table("conversations").
		Select("conversations.*, shops.shop_name AS shop_name, users.full_name AS customer_name").
		Joins("JOIN shops ON shops.shop_id = conversations.shop_id").
		Joins("JOIN users ON users.user_id = conversations.user_id").
		Where(where, param).
		Order("conversations.updated_at DESC").
		Scan(&conversations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get conversations",
				"details": err.Error(),
			},
		})
		return
	}

	if conversations == nil {
		conversations = []ConversationSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"conversations": conversations,
	})
}

// CreateConversation handles POST /chats - idempotent get-or-create of the
// conversation for a (shop, customer) pair. Concurrent first-contact calls
// resolve to the same row through the unique index on (shop_id, user_id).
func CreateConversation(c *gin.Context) {
	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Shop ID and User ID are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	conversation := models.Conversation{
		ConversationID: uuid.New().String(),
		ShopID:         req.ShopID,
		UserID:         req.UserID,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shop_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&conversation)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create conversation",
				"details": result.Error.Error(),
			},
		})
		return
	}

	// A new conversation counts toward the shop's chat total
	if result.RowsAffected > 0 {
		if err := db.Model(&models.Shop{}).
			Where("shop_id = ?", req.ShopID).
			UpdateColumn("total_chats", gorm.Expr("total_chats + 1")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create conversation",
					"details": err.Error(),
				},
			})
			return
		}
	}

	// Re-read by pair so the conflict path returns the existing identifier
	var existing models.Conversation
	if err := db.Where("shop_id = ? AND user_id = ?", req.ShopID, req.UserID).First(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create conversation",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"conversation_id": existing.ConversationID,
	})
}
