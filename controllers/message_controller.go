package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"github.com/shoplink/shoplink-api/services"
	"github.com/shoplink/shoplink-api/utils"
	"gorm.io/gorm"
)

// SendTextMessageRequest represents the JSON body for a text chat message
type SendTextMessageRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	SenderType     string `json:"senderType" binding:"required,oneof=shop customer"`
	SenderID       string `json:"senderId" binding:"required"`
	MessageText    string `json:"messageText" binding:"required"`
}

// MarkReadRequest represents the request body for marking a conversation read
type MarkReadRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	ReaderType     string `json:"readerType" binding:"required,oneof=shop customer"`
}

// ListMessages handles GET /chats/messages?conversationId= - full history,
// oldest first
func ListMessages(c *gin.Context) {
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Conversation ID is required",
			},
		})
		return
	}

	db := config.GetDB()
	var messages []models.Message
	if err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get messages",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
	})
}

// SendMessage handles POST /chats/messages. A multipart/form-data body is a
// document message whose file goes to the blob store; a JSON body is a text
// message.
func SendMessage(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		sendDocumentMessage(c)
		return
	}
	sendTextMessage(c)
}

func sendTextMessage(c *gin.Context) {
	var req SendTextMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var conversation models.Conversation
	if err := db.Where("conversation_id = ?", req.ConversationID).First(&conversation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONVERSATION_NOT_FOUND",
				"message": "Conversation not found",
			},
		})
		return
	}

	message := models.Message{
		MessageID:      uuid.New().String(),
		ConversationID: req.ConversationID,
		SenderType:     req.SenderType,
		SenderID:       req.SenderID,
		MessageType:    models.MessageTypeText,
		MessageText:    req.MessageText,
	}

	if err := persistMessage(db, &conversation, &message, req.MessageText); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to send message",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message_id": message.MessageID,
	})
}

func sendDocumentMessage(c *gin.Context) {
	conversationID := c.PostForm("conversationId")
	senderType := c.PostForm("senderType")
	senderID := c.PostForm("senderId")
	fileHeader, fileErr := c.FormFile("file")

	if conversationID == "" || senderType == "" || senderID == "" || fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields",
			},
		})
		return
	}

	if senderType != models.SenderTypeShop && senderType != models.SenderTypeCustomer {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Sender type must be 'shop' or 'customer'",
			},
		})
		return
	}

	// Size check happens before any persistence
	if err := utils.ValidateChatFile(fileHeader); err != nil {
		code := "VALIDATION_ERROR"
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var conversation models.Conversation
	if err := db.Where("conversation_id = ?", conversationID).First(&conversation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONVERSATION_NOT_FOUND",
				"message": "Conversation not found",
			},
		})
		return
	}

	// Fresh storage key so concurrent uploads of the same filename never collide
	storageName := utils.StorageKey(fileHeader.Filename)
	fileURL, err := services.GetFileStorage().SaveFile(fileHeader, storageName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to store file",
				"details": err.Error(),
			},
		})
		return
	}

	message := models.Message{
		MessageID:      uuid.New().String(),
		ConversationID: conversationID,
		SenderType:     senderType,
		SenderID:       senderID,
		MessageType:    models.MessageTypeDocument,
		FileURL:        fileURL,
		FileName:       fileHeader.Filename,
		FileType:       fileHeader.Header.Get("Content-Type"),
		FileSize:       fileHeader.Size,
	}

	if err := persistMessage(db, &conversation, &message, fileHeader.Filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to send message",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message_id": message.MessageID,
		"file_url":   message.FileURL,
		"file_name":  message.FileName,
	})
}

// persistMessage writes the message row and maintains the conversation's
// denormalized preview and unread counters in the same transaction
func persistMessage(db *gorm.DB, conversation *models.Conversation, message *models.Message, preview string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"last_message":      preview,
			"last_message_time": now,
			"updated_at":        now,
		}
		if message.SenderType == models.SenderTypeCustomer {
			updates["unread_count_shop"] = gorm.Expr("unread_count_shop + 1")
		} else {
			updates["unread_count_customer"] = gorm.Expr("unread_count_customer + 1")
		}

		return tx.Model(&models.Conversation{}).
			Where("conversation_id = ?", conversation.ConversationID).
			Updates(updates).Error
	})
}

// MarkMessagesRead handles PUT /chats/messages - zeroes the reader's unread
// counter and flips is_read on the counterpart's unread messages
func MarkMessagesRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Conversation ID and reader type are required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var conversation models.Conversation
	if err := db.Where("conversation_id = ?", req.ConversationID).First(&conversation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONVERSATION_NOT_FOUND",
				"message": "Conversation not found",
			},
		})
		return
	}

	// The reader consumes messages sent by the other side
	counterpart := models.SenderTypeShop
	counterColumn := "unread_count_customer"
	if req.ReaderType == models.SenderTypeShop {
		counterpart = models.SenderTypeCustomer
		counterColumn = "unread_count_shop"
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_type = ? AND is_read = ?", req.ConversationID, counterpart, false).
			Update("is_read", true).Error; err != nil {
			return err
		}

		return tx.Model(&models.Conversation{}).
			Where("conversation_id = ?", req.ConversationID).
			UpdateColumn(counterColumn, 0).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to mark messages as read",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Messages marked as read",
	})
}
