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

// SubmitRatingRequest represents the request body for rating a shop
type SubmitRatingRequest struct {
	ShopID        string `json:"shopId" binding:"required"`
	UserID        string `json:"userId" binding:"required"`
	RatingValue   int    `json:"ratingValue" binding:"required"`
	ReviewComment string `json:"reviewComment"`
}

// RatingWithAuthor is a rating row joined with the author's display name
type RatingWithAuthor struct {
	models.Rating
	UserName string `json:"user_name"`
}

// SubmitRating handles POST /ratings - atomic upsert keyed on
// (shop_id, user_id); a resubmission overwrites the previous value. The
// shop's aggregate rating is recomputed in the same transaction.
func SubmitRating(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Shop ID, User ID, and rating value are required",
				"details": err.Error(),
			},
		})
		return
	}

	if req.RatingValue < 1 || req.RatingValue > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Rating value must be between 1 and 5",
			},
		})
		return
	}

	db := config.GetDB()

	var shop models.Shop
	if err := db.Where("shop_id = ?", req.ShopID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}

	rating := models.Rating{
		RatingID:      uuid.New().String(),
		ShopID:        req.ShopID,
		UserID:        req.UserID,
		RatingValue:   req.RatingValue,
		ReviewComment: req.ReviewComment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating_value", "review_comment", "updated_at"}),
		}).Create(&rating).Error; err != nil {
			return err
		}

		// Keep the shop's cached aggregates consistent with the rating rows
		var agg struct {
			Average float64
			Count   int
		}
		if err := tx.Model(&models.Rating{}).
			Select("COALESCE(AVG(rating_value), 0) AS average, COUNT(*) AS count").
			Where("shop_id = ?", req.ShopID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Shop{}).
			Where("shop_id = ?", req.ShopID).
			Updates(map[string]interface{}{
				"average_rating": agg.Average,
				"total_ratings":  agg.Count,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to submit rating",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rating submitted successfully",
	})
}

// ListRatings handles GET /ratings?shopId= - all ratings for a shop with
// the author's name, newest first
func ListRatings(c *gin.Context) {
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
	var ratings []RatingWithAuthor
	err := db.Table("ratings").
		Select("ratings.*, users.full_name AS user_name").
		Joins("JOIN users ON users.user_id = ratings.user_id").
		Where("ratings.shop_id = ?", shopID).
		Order("ratings.created_at DESC").
		Scan(&ratings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get ratings",
				"details": err.Error(),
			},
		})
		return
	}

	if ratings == nil {
		ratings = []RatingWithAuthor{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ratings": ratings,
	})
}
