package controllers

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"github.com/shoplink/shoplink-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceholderImageURL is returned for shops without any photo
const PlaceholderImageURL = "https://via.placeholder.com/300x200"

// searchResult is a shop search hit: profile fields plus a representative
// image, categories as an array, and the distance when geosearch ran.
type searchResult struct {
	models.Shop
	Categories []string `json:"categories"`
	Image      string   `json:"image"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// GetShop handles GET /shops/:id - shop details with a best-effort view
// count increment
func GetShop(c *gin.Context) {
	shopID := c.Param("id")
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
	details, err := loadShopDetails(db, "shop_id = ?", shopID)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHOP_NOT_FOUND",
				"message": "Shop not found",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get shop details",
				"details": err.Error(),
			},
		})
		return
	}

	// Fire-and-forget: a failed increment is logged, never surfaced
	go incrementShopViews(db, shopID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shop":    details,
	})
}

// incrementShopViews bumps the shop's lifetime view counter and upserts the
// per-day row backing the dashboard's views-today figure
func incrementShopViews(db *gorm.DB, shopID string) {
	if err := db.Model(&models.Shop{}).
		Where("shop_id = ?", shopID).
		UpdateColumn("total_views", gorm.Expr("total_views + 1")).Error; err != nil {
		log.Printf("Failed to increment view count for shop %s: %v", shopID, err)
		return
	}

	today := time.Now().Format("2006-01-02")
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}, {Name: "view_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count": gorm.Expr("view_count + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&models.ShopView{
		ShopID:    shopID,
		ViewDate:  today,
		ViewCount: 1,
	}).Error
	if err != nil {
		log.Printf("Failed to record daily view for shop %s: %v", shopID, err)
	}
}

// NearbyShops handles GET /shops/nearby - radius search when coordinates
// are given, otherwise a rating-ordered listing of discoverable shops
func NearbyShops(c *gin.Context) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	category := c.DefaultQuery("category", "All")

	radius := 10.0
	if radiusStr := c.Query("radius"); radiusStr != "" {
		if parsed, err := strconv.ParseFloat(radiusStr, 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}

	db := config.GetDB()

	// Both paths only ever see discoverable shops
	query := db.Model(&models.Shop{}).
		Where("shops.is_visible = ? AND shops.is_online = ?", true, true).
		Preload("Categories").
		Preload("Photos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("photo_order ASC")
		})

	if category != "" && category != "All" {
		query = query.
			Select("shops.*").
			Joins("JOIN shop_categories ON shop_categories.shop_id = shops.shop_id").
			Joins("JOIN categories ON categories.category_id = shop_categories.category_id").
			Where("categories.category_name = ?", category)
	}

	// Fallback listing when either coordinate is absent
	if latStr == "" || lonStr == "" {
		var shops []models.Shop
		if err := query.Order("shops.average_rating DESC, shops.created_at DESC").Find(&shops).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to search shops",
					"details": err.Error(),
				},
			})
			return
		}

		results := make([]searchResult, 0, len(shops))
		for i := range shops {
			results = append(results, newSearchResult(&shops[i], nil))
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"shops":   results,
			"count":   len(results),
		})
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Latitude and longitude must be valid numbers",
			},
		})
		return
	}

	var candidates []models.Shop
	if err := query.Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to search shops",
				"details": err.Error(),
			},
		})
		return
	}

	results := make([]searchResult, 0, len(candidates))
	for i := range candidates {
		shop := &candidates[i]
		distance := utils.HaversineKm(lat, lon, shop.Latitude, shop.Longitude)
		if distance > radius {
			continue
		}
		rounded := utils.RoundKm(distance)
		results = append(results, newSearchResult(shop, &rounded))
	}

	sort.Slice(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shops":   results,
		"count":   len(results),
	})
}

// newSearchResult shapes a shop row for search responses: representative
// photo (lowest order, placeholder when none) and normalized categories
func newSearchResult(shop *models.Shop, distanceKm *float64) searchResult {
	image := PlaceholderImageURL
	if len(shop.Photos) > 0 {
		image = shop.Photos[0].PhotoURL
	}

	return searchResult{
		Shop:       *shop,
		Categories: shop.CategoryNames(),
		Image:      image,
		DistanceKm: distanceKm,
	}
}
