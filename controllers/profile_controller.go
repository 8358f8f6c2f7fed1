package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"gorm.io/gorm"
)

// ShopLocationInput carries the geocoordinate and structured address of a shop
type ShopLocationInput struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	FormattedAddress string   `json:"formattedAddress"`
	StreetAddress    string   `json:"streetAddress"`
	Locality         string   `json:"locality"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
	PostalCode       string   `json:"postalCode"`
	PlusCode         string   `json:"plusCode"`
}

// ShopPhotoInput is a single photo reference; order is the array index
type ShopPhotoInput struct {
	URI string `json:"uri"`
}

// CreateShopProfileRequest represents the request body for shop profile creation
type CreateShopProfileRequest struct {
	OwnerID          string             `json:"ownerId"`
	ShopName         string             `json:"shopName"`
	Description      string             `json:"description"`
	Categories       []string           `json:"categories"`
	Location         *ShopLocationInput `json:"location"`
	VisibilityRadius *float64           `json:"visibilityRadius"`
	Photos           []ShopPhotoInput   `json:"photos"`
}

// UpdateShopProfileRequest represents the request body for shop profile update.
// Scalar fields are written as sent: callers must resend every field they
// want preserved. Categories and photos, when present, are fully replaced.
type UpdateShopProfileRequest struct {
	ShopID           string             `json:"shopId"`
	ShopName         string             `json:"shopName"`
	Description      string             `json:"description"`
	Categories       *[]string          `json:"categories"`
	Location         *ShopLocationInput `json:"location"`
	VisibilityRadius *float64           `json:"visibilityRadius"`
	IsVisible        *bool              `json:"isVisible"`
	IsOnline         *bool              `json:"isOnline"`
	Photos           *[]ShopPhotoInput  `json:"photos"`
}

// shopDetails is the composed shop response: profile fields plus photos and
// categories normalized to an array of names.
type shopDetails struct {
	models.Shop
	Categories []string           `json:"categories"`
	Photos     []models.ShopPhoto `json:"photos"`
}

// loadShopDetails reads a shop with its categories and ordered photos
func loadShopDetails(db *gorm.DB, where string, param string) (*shopDetails, error) {
	var shop models.Shop
	err := db.Preload("Categories").
		Preload("Photos", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("photo_order ASC")
		}).
		Where(where, param).
		First(&shop).Error
	if err != nil {
		return nil, err
	}

	photos := shop.Photos
	if photos == nil {
		photos = []models.ShopPhoto{}
	}

	return &shopDetails{
		Shop:       shop,
		Categories: shop.CategoryNames(),
		Photos:     photos,
	}, nil
}

// resolveCategories maps category names to rows, silently dropping unknown names
func resolveCategories(db *gorm.DB, names []string) ([]models.Category, error) {
	resolved := make([]models.Category, 0, len(names))
	for _, name := range names {
		var cat models.Category
		err := db.Where("category_name = ?", name).First(&cat).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, cat)
	}
	return resolved, nil
}

// replaceShopPhotos deletes all photos of a shop and reinserts the provided
// set with fresh identifiers, order equal to array index
func replaceShopPhotos(db *gorm.DB, shopID string, photos []ShopPhotoInput) error {
	if err := db.Where("shop_id = ?", shopID).Delete(&models.ShopPhoto{}).Error; err != nil {
		return err
	}
	for i, photo := range photos {
		row := models.ShopPhoto{
			PhotoID:    uuid.New().String(),
			ShopID:     shopID,
			PhotoURL:   photo.URI,
			PhotoOrder: i,
		}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateShopProfile handles POST /shops/profile
func CreateShopProfile(c *gin.Context) {
	var req CreateShopProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.OwnerID == "" || req.ShopName == "" || req.Location == nil || len(req.Categories) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields",
			},
		})
		return
	}

	if req.Location.Latitude == nil || req.Location.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Coordinates (latitude, longitude) must be valid numbers",
			},
		})
		return
	}

	radius := 5.0
	if req.VisibilityRadius != nil {
		radius = *req.VisibilityRadius
	}

	db := config.GetDB()
	shop := models.Shop{
		ShopID:             uuid.New().String(),
		OwnerID:            req.OwnerID,
		ShopName:           req.ShopName,
		Description:        req.Description,
		Latitude:           *req.Location.Latitude,
		Longitude:          *req.Location.Longitude,
		FormattedAddress:   req.Location.FormattedAddress,
		StreetAddress:      req.Location.StreetAddress,
		Locality:           req.Location.Locality,
		City:               req.Location.City,
		State:              req.Location.State,
		Country:            req.Location.Country,
		PostalCode:         req.Location.PostalCode,
		PlusCode:           req.Location.PlusCode,
		VisibilityRadiusKm: radius,
		IsVisible:          true,
		IsOnline:           true,
	}

	if err := db.Omit("Categories", "Photos").Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create shop profile",
				"details": err.Error(),
			},
		})
		return
	}

	// Resolve category names; unknown names are skipped without failing the
	// whole operation
	cats, err := resolveCategories(db, req.Categories)
	if err == nil {
		err = db.Model(&shop).Association("Categories").Replace(&cats)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create shop profile",
				"details": err.Error(),
			},
		})
		return
	}

	if len(req.Photos) > 0 {
		if err := replaceShopPhotos(db, shop.ShopID, req.Photos); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create shop profile",
					"details": err.Error(),
				},
			})
			return
		}
	}

	details, err := loadShopDetails(db, "shop_id = ?", shop.ShopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Shop created but failed to fetch details",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Shop profile created successfully",
		"shop_id": shop.ShopID,
		"shop":    details,
	})
}

// UpdateShopProfile handles PUT /shops/profile
func UpdateShopProfile(c *gin.Context) {
	var req UpdateShopProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.ShopID == "" {
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

	// Scalar columns are written as sent. Fields omitted from the request
	// come through as zero values and overwrite the stored ones; callers
	// resend everything they want preserved.
	updates := map[string]interface{}{
		"shop_name":   req.ShopName,
		"description": req.Description,
	}
	if req.Location != nil {
		if req.Location.Latitude != nil {
			updates["latitude"] = *req.Location.Latitude
		}
		if req.Location.Longitude != nil {
			updates["longitude"] = *req.Location.Longitude
		}
		updates["formatted_address"] = req.Location.FormattedAddress
		updates["street_address"] = req.Location.StreetAddress
		updates["locality"] = req.Location.Locality
		updates["city"] = req.Location.City
		updates["state"] = req.Location.State
		updates["country"] = req.Location.Country
		updates["postal_code"] = req.Location.PostalCode
		updates["plus_code"] = req.Location.PlusCode
	}
	if req.VisibilityRadius != nil {
		updates["visibility_radius_km"] = *req.VisibilityRadius
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}
	if req.IsOnline != nil {
		updates["is_online"] = *req.IsOnline
	}

	if err := db.Model(&shop).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update shop profile",
				"details": err.Error(),
			},
		})
		return
	}

	// Categories, when provided, are fully replaced
	if req.Categories != nil {
		cats, err := resolveCategories(db, *req.Categories)
		if err == nil {
			err = db.Model(&shop).Association("Categories").Replace(&cats)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update shop categories",
					"details": err.Error(),
				},
			})
			return
		}
	}

	// Photos, when provided, are fully replaced with fresh identifiers
	if req.Photos != nil {
		if err := replaceShopPhotos(db, shop.ShopID, *req.Photos); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update shop photos",
					"details": err.Error(),
				},
			})
			return
		}
	}

	details, err := loadShopDetails(db, "shop_id = ?", shop.ShopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Shop updated but failed to fetch details",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Shop profile updated successfully",
		"shop":    details,
	})
}

// GetShopProfile handles GET /shops/profile?ownerId= | ?shopId=
func GetShopProfile(c *gin.Context) {
	ownerID := c.Query("ownerId")
	shopID := c.Query("shopId")

	if ownerID == "" && shopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Owner ID or Shop ID is required",
			},
		})
		return
	}

	where, param := "owner_id = ?", ownerID
	if shopID != "" {
		where, param = "shop_id = ?", shopID
	}

	db := config.GetDB()
	details, err := loadShopDetails(db, where, param)
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
				"message": "Failed to get shop profile",
				"details": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shop":    details,
	})
}
