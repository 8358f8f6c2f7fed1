package controllers

import (
	"net/http"
	"testing"

	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCustomerProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := createTestCustomer(t, db, "Ravi Kumar", "+919800006001")

	inactive := createTestCustomer(t, db, "Gone Customer", "+919800006002")
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	router := setupTestRouter()
	router.GET("/user/update-profile", GetCustomerProfile)

	w := performJSON(t, router, http.MethodGet, "/user/update-profile?userId="+customer.UserID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := parseResponse(t, w)["user"].(map[string]interface{})
	assert.Equal(t, customer.UserID, user["id"])
	assert.Equal(t, "Ravi Kumar", user["name"])
	assert.Equal(t, customer.PhoneNumber, user["phoneNumber"])

	// Inactive accounts are invisible here
	w = performJSON(t, router, http.MethodGet, "/user/update-profile?userId="+inactive.UserID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))

	w = performJSON(t, router, http.MethodGet, "/user/update-profile", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCustomerProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := createTestCustomer(t, db, "Ravi Kumar", "+919800006003")

	router := setupTestRouter()
	router.PUT("/user/update-profile", UpdateCustomerProfile)

	w := performJSON(t, router, http.MethodPut, "/user/update-profile", map[string]interface{}{
		"userId":   customer.UserID,
		"fullName": "  Ravi K  ",
		"email":    "ravi@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := parseResponse(t, w)
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "Ravi K", user["name"])
	assert.Equal(t, "ravi@example.com", user["email"])

	var stored models.Customer
	require.NoError(t, db.Where("user_id = ?", customer.UserID).First(&stored).Error)
	assert.Equal(t, "Ravi K", stored.FullName)
	assert.Equal(t, "ravi@example.com", stored.Email)
	assert.Equal(t, customer.PhoneNumber, stored.PhoneNumber, "phone number is immutable here")
}

func TestUpdateCustomerProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	customer := createTestCustomer(t, db, "Ravi Kumar", "+919800006004")

	router := setupTestRouter()
	router.PUT("/user/update-profile", UpdateCustomerProfile)

	tests := []struct {
		name           string
		payload        map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Blank full name",
			payload:        map[string]interface{}{"userId": customer.UserID, "fullName": "   "},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Missing full name",
			payload:        map[string]interface{}{"userId": customer.UserID},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Malformed email",
			payload:        map[string]interface{}{"userId": customer.UserID, "fullName": "Ravi", "email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "Unknown user",
			payload:        map[string]interface{}{"userId": "no-such-user", "fullName": "Ghost"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "USER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, router, http.MethodPut, "/user/update-profile", tt.payload)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, w))
		})
	}
}
