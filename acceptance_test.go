package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doJSON drives the full router with a JSON request and decodes the response
func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "response should be JSON: %s", w.Body.String())
	return w.Code, response
}

// TestServerStartup verifies the router wires up without a running server
func TestServerStartup(t *testing.T) {
	config.SetDB(openTestDB(t))
	router := setupRouter()
	assert.NotNil(t, router, "Router should be initialized")
}

// TestDirectoryJourneyAcceptance walks the paths a real owner and customer
// take: registration, shop setup, discovery, chat, rating and dashboards.
func TestDirectoryJourneyAcceptance(t *testing.T) {
	db := openTestDB(t)
	config.SetDB(db)
	require.NoError(t, seedCategories(db))
	services.NewMockFileStorage().SetAsMockForTesting()

	router := setupRouter()

	// Owner signs up and opens a shop
	code, response := doJSON(t, router, "POST", "/auth/register-owner", map[string]interface{}{
		"businessName": "Corner Grocery",
		"ownerName":    "Asha Rao",
		"phoneNumber":  "+919810000001",
	})
	require.Equal(t, http.StatusCreated, code)
	ownerID := response["owner_id"].(string)

	code, response = doJSON(t, router, "POST", "/shops/profile", map[string]interface{}{
		"ownerId":     ownerID,
		"shopName":    "Corner Grocery",
		"description": "Daily essentials and fresh bread",
		"categories":  []string{"Grocery", "Bakery"},
		"location": map[string]interface{}{
			"latitude":  12.9716,
			"longitude": 77.5946,
			"city":      "Bengaluru",
		},
		"photos": []map[string]interface{}{{"uri": "https://cdn.example.com/front.jpg"}},
	})
	require.Equal(t, http.StatusCreated, code)
	shopID := response["shop_id"].(string)

	// Customer signs up and logs in
	code, response = doJSON(t, router, "POST", "/auth/register-user", map[string]interface{}{
		"fullName":    "Ravi Kumar",
		"phoneNumber": "+919810000002",
	})
	require.Equal(t, http.StatusCreated, code)
	userID := response["user_id"].(string)

	code, response = doJSON(t, router, "POST", "/auth/login", map[string]interface{}{
		"phoneNumber": "+919810000002",
		"userType":    "customer",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, userID, response["user"].(map[string]interface{})["id"])

	// Customer finds the shop nearby
	code, response = doJSON(t, router, "GET", "/shops/nearby?latitude=12.9716&longitude=77.5946&radius=5", nil)
	require.Equal(t, http.StatusOK, code)
	shops := response["shops"].([]interface{})
	require.Len(t, shops, 1)
	hit := shops[0].(map[string]interface{})
	assert.Equal(t, shopID, hit["shop_id"])
	assert.Equal(t, "https://cdn.example.com/front.jpg", hit["image"])

	// Customer opens a conversation and sends a text message
	code, response = doJSON(t, router, "POST", "/chats", map[string]interface{}{
		"shopId": shopID,
		"userId": userID,
	})
	require.Equal(t, http.StatusOK, code)
	conversationID := response["conversation_id"].(string)

	code, _ = doJSON(t, router, "POST", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"senderType":     "customer",
		"senderId":       userID,
		"messageText":    "Do you have sourdough?",
	})
	require.Equal(t, http.StatusCreated, code)

	// and a document
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("conversationId", conversationID))
	require.NoError(t, writer.WriteField("senderType", "customer"))
	require.NoError(t, writer.WriteField("senderId", userID))
	part, err := writer.CreateFormFile("file", "shopping-list.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("bread, milk, eggs"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/chats/messages", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The shop sees the thread and reads it
	code, response = doJSON(t, router, "GET", "/chats?shopId="+shopID, nil)
	require.Equal(t, http.StatusOK, code)
	conversations := response["conversations"].([]interface{})
	require.Len(t, conversations, 1)
	thread := conversations[0].(map[string]interface{})
	assert.Equal(t, "Ravi Kumar", thread["customer_name"])
	assert.Equal(t, float64(2), thread["unread_count_shop"])

	code, _ = doJSON(t, router, "PUT", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"readerType":     "shop",
	})
	require.Equal(t, http.StatusOK, code)

	// Customer rates the shop
	code, _ = doJSON(t, router, "POST", "/ratings", map[string]interface{}{
		"shopId":        shopID,
		"userId":        userID,
		"ratingValue":   5,
		"reviewComment": "Great sourdough",
	})
	require.Equal(t, http.StatusOK, code)

	code, response = doJSON(t, router, "GET", "/ratings?shopId="+shopID, nil)
	require.Equal(t, http.StatusOK, code)
	ratings := response["ratings"].([]interface{})
	require.Len(t, ratings, 1)
	assert.Equal(t, "Ravi Kumar", ratings[0].(map[string]interface{})["user_name"])

	// Both dashboards reflect the activity
	code, response = doJSON(t, router, "GET", "/dashboard?shopId="+shopID, nil)
	require.Equal(t, http.StatusOK, code)
	stats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalChats"])
	assert.Equal(t, float64(5), stats["averageRating"])

	code, response = doJSON(t, router, "GET", "/user/dashboard?userId="+userID, nil)
	require.Equal(t, http.StatusOK, code)
	userStats := response["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), userStats["totalChats"])
	assert.Equal(t, float64(1), userStats["totalRatings"])
	assert.Equal(t, float64(0), userStats["unreadMessages"], "shop's read does not consume the customer counter; customer has none unread")
}
