package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/controllers"
	"github.com/shoplink/shoplink-api/models"
	"github.com/shoplink/shoplink-api/services"
	"github.com/shoplink/shoplink-api/tests/testutil"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ChatIntegrationTestSuite exercises the conversation and messaging flow
// between one shop and one customer through HTTP routing
type ChatIntegrationTestSuite struct {
	suite.Suite
	router   *gin.Engine
	db       *gorm.DB
	shop     models.Shop
	customer models.Customer
}

func (suite *ChatIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

func (suite *ChatIntegrationTestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())
	config.SetDB(suite.db)
	services.NewMockFileStorage().SetAsMockForTesting()

	owner := models.Owner{
		OwnerID:      uuid.New().String(),
		BusinessName: "Corner Grocery",
		PhoneNumber:  "+919830000001",
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(&owner).Error)

	suite.shop = models.Shop{
		ShopID:    uuid.New().String(),
		OwnerID:   owner.OwnerID,
		ShopName:  "Corner Grocery",
		Latitude:  12.97,
		Longitude: 77.59,
		IsVisible: true,
		IsOnline:  true,
	}
	suite.Require().NoError(suite.db.Omit("Categories", "Photos").Create(&suite.shop).Error)

	suite.customer = models.Customer{
		UserID:      uuid.New().String(),
		FullName:    "Ravi Kumar",
		PhoneNumber: "+919830000002",
		IsActive:    true,
	}
	suite.Require().NoError(suite.db.Create(&suite.customer).Error)

	suite.router = gin.New()
	suite.router.GET("/chats", controllers.ListConversations)
	suite.router.POST("/chats", controllers.CreateConversation)
	suite.router.GET("/chats/messages", controllers.ListMessages)
	suite.router.POST("/chats/messages", controllers.SendMessage)
	suite.router.PUT("/chats/messages", controllers.MarkMessagesRead)
}

func (suite *ChatIntegrationTestSuite) request(method, path string, payload interface{}) (int, map[string]interface{}) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w.Code, response
}

func (suite *ChatIntegrationTestSuite) openConversation() string {
	code, response := suite.request("POST", "/chats", map[string]interface{}{
		"shopId": suite.shop.ShopID,
		"userId": suite.customer.UserID,
	})
	suite.Require().Equal(http.StatusOK, code)
	return response["conversation_id"].(string)
}

func (suite *ChatIntegrationTestSuite) TestMessageExchange() {
	conversationID := suite.openConversation()

	code, _ := suite.request("POST", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"senderType":     "customer",
		"senderId":       suite.customer.UserID,
		"messageText":    "Do you deliver?",
	})
	suite.Require().Equal(http.StatusCreated, code)

	code, _ = suite.request("POST", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"senderType":     "shop",
		"senderId":       suite.shop.ShopID,
		"messageText":    "Within 2 km, yes",
	})
	suite.Require().Equal(http.StatusCreated, code)

	code, response := suite.request("GET", "/chats/messages?conversationId="+conversationID, nil)
	suite.Require().Equal(http.StatusOK, code)
	messages := response["messages"].([]interface{})
	suite.Require().Len(messages, 2)
	suite.Equal("Do you deliver?", messages[0].(map[string]interface{})["message_text"])
	suite.Equal("Within 2 km, yes", messages[1].(map[string]interface{})["message_text"])

	// Both sides have one unread from the other
	code, response = suite.request("GET", "/chats?shopId="+suite.shop.ShopID, nil)
	suite.Require().Equal(http.StatusOK, code)
	thread := response["conversations"].([]interface{})[0].(map[string]interface{})
	suite.Equal(float64(1), thread["unread_count_shop"])
	suite.Equal(float64(1), thread["unread_count_customer"])
	suite.Equal("Within 2 km, yes", thread["last_message"])

	// Customer reads; only the customer counter resets
	code, _ = suite.request("PUT", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"readerType":     "customer",
	})
	suite.Require().Equal(http.StatusOK, code)

	code, response = suite.request("GET", "/chats?userId="+suite.customer.UserID, nil)
	suite.Require().Equal(http.StatusOK, code)
	thread = response["conversations"].([]interface{})[0].(map[string]interface{})
	suite.Equal(float64(0), thread["unread_count_customer"])
	suite.Equal(float64(1), thread["unread_count_shop"])
}

func (suite *ChatIntegrationTestSuite) TestReopeningConversationKeepsHistory() {
	conversationID := suite.openConversation()

	code, _ := suite.request("POST", "/chats/messages", map[string]interface{}{
		"conversationId": conversationID,
		"senderType":     "customer",
		"senderId":       suite.customer.UserID,
		"messageText":    "First contact",
	})
	suite.Require().Equal(http.StatusCreated, code)

	// Opening the chat again returns the same conversation with history intact
	suite.Equal(conversationID, suite.openConversation())

	code, response := suite.request("GET", "/chats/messages?conversationId="+conversationID, nil)
	suite.Require().Equal(http.StatusOK, code)
	suite.Len(response["messages"].([]interface{}), 1)
}

func TestChatIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ChatIntegrationTestSuite))
}
