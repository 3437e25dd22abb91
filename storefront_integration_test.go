package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/router"
	"github.com/zaikahouse/storefront/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 0. Seed owner, customer and menu; log both in -> tokens
// 1. Customer builds a cart over HTTP
// 2. Checkout (CASH, dine-in) => order PLACED, cart cleared
// 3. Owner drives the order through the kitchen queue to COMPLETED
// 4. Cash order settles as PAID on completion
// 5. Customer reorders the completed order back into the cart
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db)

	customerToken := loginTest(t, r, "asha@example.com")
	ownerToken := loginTest(t, r, "owner@example.com")

	buildCartTest(t, r, customerToken)

	orderID := checkoutTest(t, r, customerToken)

	kitchenQueueTest(t, r, ownerToken, orderID)

	reorderTest(t, r, customerToken, orderID)
}

// setupTestDB -> in-memory SQLite + seed data
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	})
	db.Create(&models.User{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleOwner,
	})

	db.Create(&models.MenuCategory{Name: "Mains"})
	db.Create(&models.Menu{
		CategoryID:  1,
		Name:        "Paneer Butter Masala",
		PricingType: models.PricingHalfFull,
		PriceHalf:   130,
		PriceFull:   240,
		IsAvailable: true,
	})

	return db
}

func loginTest(t *testing.T, r *gin.Engine, email string) string {
	body := map[string]string{
		"email":    email,
		"password": "secret123",
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Token == "" {
		t.Fatalf("loginTest: token empty, msg=%s", resp.Message)
	}

	return resp.Data.Token
}

// buildCartTest -> two full portions into the cart
func buildCartTest(t *testing.T, r *gin.Engine, token string) {
	for i := 0; i < 2; i++ {
		body := map[string]interface{}{
			"menu_id": 1,
			"variant": "FULL",
		}
		bodyBytes, _ := json.Marshal(body)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("buildCartTest: code=%d, body=%s", w.Code, w.Body.String())
		}
	}
}

// checkoutTest -> POST /checkout => 201, PLACED, cart emptied
func checkoutTest(t *testing.T, r *gin.Engine, token string) uint {
	bodyData := map[string]interface{}{
		"order_type":       models.OrderTypeDineIn,
		"number_of_people": 2,
		"scheduled_time":   time.Now().Add(2 * time.Hour).Format(time.RFC3339),
		"payment_method":   models.PaymentCash,
	}
	bodyBytes, _ := json.Marshal(bodyData)

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkoutTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			ID            uint    `json:"id"`
			Status        string  `json:"status"`
			PaymentStatus string  `json:"payment_status"`
			TotalAmount   float64 `json:"total_amount"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != models.OrderStatusPlaced {
		t.Fatalf("checkoutTest: expected status PLACED, got %s", resp.Data.Status)
	}
	if resp.Data.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("checkoutTest: cash order must stay PENDING, got %s", resp.Data.PaymentStatus)
	}
	// 480 plus 5% tax
	if resp.Data.TotalAmount != 504.0 {
		t.Fatalf("checkoutTest: expected total 504, got %v", resp.Data.TotalAmount)
	}

	// Cart must be empty now
	reqCart := httptest.NewRequest(http.MethodGet, "/cart", nil)
	reqCart.Header.Set("Authorization", "Bearer "+token)
	wCart := httptest.NewRecorder()
	r.ServeHTTP(wCart, reqCart)

	var cartResp struct {
		Data struct {
			TotalItems int `json:"total_items"`
		} `json:"data"`
	}
	json.Unmarshal(wCart.Body.Bytes(), &cartResp)
	if cartResp.Data.TotalItems != 0 {
		t.Fatalf("checkoutTest: cart should be empty, has %d items", cartResp.Data.TotalItems)
	}

	return resp.Data.ID
}

// kitchenQueueTest -> owner walks the order to COMPLETED; cash settles
func kitchenQueueTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	reqQueue := httptest.NewRequest(http.MethodGet, "/owner/orders", nil)
	reqQueue.Header.Set("Authorization", "Bearer "+token)
	wQueue := httptest.NewRecorder()
	r.ServeHTTP(wQueue, reqQueue)
	if wQueue.Code != http.StatusOK {
		t.Fatalf("kitchenQueueTest GET: code=%d, body=%s", wQueue.Code, wQueue.Body.String())
	}

	var queueResp struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(wQueue.Body.Bytes(), &queueResp)
	if len(queueResp.Data) != 1 || queueResp.Data[0].ID != orderID {
		t.Fatalf("kitchenQueueTest: order %d not in queue, body=%s", orderID, wQueue.Body.String())
	}

	for _, next := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
	} {
		bodyBytes, _ := json.Marshal(map[string]string{"status": next})
		req := httptest.NewRequest(http.MethodPut,
			"/owner/orders/"+intToString(orderID)+"/status", bytes.NewBuffer(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("kitchenQueueTest: transition to %s failed: code=%d, body=%s",
				next, w.Code, w.Body.String())
		}
	}

	// Last transition response carries the settled payment
	bodyBytes, _ := json.Marshal(map[string]string{"status": models.OrderStatusConfirmed})
	req := httptest.NewRequest(http.MethodPut,
		"/owner/orders/"+intToString(orderID)+"/status", bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("kitchenQueueTest: completed order must not move again, code=%d", w.Code)
	}
}

// reorderTest -> completed order comes back into the cart at live prices
func reorderTest(t *testing.T, r *gin.Engine, token string, orderID uint) {
	req := httptest.NewRequest(http.MethodPost,
		"/orders/"+intToString(orderID)+"/reorder", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("reorderTest: code=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool `json:"status"`
		Data   struct {
			Added int `json:"added"`
			Cart  struct {
				TotalItems int     `json:"total_items"`
				TotalPrice float64 `json:"total_price"`
			} `json:"cart"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Added != 2 {
		t.Fatalf("reorderTest: expected 2 units restored, got %d", resp.Data.Added)
	}
	if resp.Data.Cart.TotalItems != 2 || resp.Data.Cart.TotalPrice != 480.0 {
		t.Fatalf("reorderTest: unexpected cart %+v", resp.Data.Cart)
	}
}

func intToString(num uint) string {
	return strconv.FormatUint(uint64(num), 10)
}

// TestGlobalRateLimit proves the per-IP limiter actually covers registered
// routes: the 51st request inside the window is turned away.
func TestGlobalRateLimit(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db)

	var last int
	for i := 0; i < 51; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected request 51 to be rate limited, got %d", last)
	}
}
