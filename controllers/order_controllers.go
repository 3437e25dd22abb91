package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/cart"
	"github.com/zaikahouse/storefront/live"
	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/services"
	"github.com/zaikahouse/storefront/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Carts    *cart.Manager
	Payments *services.PaymentService
}

func NewOrderController(db *gorm.DB, carts *cart.Manager, payments *services.PaymentService) *OrderController {
	return &OrderController{DB: db, Carts: carts, Payments: payments}
}

// Checkout assembles the caller's cart into an order, runs the simulated
// payment step and persists the result. The cart is cleared only after the
// order is safely stored; any failure leaves it untouched.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		OrderType      string     `json:"order_type" binding:"required"`
		NumberOfPeople int        `json:"number_of_people"`
		ScheduledTime  *time.Time `json:"scheduled_time"`
		PaymentMethod  string     `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := oc.Carts.Get(userID)
	order, err := cart.Assemble(store, cart.OrderMeta{
		OrderType:      req.OrderType,
		NumberOfPeople: req.NumberOfPeople,
		ScheduledTime:  req.ScheduledTime,
		PaymentMethod:  req.PaymentMethod,
	}, userID)
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	status, err := oc.Payments.Process(c.Request.Context(), order.PaymentMethod)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}
	order.PaymentStatus = status
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	if err := oc.DB.Create(order).Error; err != nil {
		// Payload discarded, cart stays as it was.
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	store.Clear()

	notification := models.Notification{
		Message:   fmt.Sprintf("New order #%d (%s) for %s", order.ID, order.Reference, utils.FormatCurrencyINR(order.TotalAmount)),
		CreatedAt: time.Now(),
	}
	if err := oc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Error storing notification for order %d: %v", order.ID, err)
	}

	live.BroadcastOrderUpdate(*order)
	live.BroadcastOwnerNotification(notification.Message)

	utils.InfoLogger.Printf("Order %d placed by user %d (%s, %s)",
		order.ID, userID, order.OrderType, order.PaymentStatus)

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders -> the customer's order history, newest first. Customers poll
// this endpoint to track status.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("customer_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// CancelOrder -> customer cancels an order the kitchen has not confirmed yet
func (oc *OrderController) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Where("customer_id = ?", userID).
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !order.CanBeCancelledByCustomer() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order in status %s can no longer be cancelled", order.Status))
		return
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastOrderUpdate(order)
	live.BroadcastOwnerNotification(fmt.Sprintf("Order #%d cancelled by customer", order.ID))

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// GetKitchenQueue -> owner view of every order still moving through the
// kitchen, oldest first.
func (oc *OrderController) GetKitchenQueue(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("status IN ?", []string{
			models.OrderStatusPlaced,
			models.OrderStatusConfirmed,
			models.OrderStatusPreparing,
			models.OrderStatusReady,
		}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen queue", orders)
}

// validTransitions is the kitchen state machine the owner drives.
var validTransitions = map[string][]string{
	models.OrderStatusPlaced:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady},
	models.OrderStatusReady:     {models.OrderStatusCompleted},
}

// UpdateOrderStatus -> owner moves an order through the queue; a CASH order
// is marked paid when it completes.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	allowed := false
	for _, next := range validTransitions[order.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot move order from %s to %s", order.Status, req.Status))
		return
	}

	order.Status = req.Status
	if req.Status == models.OrderStatusCompleted && order.PaymentMethod == models.PaymentCash {
		order.PaymentStatus = models.PaymentStatusPaid
	}
	order.UpdatedAt = time.Now()

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastOrderUpdate(order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetDashboardStats -> owner dashboard numbers
func (oc *OrderController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Placed    int64 `json:"placed"`
			Confirmed int64 `json:"confirmed"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Completed int64 `json:"completed"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
	}

	oc.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	oc.DB.Model(&models.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.TodayOrders)

	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPlaced).Count(&stats.OrderStats.Placed)
	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.OrderStats.Confirmed)
	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPreparing).Count(&stats.OrderStats.Preparing)
	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusReady).Count(&stats.OrderStats.Ready)
	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted).Count(&stats.OrderStats.Completed)
	oc.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	oc.DB.Model(&models.Order{}).Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)
	oc.DB.Model(&models.Order{}).
		Where("payment_status = ? AND DATE(created_at) = ?", models.PaymentStatusPaid, today).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TodayRevenue)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetNotifications -> owner's unread feed, newest first
func (oc *OrderController) GetNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := oc.DB.Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}
