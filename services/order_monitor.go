package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/live"
	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/utils"
)

// How long an unpaid ONLINE order may sit before the sweep expires it.
const onlinePaymentGrace = 30 * time.Minute

// OrderMonitor periodically expires stale unpaid online orders and pushes a
// kitchen queue refresh to connected owner dashboards.
type OrderMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewOrderMonitor(db *gorm.DB) *OrderMonitor {
	return &OrderMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 15 * time.Second,
	}
}

func (om *OrderMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.sweep()
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OrderMonitor) Stop() {
	close(om.StopChan)
}

func (om *OrderMonitor) sweep() {
	om.expireStaleOrders()
	om.broadcastKitchenQueue()
	utils.CleanupBlacklist()
}

// expireStaleOrders cancels ONLINE orders whose simulated payment never
// settled. Each expired order is broadcast so the customer's view updates.
func (om *OrderMonitor) expireStaleOrders() {
	cutoff := time.Now().Add(-onlinePaymentGrace)

	var stale []models.Order
	if err := om.DB.
		Where("payment_method = ? AND payment_status = ? AND status = ? AND created_at < ?",
			models.PaymentOnline, models.PaymentStatusPending, models.OrderStatusPlaced, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("Error fetching stale orders: %v", err)
		return
	}

	for _, order := range stale {
		order.Status = models.OrderStatusExpired
		order.UpdatedAt = time.Now()
		if err := om.DB.Save(&order).Error; err != nil {
			log.Printf("Error expiring order %d: %v", order.ID, err)
			continue
		}
		log.Printf("Expired unpaid order %d (%s)", order.ID, order.Reference)
		live.BroadcastOrderUpdate(order)
	}
}

func (om *OrderMonitor) broadcastKitchenQueue() {
	var active []models.Order
	if err := om.DB.Preload("OrderItems").
		Where("status IN ?", []string{
			models.OrderStatusPlaced,
			models.OrderStatusConfirmed,
			models.OrderStatusPreparing,
			models.OrderStatusReady,
		}).
		Order("created_at asc").
		Find(&active).Error; err != nil {
		log.Printf("Error fetching kitchen queue: %v", err)
		return
	}

	live.BroadcastKitchenUpdate(active)
}
