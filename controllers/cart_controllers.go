package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/cart"
	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/utils"
)

// GormMenuFetcher adapts the catalog table to the reconciler's view of the
// menu service.
type GormMenuFetcher struct {
	DB *gorm.DB
}

func (f *GormMenuFetcher) FetchAvailableMenu(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := f.DB.WithContext(ctx).
		Where("is_available = ?", true).
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}

type CartController struct {
	DB         *gorm.DB
	Carts      *cart.Manager
	Reconciler *cart.Reconciler
}

func NewCartController(db *gorm.DB, carts *cart.Manager) *CartController {
	return &CartController{
		DB:         db,
		Carts:      carts,
		Reconciler: cart.NewReconciler(&GormMenuFetcher{DB: db}),
	}
}

// cartPayload is the response shape for every cart endpoint, lines plus the
// derived totals.
func cartPayload(store *cart.Store) gin.H {
	return gin.H{
		"lines":       store.Lines(),
		"total_items": store.TotalItems(),
		"total_price": store.TotalPrice(),
	}
}

// GetCart -> the caller's cart with totals
func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", cartPayload(cc.Carts.Get(userID)))
}

// AddItem -> add one unit of (menu_id, variant) to the cart
func (cc *CartController) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		MenuID  uint   `json:"menu_id" binding:"required"`
		Variant string `json:"variant"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	variant := cart.Variant(req.Variant)
	if req.Variant == "" {
		variant = cart.VariantSingle
	}
	if !variant.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("variant must be SINGLE, HALF or FULL"))
		return
	}

	var menu models.Menu
	if err := cc.DB.Preload("Category").First(&menu, req.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !menu.IsAvailable {
		utils.RespondError(c, http.StatusConflict, errors.New("this item is currently unavailable"))
		return
	}

	store := cc.Carts.Get(userID)
	store.Add(menu, variant)

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", cartPayload(store))
}

// UpdateItem -> adjust the quantity of a line by delta
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		MenuID  uint   `json:"menu_id" binding:"required"`
		Variant string `json:"variant" binding:"required"`
		Delta   int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store := cc.Carts.Get(userID)
	store.UpdateQuantity(req.MenuID, cart.Variant(req.Variant), req.Delta)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cartPayload(store))
}

// RemoveItem -> drop an item; ?variant= narrows to one line
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	store := cc.Carts.Get(userID)
	store.Remove(uint(menuID), cart.Variant(c.Query("variant")))

	utils.RespondJSON(c, http.StatusOK, "Item removed", cartPayload(store))
}

// ClearCart
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	store := cc.Carts.Get(userID)
	store.Clear()

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cartPayload(store))
}

// Reorder rebuilds the cart from a past order against the live menu. Items
// that were removed or are unavailable are skipped; everything that is still
// orderable comes back at today's prices.
func (cc *CartController) Reorder(c *gin.Context) {
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
	if err := cc.DB.Preload("OrderItems").
		Where("customer_id = ?", userID).
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	store := cc.Carts.Get(userID)
	added, err := cc.Reconciler.Reorder(c.Request.Context(), store, order)
	if err != nil {
		if errors.Is(err, cart.ErrReorderInFlight) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		// Menu fetch failed; the cart was left untouched.
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	if added == 0 {
		utils.RespondJSON(c, http.StatusOK, "These items are no longer available", gin.H{
			"added": 0,
			"cart":  cartPayload(store),
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reorder items added to cart", gin.H{
		"added": added,
		"cart":  cartPayload(store),
	})
}
