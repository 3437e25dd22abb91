package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaikahouse/storefront/live"
	"github.com/zaikahouse/storefront/models"
	"github.com/zaikahouse/storefront/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAvailableMenus -> the customer-facing catalog, available items only
func (mc *MenuController) GetAvailableMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").
		Where("is_available = ?", true).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetAllMenus -> owner view, includes unavailable items
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> detail of one item
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Preload("Category").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	PricingType string  `json:"pricing_type" binding:"required"`
	Price       float64 `json:"price"`
	PriceHalf   float64 `json:"price_half"`
	PriceFull   float64 `json:"price_full"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
}

func (r *menuRequest) validate() error {
	switch r.PricingType {
	case models.PricingSingle:
		if r.Price <= 0 {
			return errors.New("single priced items need a positive price")
		}
	case models.PricingHalfFull:
		if r.PriceHalf <= 0 || r.PriceFull <= 0 {
			return errors.New("half/full priced items need both prices")
		}
	default:
		return fmt.Errorf("unknown pricing type %q", r.PricingType)
	}
	return nil
}

// CreateMenu -> owner adds a catalog item
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		PricingType: req.PricingType,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	// Only the active pricing variant's fields are stored.
	if req.PricingType == models.PricingSingle {
		menu.Price = req.Price
	} else {
		menu.PriceHalf = req.PriceHalf
		menu.PriceFull = req.PriceFull
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMenuUpdate(menu)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> owner edits an item; prices of the inactive variant reset
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu.CategoryID = req.CategoryID
	menu.Name = req.Name
	menu.Description = req.Description
	menu.PricingType = req.PricingType
	menu.ImageURL = req.ImageURL
	menu.Price = 0
	menu.PriceHalf = 0
	menu.PriceFull = 0
	if req.PricingType == models.PricingSingle {
		menu.Price = req.Price
	} else {
		menu.PriceHalf = req.PriceHalf
		menu.PriceFull = req.PriceFull
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}
	menu.UpdatedAt = time.Now()

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMenuUpdate(menu)
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// SetAvailability -> owner toggles the 86 flag without editing the item
func (mc *MenuController) SetAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu.IsAvailable = *req.IsAvailable
	menu.UpdatedAt = time.Now()
	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastMenuUpdate(menu)
	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", menu)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	if err := mc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
