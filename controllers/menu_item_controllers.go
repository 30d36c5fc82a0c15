package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/utils"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

// GetAllMenuItems -> cardápio público. Por default só itens vendáveis;
// ?include_unavailable=true (admin) traz tudo. ?category= filtra.
// Ordenação: ordem da categoria, destaque, sugestão do chef, nome.
func (mc *MenuItemController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Preload("Category").
		Joins("LEFT JOIN categories ON categories.id = menu_items.category_id").
		Order("categories.display_order asc, menu_items.featured desc, menu_items.chefs_pick desc, menu_items.name asc")

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := strconv.Atoi(categoryStr)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("categoria inválida"))
			return
		}
		query = query.Where("menu_items.category_id = ?", categoryID)
	}

	if c.Query("include_unavailable") != "true" {
		query = query.Where("menu_items.active = ? AND menu_items.available = ? AND menu_items.sold_out = ?", true, true, false).
			Where("menu_items.category_id IS NULL OR (categories.active = ? AND categories.visible = ?)", true, true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Itens do cardápio", items)
}

// CreateMenuItem
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	var body struct {
		CategoryID  *uint   `json:"category_id"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		ImageUrl    *string `json:"image_url"`
		Price       float64 `json:"price"`
		IsNew       bool    `json:"is_new"`
		Featured    bool    `json:"featured"`
		ChefsPick   bool    `json:"chefs_pick"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("preço não pode ser negativo"))
		return
	}

	if body.CategoryID != nil {
		var category models.Category
		if err := mc.DB.First(&category, *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("categoria não existe"))
			return
		}
	}

	item := models.MenuItem{
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Description: body.Description,
		ImageUrl:    body.ImageUrl,
		Price:       body.Price,
		Active:      true,
		Available:   true,
		IsNew:       body.IsNew,
		Featured:    body.Featured,
		ChefsPick:   body.ChefsPick,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Item criado", item)
}

// GetMenuItemByID
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.Preload("Category").First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Detalhe do item", item)
}

// UpdateMenuItem -> update parcial; é por aqui que o admin liga/desliga as
// flags de disponibilidade (esgotado, acabando, novidade...).
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item não encontrado"))
		return
	}

	var body struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		ImageUrl    *string  `json:"image_url"`
		Price       *float64 `json:"price"`
		Active      *bool    `json:"active"`
		Available   *bool    `json:"available"`
		SoldOut     *bool    `json:"sold_out"`
		LowStock    *bool    `json:"low_stock"`
		IsNew       *bool    `json:"is_new"`
		Featured    *bool    `json:"featured"`
		ChefsPick   *bool    `json:"chefs_pick"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CategoryID != nil {
		var category models.Category
		if err := mc.DB.First(&category, *body.CategoryID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("categoria não existe"))
			return
		}
		item.CategoryID = body.CategoryID
	}
	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.ImageUrl != nil {
		item.ImageUrl = body.ImageUrl
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("preço não pode ser negativo"))
			return
		}
		item.Price = *body.Price
	}
	if body.Active != nil {
		item.Active = *body.Active
	}
	if body.Available != nil {
		item.Available = *body.Available
	}
	if body.SoldOut != nil {
		item.SoldOut = *body.SoldOut
	}
	if body.LowStock != nil {
		item.LowStock = *body.LowStock
	}
	if body.IsNew != nil {
		item.IsNew = *body.IsNew
	}
	if body.Featured != nil {
		item.Featured = *body.Featured
	}
	if body.ChefsPick != nil {
		item.ChefsPick = *body.ChefsPick
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item atualizado", item)
}

// DeleteMenuItem -> guarda de integridade referencial explícita: item já
// referenciado por alguma linha de pedido vira inativo em vez de sumir;
// item nunca pedido é removido de verdade.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("item não encontrado"))
		return
	}

	var referenced int64
	if err := mc.DB.Model(&models.OrderItem{}).
		Where("menu_item_id = ?", item.ID).
		Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if referenced > 0 {
		item.Active = false
		if err := mc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item desativado pois já aparece em pedidos", item)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removido", gin.H{"item_id": id})
}
