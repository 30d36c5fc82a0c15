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

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories -> categorias ativas em ordem de exibição;
// ?include_inactive=true para o painel admin.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	query := cc.DB.Order("display_order asc")
	if c.Query("include_inactive") != "true" {
		query = query.Where("active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categorias", categories)
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Category
	if err := cc.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("já existe uma categoria com esse nome"))
		return
	}

	category := models.Category{
		Name:         body.Name,
		Description:  body.Description,
		DisplayOrder: body.DisplayOrder,
		Active:       true,
		Visible:      true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Categoria criada", category)
}

// UpdateCategory -> update parcial, incluindo as flags active/visible que
// escondem a categoria inteira do cardápio.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
		Active       *bool   `json:"active"`
		Visible      *bool   `json:"visible"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil && *body.Name != category.Name {
		var existing models.Category
		if err := cc.DB.Where("name = ? AND id != ?", *body.Name, category.ID).First(&existing).Error; err == nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("já existe uma categoria com esse nome"))
			return
		}
		category.Name = *body.Name
	}
	if body.Description != nil {
		category.Description = *body.Description
	}
	if body.DisplayOrder != nil {
		category.DisplayOrder = *body.DisplayOrder
	}
	if body.Active != nil {
		category.Active = *body.Active
	}
	if body.Visible != nil {
		category.Visible = *body.Visible
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Categoria atualizada", category)
}

// DeleteCategory -> recusa enquanto houver item apontando para ela
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var itemCount int64
	if err := cc.DB.Model(&models.MenuItem{}).
		Where("category_id = ?", category.ID).
		Count(&itemCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if itemCount > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("não é possível remover categoria que possui itens"))
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categoria removida", gin.H{"category_id": id})
}
