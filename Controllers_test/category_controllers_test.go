package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/controllers"
	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/utils"
)

func setupTestDBForCategories(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:ctrlcat_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Category{}, &models.MenuItem{})
	require.NoError(t, err)
	return db
}

func setupCategoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	categoryCtrl := controllers.NewCategoryController(db)
	router.GET("/categories", categoryCtrl.GetAllCategories)
	router.POST("/categories", categoryCtrl.CreateCategory)
	router.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
	router.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	return router
}

func TestCategoryCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)
	router := setupCategoryRouter(db)

	w := doJSON(t, router, "POST", "/categories", map[string]interface{}{
		"name":          "Drinks",
		"description":   "Coquetéis da casa",
		"display_order": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	catID := int(resp["data"].(map[string]interface{})["id"].(float64))

	// Nome duplicado é recusado
	w = doJSON(t, router, "POST", "/categories", map[string]interface{}{"name": "Drinks"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Esconder a categoria do cardápio
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/categories/%d", catID),
		map[string]interface{}{"visible": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["data"].(map[string]interface{})["visible"])

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/categories/%d", catID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/categories/%d", catID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryWithItemsIsRefused(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)
	router := setupCategoryRouter(db)

	category := models.Category{Name: "Drinks", Active: true, Visible: true}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.MenuItem{
		CategoryID: &category.ID, Name: "Caipirinha", Price: 13, Active: true, Available: true,
	}).Error)

	w := doJSON(t, router, "DELETE", fmt.Sprintf("/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetCategoriesFiltersInactive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForCategories(t)
	router := setupCategoryRouter(db)

	require.NoError(t, db.Create(&models.Category{Name: "Drinks", DisplayOrder: 2, Active: true, Visible: true}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Lanches", DisplayOrder: 1, Active: true, Visible: true}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Antiga", DisplayOrder: 3, Active: false, Visible: false}).Error)

	w := doJSON(t, router, "GET", "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	categories := resp["data"].([]interface{})
	require.Len(t, categories, 2)
	// Ordenadas pela ordem de exibição
	assert.Equal(t, "Lanches", categories[0].(map[string]interface{})["name"])
	assert.Equal(t, "Drinks", categories[1].(map[string]interface{})["name"])

	w = doJSON(t, router, "GET", "/categories?include_inactive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 3)
}
