package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// Login -> a barraca usa uma senha única de admin; acertou, ganha um token
// de sessão no cookie (o painel) e no corpo (scripts).
func (ac *AdminController) Login(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !utils.CheckAdminPassword(body.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("senha incorreta"))
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// 24h, igual à validade do token
	c.SetCookie("admin_auth", token, 60*60*24, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Login efetuado", gin.H{"token": token})
}

// Logout -> invalida o token atual e limpa o cookie
func (ac *AdminController) Logout(c *gin.Context) {
	if token, exists := c.Get("token"); exists {
		utils.BlacklistToken(token.(string))
	}
	c.SetCookie("admin_auth", "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Logout efetuado", nil)
}

// GetDashboardStats -> números do painel admin (poll de 5-10s): contagem
// por status, pedidos ativos e faturamento do dia.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		TotalOrders    int64            `json:"total_orders"`
		ActiveOrders   int64            `json:"active_orders"`
		CountsByStatus map[string]int64 `json:"counts_by_status"`
		RevenueToday   float64          `json:"revenue_today"`
	}
	stats.CountsByStatus = make(map[string]int64)

	if err := ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := ac.DB.Model(&models.Order{}).
		Where("status IN ?", models.ActiveStatuses()).
		Count(&stats.ActiveOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := ac.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for _, row := range rows {
		stats.CountsByStatus[row.Status] = row.Count
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	if err := ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status != ?", startOfDay, models.StatusAwaitingPayment).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.RevenueToday).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Estatísticas do painel", stats)
}
