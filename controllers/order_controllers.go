package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/services"
	"github.com/andrelmbraga/barraquinha/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Service: services.NewOrderService(db)}
}

// respondServiceError traduz a taxonomia de erros do serviço para HTTP.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var unavailableErr *services.UnavailableItemsError
	if errors.As(err, &unavailableErr) {
		utils.RespondErrorData(c, http.StatusConflict, err, gin.H{
			"unavailable_items": unavailableErr.Items,
		})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	// StorageError e o resto: falha genérica, sem vazar detalhe do banco
	utils.ErrorLogger.Printf("erro interno: %v", err)
	utils.RespondError(c, http.StatusInternalServerError, errors.New("erro interno do servidor"))
}

// CreateOrder -> cria o pedido com todas as linhas (status inicial
// awaiting_payment). Pedido com item indisponível é recusado inteiro.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		ClientName string                      `json:"client_name" binding:"required"`
		Note       string                      `json:"note"`
		Items      []services.OrderLineRequest `json:"items" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.CreateOrder(body.ClientName, body.Note, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Pedido criado", order)
}

// GetOrderByID -> detalhe de 1 pedido (página de acompanhamento do cliente)
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id de pedido inválido"))
		return
	}

	order, serr := oc.Service.GetOrder(uint(id))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Detalhe do pedido", order)
}

// GetOrderStatus -> payload enxuto para o poll de 30s da página do cliente
func (oc *OrderController) GetOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id de pedido inválido"))
		return
	}

	order, serr := oc.Service.GetOrder(uint(id))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status do pedido", gin.H{
		"id":         order.ID,
		"status":     order.Status,
		"updated_at": order.UpdatedAt,
	})
}

// GetAllOrders -> lista para o painel admin, mais novos primeiro.
// ?status= filtra por um status; ?active=true esconde os entregues.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Items.MenuItem").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		if !models.ValidStatus(models.OrderStatus(status)) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("status inválido"))
			return
		}
		query = query.Where("status = ?", status)
	} else if c.Query("active") == "true" {
		query = query.Where("status IN ?", models.ActiveStatuses())
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Lista de pedidos", orders)
}

// UpdateOrderStatus -> equipe move o pedido de status. Qualquer status do
// enum é aceito, inclusive voltar um pedido para a fila.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id de pedido inválido"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, serr := oc.Service.SetStatus(uint(id), models.OrderStatus(body.Status))
	if serr != nil {
		respondServiceError(c, serr)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status atualizado", order)
}

// DeleteOrder -> admin remove o pedido (cascata nas linhas)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id de pedido inválido"))
		return
	}

	if serr := oc.Service.DeleteOrder(uint(id)); serr != nil {
		respondServiceError(c, serr)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pedido removido", gin.H{"order_id": id})
}

// GetBarmanQueue -> fila de trabalho do balcão, consumida no poll de 2s.
// Em preparo primeiro, depois a fila de espera, FIFO por entrada no status.
func (oc *OrderController) GetBarmanQueue(c *gin.Context) {
	queue, err := oc.Service.BarmanQueue()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Fila do barman", queue)
}

// GetOrderFeed -> changefeed com cursor para os painéis detectarem pedidos
// novos sem comparar snapshots.
func (oc *OrderController) GetOrderFeed(c *gin.Context) {
	after := 0
	if raw := c.Query("after"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("cursor inválido"))
			return
		}
		after = parsed
	}

	feed, err := oc.Service.Feed(uint(after))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Feed de pedidos", feed)
}
