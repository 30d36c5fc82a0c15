package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/utils"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// OrderLineRequest é uma linha do pedido como enviada pelo cliente. O preço
// unitário vem do cardápio que o cliente estava vendo e fica congelado no
// pedido.
type OrderLineRequest struct {
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Note       string  `json:"note"`
}

// CreateOrder valida e grava o pedido inteiro em uma transação: ou o pedido
// com todas as linhas entra, ou nada entra.
//
// Se qualquer item referenciado não for vendável, o pedido todo é recusado
// com a lista de itens e motivos; cabe ao cliente removê-los e reenviar.
func (s *OrderService) CreateOrder(clientName, note string, lines []OrderLineRequest) (*models.Order, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, NewValidationError("nome do cliente é obrigatório")
	}
	if len(lines) == 0 {
		return nil, NewValidationError("pedido precisa de ao menos um item")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, NewValidationError("quantidade inválida para o item %d", line.MenuItemID)
		}
		if line.UnitPrice < 0 {
			return nil, NewValidationError("preço inválido para o item %d", line.MenuItemID)
		}
	}

	// Busca todos os itens referenciados de uma vez
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	var menuItems []models.MenuItem
	if err := s.DB.Preload("Category").Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return nil, &StorageError{Op: "buscar itens do cardápio", Err: err}
	}
	itemsByID := make(map[uint]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		itemsByID[item.ID] = item
	}

	var rejected []RejectedItem
	seen := make(map[uint]bool)
	for _, line := range lines {
		if seen[line.MenuItemID] {
			continue
		}
		seen[line.MenuItemID] = true

		item, ok := itemsByID[line.MenuItemID]
		if !ok {
			// Linha sumida do cardápio é indistinguível de item desativado
			rejected = append(rejected, RejectedItem{MenuItemID: line.MenuItemID, Reason: ReasonInactive})
			continue
		}
		if reason, ok := rejectionReason(&item); ok {
			rejected = append(rejected, RejectedItem{MenuItemID: item.ID, Name: item.Name, Reason: reason})
		}
	}
	if len(rejected) > 0 {
		return nil, &UnavailableItemsError{Items: rejected}
	}

	// Total congelado a partir dos preços enviados; nunca recalculado depois
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}

	now := time.Now()
	order := models.Order{
		ClientName: clientName,
		Note:       note,
		Total:      total,
		Status:     models.StatusInitial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			Note:       line.Note,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return recordEvent(tx, &order, models.EventOrderCreated)
	})
	if err != nil {
		utils.ErrorLogger.Printf("erro ao criar pedido de %s: %v", clientName, err)
		return nil, &StorageError{Op: "criar pedido", Err: err}
	}

	utils.InfoLogger.Printf("pedido #%d criado para %s, total %s",
		order.ID, order.ClientName, utils.FormatCurrencyBRL(order.Total))
	return &order, nil
}

// rejectionReason avalia o invariante de vendabilidade e devolve o motivo
// prioritário quando mais de um se aplica.
func rejectionReason(item *models.MenuItem) (UnavailableReason, bool) {
	if !item.Active {
		return ReasonInactive, true
	}
	if !item.Available || item.SoldOut {
		return ReasonUnavailable, true
	}
	if item.CategoryID != nil && (item.Category == nil || !item.Category.Active || !item.Category.Visible) {
		return ReasonCategoryInactive, true
	}
	return "", false
}

// SetStatus troca o status do pedido. Qualquer status enumerado é aceito,
// inclusive transições "para trás"; só a pertinência ao enum é validada.
// O updated_at marca quando o pedido entrou no status novo, e é por ele que
// a fila do barman ordena.
func (s *OrderService) SetStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, NewValidationError("status inválido: %s", status)
	}

	var order models.Order
	if err := s.DB.Preload("Items").Preload("Items.MenuItem").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "pedido", ID: orderID}
		}
		return nil, &StorageError{Op: "buscar pedido", Err: err}
	}

	order.Status = status
	order.UpdatedAt = time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return recordEvent(tx, &order, models.EventOrderStatusChanged)
	})
	if err != nil {
		utils.ErrorLogger.Printf("erro ao atualizar status do pedido #%d: %v", orderID, err)
		return nil, &StorageError{Op: "atualizar status", Err: err}
	}

	utils.InfoLogger.Printf("pedido #%d agora em %s", order.ID, order.Status)
	return &order, nil
}

// DeleteOrder remove o pedido e, em cascata, suas linhas. Repetir a remoção
// de um id já removido é not-found, não é idempotente por contrato.
func (s *OrderService) DeleteOrder(orderID uint) error {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "pedido", ID: orderID}
		}
		return &StorageError{Op: "buscar pedido", Err: err}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}
		return recordEvent(tx, &order, models.EventOrderDeleted)
	})
	if err != nil {
		return &StorageError{Op: "remover pedido", Err: err}
	}

	utils.InfoLogger.Printf("pedido #%d removido", orderID)
	return nil
}

// GetOrder devolve um pedido com as linhas e itens do cardápio carregados.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").Preload("Items.MenuItem").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "pedido", ID: orderID}
		}
		return nil, &StorageError{Op: "buscar pedido", Err: err}
	}
	return &order, nil
}

// BarmanQueue lê os pedidos ativos e monta a fila de trabalho. Recalculada
// do estado persistido a cada poll, nunca cacheada.
func (s *OrderService) BarmanQueue() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items").Preload("Items.MenuItem").
		Where("status IN ?", models.QueueStatuses()).
		Find(&orders).Error; err != nil {
		return nil, &StorageError{Op: "buscar fila do barman", Err: err}
	}
	return ComputeQueue(orders), nil
}
