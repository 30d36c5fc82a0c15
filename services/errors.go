package services

import (
	"fmt"
	"strings"
)

// ValidationError indica entrada inválida do cliente; o chamador corrige e
// reenvia.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UnavailableReason diz por que um item foi recusado na validação do pedido.
// Quando mais de um motivo se aplica, vale a prioridade:
// inactive > unavailable > category_inactive.
type UnavailableReason string

const (
	ReasonInactive         UnavailableReason = "inactive"
	ReasonUnavailable      UnavailableReason = "unavailable"
	ReasonCategoryInactive UnavailableReason = "category_inactive"
)

// RejectedItem é um item do cardápio que impediu a criação do pedido.
type RejectedItem struct {
	MenuItemID uint              `json:"menu_item_id"`
	Name       string            `json:"name"`
	Reason     UnavailableReason `json:"reason"`
}

// UnavailableItemsError rejeita o pedido inteiro: nenhuma linha é gravada.
// O cliente remove os itens listados e reenvia.
type UnavailableItemsError struct {
	Items []RejectedItem
}

func (e *UnavailableItemsError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, fmt.Sprintf("%s (%s)", item.Name, item.Reason))
	}
	return "itens indisponíveis: " + strings.Join(names, ", ")
}

// NotFoundError indica que o recurso referenciado não existe.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d não encontrado", e.Resource, e.ID)
}

// StorageError embrulha falhas da camada de persistência. Fatal para a
// requisição: nada foi gravado parcialmente e nenhum retry é feito aqui.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("falha de armazenamento em %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
