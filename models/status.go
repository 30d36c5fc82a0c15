package models

// OrderStatus é o ciclo de vida fixo do pedido nesta instalação:
// awaiting_payment -> voucher_delivered -> in_preparation -> ready -> delivered.
// A troca de status não exige adjacência; a equipe corrige erros pulando ou
// voltando estados livremente.
type OrderStatus string

const (
	StatusAwaitingPayment  OrderStatus = "awaiting_payment"
	StatusVoucherDelivered OrderStatus = "voucher_delivered"
	StatusInPreparation    OrderStatus = "in_preparation"
	StatusReady            OrderStatus = "ready"
	StatusDelivered        OrderStatus = "delivered"
)

// StatusInitial é o status de todo pedido recém-criado.
const StatusInitial = StatusAwaitingPayment

var validStatuses = map[OrderStatus]bool{
	StatusAwaitingPayment:  true,
	StatusVoucherDelivered: true,
	StatusInPreparation:    true,
	StatusReady:            true,
	StatusDelivered:        true,
}

// ValidStatus reporta se s é um dos status enumerados.
func ValidStatus(s OrderStatus) bool {
	return validStatuses[s]
}

// QueueStatuses são os status que aparecem na fila do barman: o que está
// sendo feito agora (in_preparation) e o que espera vez (voucher_delivered).
// Pedidos aguardando pagamento ainda não chegaram ao balcão; prontos e
// entregues já saíram da fila.
func QueueStatuses() []OrderStatus {
	return []OrderStatus{StatusInPreparation, StatusVoucherDelivered}
}

// ActiveStatuses são os status de pedidos ainda em andamento (tudo menos
// entregue), usados nos filtros do painel administrativo.
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{
		StatusAwaitingPayment,
		StatusVoucherDelivered,
		StatusInPreparation,
		StatusReady,
	}
}
