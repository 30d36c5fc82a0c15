package services

import (
	"sort"

	"github.com/andrelmbraga/barraquinha/models"
)

// ComputeQueue monta a fila do barman a partir dos pedidos informados.
// Primeiro os "em preparo" (o que está sendo feito agora), depois os
// "ficha entregue" (aguardando vez), cada grupo do mais antigo para o mais
// novo pelo updated_at, ou seja, por quando o pedido ENTROU no status atual,
// não por quando foi criado. Um pedido devolvido para a fila conta como
// recém-chegado.
//
// Função pura: o display consome o índice 0 como "atual" e o 1 como
// "próximo", e recalcula a cada poll.
func ComputeQueue(orders []models.Order) []models.Order {
	var inPreparation, waiting []models.Order
	for _, order := range orders {
		switch order.Status {
		case models.StatusInPreparation:
			inPreparation = append(inPreparation, order)
		case models.StatusVoucherDelivered:
			waiting = append(waiting, order)
		}
	}

	byStatusEntry := func(group []models.Order) {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].UpdatedAt.Before(group[j].UpdatedAt)
		})
	}
	byStatusEntry(inPreparation)
	byStatusEntry(waiting)

	queue := make([]models.Order, 0, len(inPreparation)+len(waiting))
	queue = append(queue, inPreparation...)
	queue = append(queue, waiting...)
	return queue
}
