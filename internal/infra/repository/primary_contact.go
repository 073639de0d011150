package repository

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

// clearPrimarySiblings limpa is_primary de todos os contatos do cliente,
// exceto exceptID (vazio = nenhum). Roda SEMPRE dentro da transação que
// grava o novo primário, e ANTES dessa gravação: externamente nunca se
// observa dois primários para o mesmo cliente.
//
// Em lote ou sob concorrência a política é last-write-wins: a última
// escrita processada define o primário.
func clearPrimarySiblings(tx *gorm.DB, clientID, exceptID string) error {
	q := tx.Model(&models.Contact{}).
		Where("client_id = ? AND is_primary = ?", clientID, true)

	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	if err := q.Update("is_primary", false).Error; err != nil {
		return httperr.ErrTransaction(err)
	}
	return nil
}
