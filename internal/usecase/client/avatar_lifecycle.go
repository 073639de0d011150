package client

import (
	"context"
	"log"

	"github.com/BruksfildServices01/crm-dashboard/internal/avatar"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
)

// AvatarUpload é o arquivo cru recebido pela camada HTTP.
type AvatarUpload struct {
	Data        []byte
	ContentType string
}

// ======================================================
// CICLO DE VIDA DO AVATAR
// ======================================================
//
// O banco e o asset store nunca podem discordar sobre qual handle é o
// atual. A ordem é fixa e explícita:
//
//	stage    → escreve o objeto novo ANTES de abrir a transação
//	finalize → commit ok: apaga o handle antigo (best-effort)
//	revert   → commit falhou: apaga o handle recém-escrito
//
// Assim uma linha commitada nunca aponta para handle inexistente, e um
// handle antigo só morre depois que o novo está durável.

type avatarSwap struct {
	store     storage.Store
	oldHandle string
	newHandle string
}

// stageAvatar normaliza e grava o upload no asset store. Sem upload é um
// no-op que preserva o handle atual. Se a escrita falha, nada foi tocado
// no banco ainda — o erro sobe classificado como StorageUnavailable.
func stageAvatar(
	ctx context.Context,
	store storage.Store,
	up *AvatarUpload,
	oldHandle string,
) (*avatarSwap, error) {

	swap := &avatarSwap{
		store:     store,
		oldHandle: oldHandle,
		newHandle: oldHandle,
	}

	if up == nil {
		return swap, nil
	}

	data, contentType, err := avatar.Normalize(up.Data)
	if err != nil {
		return nil, err
	}

	handle, err := store.Write(ctx, data, contentType)
	if err != nil {
		return nil, httperr.ErrStorage("avatar_write_failed", err)
	}

	swap.newHandle = handle
	return swap, nil
}

func (s *avatarSwap) staged() bool {
	return s.newHandle != s.oldHandle
}

// finalize roda depois do commit: o handle antigo virou lixo. Falha aqui
// não muda o resultado da operação — a linha já referencia o handle novo.
func (s *avatarSwap) finalize(ctx context.Context) {
	if !s.staged() || s.oldHandle == "" {
		return
	}
	if err := s.store.Delete(ctx, s.oldHandle); err != nil {
		log.Printf("avatar: failed to delete superseded handle %s: %v", s.oldHandle, err)
	}
}

// revert roda quando a transação falhou: apaga o objeto recém-escrito.
// Se o delete compensatório também falha, fica registrado como órfão
// transitório (não há varredura de reconciliação; limpeza é operacional).
func (s *avatarSwap) revert(ctx context.Context) {
	if !s.staged() {
		return
	}
	if err := s.store.Delete(ctx, s.newHandle); err != nil {
		log.Printf("avatar: orphaned handle %s after failed transaction: %v", s.newHandle, err)
	}
}

// deleteHandles apaga um conjunto de handles best-effort, um por um:
// a falha de um não impede os demais.
func deleteHandles(ctx context.Context, store storage.Store, handles []string) {
	for _, h := range handles {
		if h == "" {
			continue
		}
		if err := store.Delete(ctx, h); err != nil {
			log.Printf("avatar: failed to delete handle %s: %v", h, err)
		}
	}
}
