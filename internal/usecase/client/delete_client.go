package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
)

type DeleteClient struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewDeleteClient(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

func (uc *DeleteClient) Execute(
	ctx context.Context,
	id string,
	actorID string,
) error {

	// --------------------------------------------------
	// 1️⃣ Coleta os handles ANTES da transação
	// --------------------------------------------------
	agg, err := uc.repo.GetClientAggregate(ctx, id)
	if err != nil {
		return err
	}

	handles := []string{agg.AvatarRef}
	for _, contact := range agg.Contacts {
		handles = append(handles, contact.AvatarRef)
	}

	// --------------------------------------------------
	// 2️⃣ Cascade em uma transação (filhos antes do pai)
	// --------------------------------------------------
	if err := uc.repo.DeleteClientCascade(ctx, id); err != nil {
		// Transação falhou: nenhum asset é tocado.
		return err
	}

	// --------------------------------------------------
	// 3️⃣ Pós-commit: apaga os assets, um a um, best-effort
	// --------------------------------------------------
	deleteHandles(ctx, uc.store, handles)
	uc.cache.Invalidate(ctx, id)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &id,
	})

	return nil
}
