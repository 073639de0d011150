package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
)

type DeleteContact struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewDeleteContact(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *DeleteContact {
	return &DeleteContact{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

func (uc *DeleteContact) Execute(
	ctx context.Context,
	id string,
	actorID string,
) error {

	current, err := uc.repo.GetContactByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteContact(ctx, id); err != nil {
		return err
	}

	// Pós-commit: o avatar do contato virou lixo.
	deleteHandles(ctx, uc.store, []string{current.AvatarRef})
	uc.cache.Invalidate(ctx, current.ClientID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "contact_deleted",
		Entity:   "contact",
		EntityID: &id,
	})

	return nil
}
