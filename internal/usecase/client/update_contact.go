package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
)

type UpdateContact struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewUpdateContact(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *UpdateContact {
	return &UpdateContact{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

func (uc *UpdateContact) Execute(
	ctx context.Context,
	id string,
	in ContactInput,
) (*models.Contact, error) {

	current, err := uc.repo.GetContactByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reparenteamento: o contato pode mudar de cliente; a FK do destino é
	// checada antes do stage do avatar.
	clientID := in.ClientID
	if clientID == "" {
		clientID = current.ClientID
	}
	if clientID != current.ClientID {
		if _, err := uc.repo.GetClientByID(ctx, clientID); err != nil {
			return nil, err
		}
	}

	swap, err := stageAvatar(ctx, uc.store, in.Avatar, current.AvatarRef)
	if err != nil {
		return nil, err
	}

	contact := &models.Contact{
		ID:         current.ID,
		ClientID:   clientID,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      in.Phone,
		Position:   in.Position,
		Department: in.Department,
		IsPrimary:  in.IsPrimary,
		Notes:      in.Notes,
		AvatarRef:  swap.newHandle,
		CreatedAt:  current.CreatedAt,
	}

	if err := uc.repo.UpdateContact(ctx, contact); err != nil {
		swap.revert(ctx)
		return nil, err
	}

	swap.finalize(ctx)
	uc.cache.Invalidate(ctx, current.ClientID)
	if clientID != current.ClientID {
		uc.cache.Invalidate(ctx, clientID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "contact_updated",
		Entity:   "contact",
		EntityID: &contact.ID,
	})

	return contact, nil
}
