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

type ContactInput struct {
	ClientID string

	FirstName string
	LastName  string
	Email     string
	Phone     string

	Position   string
	Department string
	IsPrimary  bool

	Notes string

	Avatar *AvatarUpload

	ActorID string
}

type CreateContact struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewCreateContact(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *CreateContact {
	return &CreateContact{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

func (uc *CreateContact) Execute(
	ctx context.Context,
	in ContactInput,
) (*models.Contact, error) {

	// FK checada cedo: NotFound antes de qualquer escrita no asset store.
	if _, err := uc.repo.GetClientByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	swap, err := stageAvatar(ctx, uc.store, in.Avatar, "")
	if err != nil {
		return nil, err
	}

	contact := &models.Contact{
		ClientID:   in.ClientID,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      in.Phone,
		Position:   in.Position,
		Department: in.Department,
		IsPrimary:  in.IsPrimary,
		Notes:      in.Notes,
		AvatarRef:  swap.newHandle,
	}

	// O repositório limpa is_primary dos irmãos na mesma transação.
	if err := uc.repo.CreateContact(ctx, contact); err != nil {
		swap.revert(ctx)
		return nil, err
	}

	swap.finalize(ctx)
	uc.cache.Invalidate(ctx, contact.ClientID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "contact_created",
		Entity:   "contact",
		EntityID: &contact.ID,
	})

	return contact, nil
}
