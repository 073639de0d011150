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

type UpdateClientInput struct {
	ID string

	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
	Status     string
	Notes      string
	Website    string

	Avatar *AvatarUpload

	ActorID string
}

type UpdateClient struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	in UpdateClientInput,
) (*models.Client, error) {

	if err := domain.ValidateStatus(in.Status); err != nil {
		return nil, err
	}

	// Carrega o estado atual: H_old, createdBy e createdAt vêm daqui.
	current, err := uc.repo.GetClientByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = current.Status
	}

	swap, err := stageAvatar(ctx, uc.store, in.Avatar, current.AvatarRef)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		ID:         current.ID,
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      in.Phone,
		Address:    in.Address,
		City:       in.City,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		Status:     status,
		Notes:      in.Notes,
		Website:    in.Website,
		AvatarRef:  swap.newHandle,
		CreatedBy:  current.CreatedBy,
		UpdatedBy:  in.ActorID,
		CreatedAt:  current.CreatedAt,
	}

	if err := uc.repo.UpdateClient(ctx, client); err != nil {
		swap.revert(ctx)
		return nil, err
	}

	swap.finalize(ctx)
	uc.cache.Invalidate(ctx, client.ID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	return client, nil
}
