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

// ======================================================
// INPUT
// ======================================================

type CreateClientInput struct {
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

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	repo  domain.Repository
	store storage.Store
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	store storage.Store,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateClient) Execute(
	ctx context.Context,
	in CreateClientInput,
) (*models.Client, error) {

	// --------------------------------------------------
	// 1️⃣ Regras de domínio
	// --------------------------------------------------
	if err := domain.ValidateStatus(in.Status); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = string(domain.DefaultStatus())
	}

	// --------------------------------------------------
	// 2️⃣ Avatar: escreve no asset store ANTES da transação
	// --------------------------------------------------
	swap, err := stageAvatar(ctx, uc.store, in.Avatar, "")
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Transação
	// --------------------------------------------------
	client := &models.Client{
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
		CreatedBy:  in.ActorID,
		UpdatedBy:  in.ActorID,
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		swap.revert(ctx)
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Pós-commit (sem handle antigo no create)
	// --------------------------------------------------
	swap.finalize(ctx)
	uc.cache.Invalidate(ctx, client.ID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	return client, nil
}
