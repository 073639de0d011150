package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
)

type DeleteBillingInfo struct {
	repo  domain.Repository
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewDeleteBillingInfo(
	repo domain.Repository,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *DeleteBillingInfo {
	return &DeleteBillingInfo{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *DeleteBillingInfo) Execute(
	ctx context.Context,
	id string,
	actorID string,
) error {

	current, err := uc.repo.GetBillingInfoByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteBillingInfo(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, current.ClientID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "billing_info_deleted",
		Entity:   "billing_info",
		EntityID: &id,
	})

	return nil
}
