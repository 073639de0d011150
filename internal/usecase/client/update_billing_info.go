package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

type UpdateBillingInfo struct {
	repo  domain.Repository
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewUpdateBillingInfo(
	repo domain.Repository,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *UpdateBillingInfo {
	return &UpdateBillingInfo{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *UpdateBillingInfo) Execute(
	ctx context.Context,
	id string,
	in BillingInfoInput,
) (*models.BillingInfo, error) {

	if err := domain.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return nil, err
	}

	current, err := uc.repo.GetBillingInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clientID := in.ClientID
	if clientID == "" {
		clientID = current.ClientID
	}

	method := in.PaymentMethod
	if method == "" {
		method = current.PaymentMethod
	}

	billing := &models.BillingInfo{
		ID:               current.ID,
		ClientID:         clientID,
		CompanyName:      in.CompanyName,
		VatNumber:        in.VatNumber,
		FiscalAddress:    in.FiscalAddress,
		FiscalCity:       in.FiscalCity,
		FiscalPostalCode: in.FiscalPostalCode,
		FiscalCountry:    in.FiscalCountry,
		PaymentMethod:    method,
		BankAccount:      in.BankAccount,
		BankName:         in.BankName,
		SwiftBic:         in.SwiftBic,
		Notes:            in.Notes,
		CreatedAt:        current.CreatedAt,
	}

	if err := uc.repo.UpdateBillingInfo(ctx, billing); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, current.ClientID)
	if clientID != current.ClientID {
		uc.cache.Invalidate(ctx, clientID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "billing_info_updated",
		Entity:   "billing_info",
		EntityID: &billing.ID,
	})

	return billing, nil
}
