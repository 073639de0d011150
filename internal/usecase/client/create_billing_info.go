package client

import (
	"context"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/models"
)

type BillingInfoInput struct {
	ClientID string

	CompanyName string
	VatNumber   string

	FiscalAddress    string
	FiscalCity       string
	FiscalPostalCode string
	FiscalCountry    string

	PaymentMethod string
	BankAccount   string
	BankName      string
	SwiftBic      string

	Notes string

	ActorID string
}

type CreateBillingInfo struct {
	repo  domain.Repository
	cache *cache.ClientCache
	audit *audit.Dispatcher
}

func NewCreateBillingInfo(
	repo domain.Repository,
	cache *cache.ClientCache,
	audit *audit.Dispatcher,
) *CreateBillingInfo {
	return &CreateBillingInfo{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute cria o BillingInfo do cliente. NotFound/Conflict são detectados
// dentro da transação do repositório; não há asset envolvido.
func (uc *CreateBillingInfo) Execute(
	ctx context.Context,
	in BillingInfoInput,
) (*models.BillingInfo, error) {

	if err := domain.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return nil, err
	}

	method := in.PaymentMethod
	if method == "" {
		method = string(domain.DefaultPaymentMethod())
	}

	billing := &models.BillingInfo{
		ClientID:         in.ClientID,
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
	}

	if err := uc.repo.CreateBillingInfo(ctx, billing); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, billing.ClientID)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "billing_info_created",
		Entity:   "billing_info",
		EntityID: &billing.ID,
	})

	return billing, nil
}
