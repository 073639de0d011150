package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/httpresp"
	"github.com/BruksfildServices01/crm-dashboard/internal/middleware"
	ucclient "github.com/BruksfildServices01/crm-dashboard/internal/usecase/client"
)

type BillingHandler struct {
	repo domain.Repository

	createUC *ucclient.CreateBillingInfo
	updateUC *ucclient.UpdateBillingInfo
	deleteUC *ucclient.DeleteBillingInfo
}

func NewBillingHandler(
	repo domain.Repository,
	createUC *ucclient.CreateBillingInfo,
	updateUC *ucclient.UpdateBillingInfo,
	deleteUC *ucclient.DeleteBillingInfo,
) *BillingHandler {
	return &BillingHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

type BillingInfoRequest struct {
	ClientID         string `json:"client_id"`
	CompanyName      string `json:"company_name"`
	VatNumber        string `json:"vat_number"`
	FiscalAddress    string `json:"fiscal_address"`
	FiscalCity       string `json:"fiscal_city"`
	FiscalPostalCode string `json:"fiscal_postal_code"`
	FiscalCountry    string `json:"fiscal_country"`
	PaymentMethod    string `json:"payment_method"`
	BankAccount      string `json:"bank_account"`
	BankName         string `json:"bank_name"`
	SwiftBic         string `json:"swift_bic"`
	Notes            string `json:"notes"`
}

func (r BillingInfoRequest) toInput(actorID string) ucclient.BillingInfoInput {
	return ucclient.BillingInfoInput{
		ClientID:         r.ClientID,
		CompanyName:      r.CompanyName,
		VatNumber:        r.VatNumber,
		FiscalAddress:    r.FiscalAddress,
		FiscalCity:       r.FiscalCity,
		FiscalPostalCode: r.FiscalPostalCode,
		FiscalCountry:    r.FiscalCountry,
		PaymentMethod:    r.PaymentMethod,
		BankAccount:      r.BankAccount,
		BankName:         r.BankName,
		SwiftBic:         r.SwiftBic,
		Notes:            r.Notes,
		ActorID:          actorID,
	}
}

// ======================================================
// GET (por cliente)
// ======================================================

func (h *BillingHandler) GetByClient(c *gin.Context) {
	clientID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.repo.GetClientByID(ctx, clientID); err != nil {
		httperr.Handle(c, err)
		return
	}

	billing, err := h.repo.GetBillingInfoByClient(ctx, clientID)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, billing)
}

// ======================================================
// CREATE (Conflict se o cliente já tem billing)
// ======================================================

func (h *BillingHandler) Create(c *gin.Context) {
	var req BillingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.ClientID == "" {
		httperr.BadRequest(c, "missing_client_id", "client_id é obrigatório.")
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(string)

	billing, err := h.createUC.Execute(c.Request.Context(), req.toInput(actorID))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusCreated, billing)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BillingHandler) Update(c *gin.Context) {
	var req BillingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(string)

	billing, err := h.updateUC.Execute(
		c.Request.Context(),
		c.Param("id"),
		req.toInput(actorID),
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, billing)
}

// ======================================================
// DELETE
// ======================================================

func (h *BillingHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id"), actorID); err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "billing_info_deleted"})
}
