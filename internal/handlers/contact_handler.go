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

type ContactHandler struct {
	repo domain.Repository

	createUC *ucclient.CreateContact
	updateUC *ucclient.UpdateContact
	deleteUC *ucclient.DeleteContact
}

func NewContactHandler(
	repo domain.Repository,
	createUC *ucclient.CreateContact,
	updateUC *ucclient.UpdateContact,
	deleteUC *ucclient.DeleteContact,
) *ContactHandler {
	return &ContactHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

type ContactRequest struct {
	ClientID   string `json:"client_id" form:"client_id"`
	FirstName  string `json:"first_name" form:"first_name" binding:"required"`
	LastName   string `json:"last_name" form:"last_name" binding:"required"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Phone      string `json:"phone" form:"phone"`
	Position   string `json:"position" form:"position"`
	Department string `json:"department" form:"department"`
	IsPrimary  bool   `json:"is_primary" form:"is_primary"`
	Notes      string `json:"notes" form:"notes"`
}

func (r ContactRequest) toInput(actorID string, up *ucclient.AvatarUpload) ucclient.ContactInput {
	return ucclient.ContactInput{
		ClientID:   r.ClientID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Position:   r.Position,
		Department: r.Department,
		IsPrimary:  r.IsPrimary,
		Notes:      r.Notes,
		Avatar:     up,
		ActorID:    actorID,
	}
}

// ======================================================
// LIST (contatos de um cliente, primário primeiro)
// ======================================================

func (h *ContactHandler) ListByClient(c *gin.Context) {
	clientID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.repo.GetClientByID(ctx, clientID); err != nil {
		httperr.Handle(c, err)
		return
	}

	contacts, err := h.repo.ListContacts(ctx, clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_contacts", "Erro ao listar contatos.")
		return
	}

	httpresp.List(c, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.repo.GetContactByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Handle(c, err)
		return
	}
	httpresp.OK(c, contact)
}

// ======================================================
// CREATE
// ======================================================

func (h *ContactHandler) Create(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.ClientID == "" {
		httperr.BadRequest(c, "missing_client_id", "client_id é obrigatório.")
		return
	}

	up, err := readAvatarUpload(c)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(string)

	contact, err := h.createUC.Execute(c.Request.Context(), req.toInput(actorID, up))
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ContactHandler) Update(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	up, err := readAvatarUpload(c)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	actorID := c.MustGet(middleware.ContextUserID).(string)

	contact, err := h.updateUC.Execute(
		c.Request.Context(),
		c.Param("id"),
		req.toInput(actorID, up),
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, contact)
}

// ======================================================
// DELETE
// ======================================================

func (h *ContactHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id"), actorID); err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact_deleted"})
}
