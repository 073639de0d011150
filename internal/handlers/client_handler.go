package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	domain "github.com/BruksfildServices01/crm-dashboard/internal/domain/client"
	"github.com/BruksfildServices01/crm-dashboard/internal/dto"
	"github.com/BruksfildServices01/crm-dashboard/internal/httperr"
	"github.com/BruksfildServices01/crm-dashboard/internal/httpresp"
	"github.com/BruksfildServices01/crm-dashboard/internal/middleware"
	ucclient "github.com/BruksfildServices01/crm-dashboard/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	repo  domain.Repository
	cache *cache.ClientCache

	createUC *ucclient.CreateClient
	updateUC *ucclient.UpdateClient
	deleteUC *ucclient.DeleteClient
}

func NewClientHandler(
	repo domain.Repository,
	cache *cache.ClientCache,
	createUC *ucclient.CreateClient,
	updateUC *ucclient.UpdateClient,
	deleteUC *ucclient.DeleteClient,
) *ClientHandler {
	return &ClientHandler{
		repo:     repo,
		cache:    cache,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUEST
// ======================================================

// ClientRequest é usado no create e no update (mesmo schema, como o
// validador original). Chega como JSON ou como campos de multipart
// quando há upload de avatar.
type ClientRequest struct {
	Name       string `json:"name" form:"name" binding:"required"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Phone      string `json:"phone" form:"phone"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	PostalCode string `json:"postal_code" form:"postal_code"`
	Country    string `json:"country" form:"country"`
	Status     string `json:"status" form:"status"`
	Notes      string `json:"notes" form:"notes"`
	Website    string `json:"website" form:"website"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	clients, err := h.repo.ListClients(c.Request.Context(), query)
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	out := make([]dto.ClientListDTO, 0, len(clients))
	for _, cl := range clients {
		out = append(out, dto.ClientListDTO{
			ID:        cl.ID,
			Name:      cl.Name,
			Email:     cl.Email,
			Phone:     cl.Phone,
			Status:    cl.Status,
			AvatarRef: cl.AvatarRef,
			CreatedAt: cl.CreatedAt,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// GET (agregado completo, com cache)
// ======================================================

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if client, ok := h.cache.GetAggregate(ctx, id); ok {
		httpresp.OK(c, client)
		return
	}

	client, err := h.repo.GetClientAggregate(ctx, id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	h.cache.SetAggregate(ctx, client)
	httpresp.OK(c, client)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
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

	client, err := h.createUC.Execute(c.Request.Context(), ucclient.CreateClientInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Status:     req.Status,
		Notes:      req.Notes,
		Website:    req.Website,
		Avatar:     up,
		ActorID:    actorID,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
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

	client, err := h.updateUC.Execute(c.Request.Context(), ucclient.UpdateClientInput{
		ID:         c.Param("id"),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Status:     req.Status,
		Notes:      req.Notes,
		Website:    req.Website,
		Avatar:     up,
		ActorID:    actorID,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// DELETE (cascade + limpeza de assets)
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id"), actorID); err != nil {
		httperr.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "client_deleted"})
}
