package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-dashboard/internal/audit"
	"github.com/BruksfildServices01/crm-dashboard/internal/cache"
	"github.com/BruksfildServices01/crm-dashboard/internal/config"
	"github.com/BruksfildServices01/crm-dashboard/internal/handlers"
	infraRepo "github.com/BruksfildServices01/crm-dashboard/internal/infra/repository"
	"github.com/BruksfildServices01/crm-dashboard/internal/middleware"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
	ucClient "github.com/BruksfildServices01/crm-dashboard/internal/usecase/client"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.Store, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(db)
	clientCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — CLIENT AGGREGATE
	// ======================================================
	createClientUC := ucClient.NewCreateClient(clientRepo, store, clientCache, auditDispatcher)
	updateClientUC := ucClient.NewUpdateClient(clientRepo, store, clientCache, auditDispatcher)
	deleteClientUC := ucClient.NewDeleteClient(clientRepo, store, clientCache, auditDispatcher)

	createBillingUC := ucClient.NewCreateBillingInfo(clientRepo, clientCache, auditDispatcher)
	updateBillingUC := ucClient.NewUpdateBillingInfo(clientRepo, clientCache, auditDispatcher)
	deleteBillingUC := ucClient.NewDeleteBillingInfo(clientRepo, clientCache, auditDispatcher)

	createContactUC := ucClient.NewCreateContact(clientRepo, store, clientCache, auditDispatcher)
	updateContactUC := ucClient.NewUpdateContact(clientRepo, store, clientCache, auditDispatcher)
	deleteContactUC := ucClient.NewDeleteContact(clientRepo, store, clientCache, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(
		clientRepo,
		clientCache,
		createClientUC,
		updateClientUC,
		deleteClientUC,
	)

	contactHandler := handlers.NewContactHandler(
		clientRepo,
		createContactUC,
		updateContactUC,
		deleteContactUC,
	)

	billingHandler := handlers.NewBillingHandler(
		clientRepo,
		createBillingUC,
		updateBillingUC,
		deleteBillingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// LEITURAS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.GET("/clients/:id/contacts", contactHandler.ListByClient)
			secured.GET("/clients/:id/billing", billingHandler.GetByClient)
			secured.GET("/contacts/:id", contactHandler.Get)

			// ------------------------------
			// MUTAÇÕES (admin-only, checado ANTES do use case)
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.POST("/clients", clientHandler.Create)
				admin.PUT("/clients/:id", clientHandler.Update)
				admin.DELETE("/clients/:id", clientHandler.Delete)

				admin.POST("/contacts", contactHandler.Create)
				admin.PUT("/contacts/:id", contactHandler.Update)
				admin.DELETE("/contacts/:id", contactHandler.Delete)

				admin.POST("/billing", billingHandler.Create)
				admin.PUT("/billing/:id", billingHandler.Update)
				admin.DELETE("/billing/:id", billingHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
