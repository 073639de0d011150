package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/crm-dashboard/internal/config"
	dbpkg "github.com/BruksfildServices01/crm-dashboard/internal/db"
	"github.com/BruksfildServices01/crm-dashboard/internal/routes"
	"github.com/BruksfildServices01/crm-dashboard/internal/storage"
)

func main() {

	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	store := newStore(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, store, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config) storage.Store {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(storage.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "local":
		return storage.NewLocalStore(cfg.UploadDir)
	default:
		log.Fatalf("unknown storage driver: %s", cfg.StorageDriver)
		return nil
	}
}
