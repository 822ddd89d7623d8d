package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	app "assetmapper/src/app"
	cfg "assetmapper/src/configuration"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(config *cfg.Properties, handler *AppHandler, importHandler *ImportHandler, verifier TokenVerifier, registry *prometheus.Registry) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if config.Server.Pprof {
		pprof.Register(router)
	}

	router.GET("/health", handler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/assets", handler.GetAssetList)
	router.GET("/assets/*path", handler.GetAsset)

	write := router.Group("/", RequireToken(verifier))
	write.POST("/assets", handler.PostAsset)
	write.PUT("/assets/*path", handler.PutAsset)
	write.POST("/import", importHandler.PostImport)

	router.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
	return router
}

// RunServer wires the mapper, import source and token verifier from config
// and serves the gateway until it fails.
func RunServer(config *cfg.Properties) error {
	registry := prometheus.NewRegistry()
	client, err := app.NewInstrumentedClient(config.Assets.Timeout, registry)
	if err != nil {
		return err
	}
	mapper, err := app.NewAssetMapperFromProperties(config, client)
	if err != nil {
		return err
	}

	importHandler := NewImportHandler(nil)
	if config.S3.Enabled() {
		clientS3, err := app.NewMinioS3Client(
			config.S3.Host,
			config.S3.AccessKey,
			config.S3.SecretKey,
			config.S3.Bucket,
			config.S3.UseSSL)
		if err != nil {
			return err
		}
		importHandler = NewImportHandler(app.NewImporter(mapper, clientS3))
	}

	verifier, err := NewTokenVerifier(context.Background(), config)
	if err != nil {
		return err
	}

	router := NewRouter(config, NewHandler(mapper), importHandler, verifier, registry)
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", config.Server.Port),
		Handler:     router,
		ReadTimeout: config.Server.ReadTimeout,
	}
	log.Printf("asset gateway for %s (%s protocol) listening on %s",
		mapper.ServerURL(), mapper.Protocol().Name, server.Addr)
	return server.ListenAndServe()
}
