// internal/api/api.go
package api

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/streamtape-gateway/internal/api/handlers"
	"github.com/andresuchdata/streamtape-gateway/internal/api/middleware"
	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/metrics"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var registerOnce sync.Once

func NewRouter(services *service.Services, m *metrics.Metrics, allowedOrigins []string) *gin.Engine {
	registerOnce.Do(registerBindingValidations)

	router := gin.New()

	// Metrics wraps Recovery so panicking requests are still counted as 500s.
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.Recovery(),
		cors.New(corsConfig(allowedOrigins)),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if services == nil {
		return router
	}

	if services.Files != nil {
		fsHandler := handlers.NewFSHandler(services.Files)
		fsGroup := router.Group("/fs")
		{
			fsGroup.GET("/list", fsHandler.ListFolder)

			fsGroup.POST("/folders/create", fsHandler.CreateFolder)
			fsGroup.PATCH("/folders/rename/:folder_id", fsHandler.RenameFolder)
			fsGroup.DELETE("/folders/delete/:folder_id", fsHandler.DeleteFolder)

			fsGroup.PATCH("/files/rename/:file_id", fsHandler.RenameFile)
			fsGroup.PATCH("/files/move/:file_id", fsHandler.MoveFile)
			fsGroup.DELETE("/files/delete/:file_id", fsHandler.DeleteFile)
			fsGroup.GET("/files/thumbnail/:file_id", fsHandler.GetThumbnail)
		}
	}

	if services.Remote != nil {
		remoteHandler := handlers.NewRemoteHandler(services.Remote)
		remoteGroup := router.Group("/remote")
		{
			remoteGroup.POST("/add", remoteHandler.AddRemoteUpload)
			remoteGroup.DELETE("/remove/:upload_id", remoteHandler.RemoveRemoteUpload)
			remoteGroup.GET("/status", remoteHandler.GetStatus)
		}
	}

	if services.Stream != nil {
		streamHandler := handlers.NewStreamHandler(services.Stream)
		streamGroup := router.Group("/stream")
		{
			streamGroup.GET("/ticket/:file_id", streamHandler.GetTicket)
			streamGroup.GET("/link", streamHandler.GetLink)
			streamGroup.GET("/info", streamHandler.GetInfo)
		}
	}

	if services.Upload != nil {
		uploadHandler := handlers.NewUploadHandler(services.Upload)
		router.Group("/upload").GET("/url", uploadHandler.GetUploadURL)
	}

	return router
}

// registerBindingValidations adds the custom rules to gin's validator and
// makes field errors use the wire name instead of the Go field name.
func registerBindingValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Warn().Msg("gin binding engine is not go-playground/validator; custom rules not registered")
		return
	}
	if err := domain.RegisterValidations(v); err != nil {
		log.Error().Err(err).Msg("failed to register binding validations")
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.Split(field.Tag.Get(tag), ",")[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
}

// corsConfig allows the configured origins, or local dev frontends when none
// are set. The gateway has no cookies or auth of its own, so credentialed
// requests are never allowed.
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins, allowAll := normalizeAllowedOrigins(allowedOrigins)
	switch {
	case allowAll:
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
	case len(origins) > 0:
		cfg.AllowOrigins = origins
	}
	return cfg
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
