package handlers

import (
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// GetUploadURL returns a one-time URL; the file itself must be POSTed to it
// as multipart/form-data by the client.
func (h *UploadHandler) GetUploadURL(c *gin.Context) {
	var q domain.UploadURLQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	upload, err := h.service.URL(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}
