package handlers

import (
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

type RemoteHandler struct {
	service *service.RemoteService
}

func NewRemoteHandler(service *service.RemoteService) *RemoteHandler {
	return &RemoteHandler{service: service}
}

// AddRemoteUpload queues a file from a remote URL. The job runs upstream;
// poll GetStatus for progress.
func (h *RemoteHandler) AddRemoteUpload(c *gin.Context) {
	var req domain.AddRemoteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// RemoveRemoteUpload cancels an upload; "all" cancels every upload
func (h *RemoteHandler) RemoveRemoteUpload(c *gin.Context) {
	resp, err := h.service.Remove(c.Request.Context(), c.Param("upload_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RemoteHandler) GetStatus(c *gin.Context) {
	var q domain.RemoteStatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	statuses, err := h.service.Status(c.Request.Context(), q.ID, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}
