package handlers

import (
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	service *service.StreamService
}

func NewStreamHandler(service *service.StreamService) *StreamHandler {
	return &StreamHandler{service: service}
}

// GetTicket prepares a download and returns the ticket needed by GetLink
func (h *StreamHandler) GetTicket(c *gin.Context) {
	ticket, err := h.service.Ticket(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// GetLink resolves a ticket into a direct download link
func (h *StreamHandler) GetLink(c *gin.Context) {
	var q domain.DownloadLinkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.service.Link(c.Request.Context(), q.FileID, q.Ticket, q.CaptchaResponse)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// GetInfo checks up to 100 comma-separated file ids
func (h *StreamHandler) GetInfo(c *gin.Context) {
	var q domain.FileInfoQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.service.Info(c.Request.Context(), q.FileIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
