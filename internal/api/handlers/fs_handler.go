package handlers

import (
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/gin-gonic/gin"
)

type FSHandler struct {
	service *service.FileService
}

func NewFSHandler(service *service.FileService) *FSHandler {
	return &FSHandler{service: service}
}

// ListFolder shows the files and sub-folders of a folder (root by default)
func (h *FSHandler) ListFolder(c *gin.Context) {
	var q domain.ListFolderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	content, err := h.service.ListFolder(c.Request.Context(), q.Folder)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// CreateFolder creates a folder under pid (root by default)
func (h *FSHandler) CreateFolder(c *gin.Context) {
	var q domain.CreateFolderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.CreateFolder(c.Request.Context(), q.Name, q.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FSHandler) RenameFolder(c *gin.Context) {
	var q domain.RenameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.RenameFolder(c.Request.Context(), c.Param("folder_id"), q.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteFolder deletes a folder and all of its contents
func (h *FSHandler) DeleteFolder(c *gin.Context) {
	resp, err := h.service.DeleteFolder(c.Request.Context(), c.Param("folder_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FSHandler) RenameFile(c *gin.Context) {
	var q domain.RenameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.RenameFile(c.Request.Context(), c.Param("file_id"), q.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MoveFile moves a file into the folder given by ?folder=
func (h *FSHandler) MoveFile(c *gin.Context) {
	var q domain.MoveFileQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.MoveFile(c.Request.Context(), c.Param("file_id"), q.Folder)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FSHandler) DeleteFile(c *gin.Context) {
	resp, err := h.service.DeleteFile(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetThumbnail returns the splash image URL of a file
func (h *FSHandler) GetThumbnail(c *gin.Context) {
	resp, err := h.service.Thumbnail(c.Request.Context(), c.Param("file_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
