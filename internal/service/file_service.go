package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
)

const (
	endpointListFolder   = "/file/listfolder"
	endpointCreateFolder = "/file/createfolder"
	endpointRenameFolder = "/file/renamefolder"
	endpointDeleteFolder = "/file/deletefolder"
	endpointRenameFile   = "/file/rename"
	endpointMoveFile     = "/file/move"
	endpointDeleteFile   = "/file/delete"
	endpointThumbnail    = "/file/getsplash"
)

// FileService covers folder and file management.
type FileService struct {
	gateway Forwarder
}

func NewFileService(gateway Forwarder) *FileService {
	return &FileService{gateway: gateway}
}

// ListFolder lists a folder; an empty folderID lists the account root.
func (s *FileService) ListFolder(ctx context.Context, folderID string) (*domain.FolderContent, error) {
	params := streamtape.Params{}
	params.Set("folder", folderID)

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointListFolder, params)
	if err != nil {
		return nil, err
	}
	content, err := decode[domain.FolderContent](endpointListFolder, raw)
	if err != nil {
		return nil, err
	}
	content.Normalize()
	return &content, nil
}

// CreateFolder creates name under parentID, or under the root when empty.
func (s *FileService) CreateFolder(ctx context.Context, name, parentID string) (*domain.CreateFolderResponse, error) {
	params := streamtape.Params{"name": name}
	params.Set("pid", parentID)

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointCreateFolder, params)
	if err != nil {
		return nil, err
	}
	resp, err := decode[domain.CreateFolderResponse](endpointCreateFolder, raw)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *FileService) RenameFolder(ctx context.Context, folderID, name string) (*domain.SuccessResponse, error) {
	return s.success(ctx, endpointRenameFolder, streamtape.Params{"folder": folderID, "name": name})
}

// DeleteFolder removes a folder with everything in it.
func (s *FileService) DeleteFolder(ctx context.Context, folderID string) (*domain.SuccessResponse, error) {
	return s.success(ctx, endpointDeleteFolder, streamtape.Params{"folder": folderID})
}

func (s *FileService) RenameFile(ctx context.Context, fileID, name string) (*domain.SuccessResponse, error) {
	return s.success(ctx, endpointRenameFile, streamtape.Params{"file": fileID, "name": name})
}

func (s *FileService) MoveFile(ctx context.Context, fileID, folderID string) (*domain.SuccessResponse, error) {
	return s.success(ctx, endpointMoveFile, streamtape.Params{"file": fileID, "folder": folderID})
}

func (s *FileService) DeleteFile(ctx context.Context, fileID string) (*domain.SuccessResponse, error) {
	return s.success(ctx, endpointDeleteFile, streamtape.Params{"file": fileID})
}

// Thumbnail returns the splash image URL of a file.
func (s *FileService) Thumbnail(ctx context.Context, fileID string) (*domain.ThumbnailResponse, error) {
	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointThumbnail, streamtape.Params{"file": fileID})
	if err != nil {
		return nil, err
	}

	var thumbnailURL string
	if err := json.Unmarshal(raw, &thumbnailURL); err != nil {
		return nil, streamtape.NewInvalidPayloadError(endpointThumbnail, err)
	}
	resp := domain.ThumbnailResponse{ThumbnailURL: thumbnailURL}
	if err := domain.ValidateShape(resp); err != nil {
		return nil, streamtape.NewInvalidPayloadError(endpointThumbnail, err)
	}
	return &resp, nil
}

func (s *FileService) success(ctx context.Context, endpoint string, params streamtape.Params) (*domain.SuccessResponse, error) {
	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, err
	}
	return &domain.SuccessResponse{Success: raw}, nil
}
