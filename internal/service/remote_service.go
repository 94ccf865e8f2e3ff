package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/rs/zerolog/log"
)

const (
	endpointRemoteAdd    = "/remotedl/add"
	endpointRemoteRemove = "/remotedl/remove"
	endpointRemoteStatus = "/remotedl/status"

	// RemoveAll is the upstream sentinel that cancels every remote upload.
	RemoveAll = "all"
)

// RemoteService manages remote upload jobs.
type RemoteService struct {
	gateway Forwarder
}

func NewRemoteService(gateway Forwarder) *RemoteService {
	return &RemoteService{gateway: gateway}
}

// Add queues a download of req.URL into the account.
func (s *RemoteService) Add(ctx context.Context, req domain.AddRemoteUploadRequest) (*domain.RemoteUploadAdd, error) {
	target := strings.TrimSpace(req.URL)
	if !domain.IsHTTPURL(target) {
		return nil, streamtape.NewValidationError("url must be an absolute http or https URL")
	}

	params := streamtape.Params{"url": target}
	params.Set("folder", req.FolderID)
	params.Set("headers", req.Headers)
	params.Set("name", req.Name)

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointRemoteAdd, params)
	if err != nil {
		return nil, err
	}
	resp, err := decode[domain.RemoteUploadAdd](endpointRemoteAdd, raw)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Remove cancels one upload, or all of them when uploadID is RemoveAll. The
// sentinel is relayed without any confirmation step.
func (s *RemoteService) Remove(ctx context.Context, uploadID string) (*domain.SuccessResponse, error) {
	if uploadID == RemoveAll {
		log.Warn().Msg("remote upload: removing all remote uploads")
	}

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointRemoteRemove, streamtape.Params{"id": uploadID})
	if err != nil {
		return nil, err
	}
	return &domain.SuccessResponse{Success: raw}, nil
}

// Status reports one upload when uploadID is set, otherwise up to limit
// recent uploads (no limit when zero).
func (s *RemoteService) Status(ctx context.Context, uploadID string, limit int) (map[string]domain.RemoteUploadStatus, error) {
	params := streamtape.Params{}
	params.Set("id", uploadID)
	if limit != 0 {
		params["limit"] = limit
	}

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointRemoteStatus, params)
	if err != nil {
		return nil, err
	}
	return decodeMap[domain.RemoteUploadStatus](endpointRemoteStatus, raw)
}
