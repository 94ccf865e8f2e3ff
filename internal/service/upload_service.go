package service

import (
	"context"
	"net/http"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
)

const endpointUpload = "/file/ul"

type UploadService struct {
	gateway Forwarder
}

func NewUploadService(gateway Forwarder) *UploadService {
	return &UploadService{gateway: gateway}
}

// URL requests a one-time upload URL. The file itself is POSTed by the
// client directly to the returned URL.
func (s *UploadService) URL(ctx context.Context, q domain.UploadURLQuery) (*domain.UploadURL, error) {
	params := streamtape.Params{}
	params.Set("folder", q.Folder)
	params.Set("sha256", q.SHA256)
	if q.HTTPOnly != nil {
		params["httponly"] = *q.HTTPOnly
	}

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointUpload, params)
	if err != nil {
		return nil, err
	}
	upload, err := decode[domain.UploadURL](endpointUpload, raw)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}
