package service

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
)

// Forwarder sends one call to the Streamtape API. *streamtape.Client
// implements it.
type Forwarder interface {
	Forward(ctx context.Context, method, endpoint string, params streamtape.Params) (json.RawMessage, error)
}

// Services bundles the route-group services sharing one Forwarder.
type Services struct {
	Files  *FileService
	Remote *RemoteService
	Stream *StreamService
	Upload *UploadService
}

func New(gateway Forwarder) *Services {
	return &Services{
		Files:  NewFileService(gateway),
		Remote: NewRemoteService(gateway),
		Stream: NewStreamService(gateway),
		Upload: NewUploadService(gateway),
	}
}

// decode unmarshals an upstream result into out and runs its validate tags.
// Maps are only decoded.
func decode[T any](endpoint string, raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, streamtape.NewInvalidPayloadError(endpoint, err)
	}
	if err := domain.ValidateShape(out); err != nil {
		return out, streamtape.NewInvalidPayloadError(endpoint, err)
	}
	return out, nil
}

// decodeMap decodes an id-keyed result. The API sends an empty map as [] or
// null.
func decodeMap[V any](endpoint string, raw json.RawMessage) (map[string]V, error) {
	out := make(map[string]V)
	switch string(bytes.TrimSpace(raw)) {
	case "null", "[]":
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, streamtape.NewInvalidPayloadError(endpoint, err)
	}
	return out, nil
}
