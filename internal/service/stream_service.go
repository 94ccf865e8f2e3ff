package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/andresuchdata/streamtape-gateway/internal/domain"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
)

const (
	endpointTicket = "/file/dlticket"
	endpointLink   = "/file/dl"
	endpointInfo   = "/file/info"

	// MaxInfoIDs is the largest number of ids accepted by one info lookup.
	MaxInfoIDs = 100
)

// StreamService issues download tickets and links.
type StreamService struct {
	gateway Forwarder
}

func NewStreamService(gateway Forwarder) *StreamService {
	return &StreamService{gateway: gateway}
}

// Ticket prepares a download of fileID.
func (s *StreamService) Ticket(ctx context.Context, fileID string) (*domain.DownloadTicket, error) {
	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointTicket, streamtape.Params{"file": fileID})
	if err != nil {
		return nil, err
	}
	ticket, err := decode[domain.DownloadTicket](endpointTicket, raw)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Link resolves a ticket into a direct download URL.
func (s *StreamService) Link(ctx context.Context, fileID, ticket, captchaResponse string) (*domain.DownloadLink, error) {
	params := streamtape.Params{"file": fileID, "ticket": ticket}
	params.Set("captcha_response", captchaResponse)

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointLink, params)
	if err != nil {
		return nil, err
	}
	link, err := decode[domain.DownloadLink](endpointLink, raw)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Info looks up comma-separated file ids. More than MaxInfoIDs is rejected
// before the upstream is contacted.
func (s *StreamService) Info(ctx context.Context, fileIDs string) (map[string]domain.FileInfo, error) {
	if n := len(strings.Split(fileIDs, ",")); n > MaxInfoIDs {
		return nil, streamtape.NewValidationError(
			"You can only request info for a maximum of %d files at a time.", MaxInfoIDs)
	}

	raw, err := s.gateway.Forward(ctx, http.MethodGet, endpointInfo, streamtape.Params{"file": fileIDs})
	if err != nil {
		return nil, err
	}
	return decodeMap[domain.FileInfo](endpointInfo, raw)
}
