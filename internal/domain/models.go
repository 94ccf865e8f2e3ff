// internal/domain/models.go
package domain

import (
	"bytes"
	"encoding/json"
)

// Folder is a sub-folder entry of a folder listing
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderFile is a file entry of a folder listing
type FolderFile struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Link      string `json:"link"`
	CreatedAt int64  `json:"created_at"`
	Downloads int64  `json:"downloads"`
	LinkID    string `json:"linkid"`
	Convert   string `json:"convert"`
}

// FolderContent is the listing of one folder
type FolderContent struct {
	Folders []Folder     `json:"folders"`
	Files   []FolderFile `json:"files"`
}

// Normalize replaces missing lists with empty ones so they render as [].
func (f *FolderContent) Normalize() {
	if f.Folders == nil {
		f.Folders = make([]Folder, 0)
	}
	if f.Files == nil {
		f.Files = make([]FolderFile, 0)
	}
}

type CreateFolderResponse struct {
	FolderID string `json:"folderid" validate:"required"`
}

// SuccessResponse wraps the upstream result of rename/move/delete calls.
type SuccessResponse struct {
	Success json.RawMessage `json:"success"`
}

type ThumbnailResponse struct {
	ThumbnailURL string `json:"thumbnail_url" validate:"httpurl"`
}

// RemoteUploadAdd is returned when a remote upload is queued
type RemoteUploadAdd struct {
	ID       string `json:"id" validate:"required"`
	FolderID string `json:"folderid"`
}

// RemoteUploadStatus describes one remote upload job
type RemoteUploadStatus struct {
	ID          string         `json:"id"`
	RemoteURL   string         `json:"remoteurl"`
	Status      string         `json:"status"`
	BytesLoaded *int64         `json:"bytes_loaded"`
	BytesTotal  *int64         `json:"bytes_total"`
	FolderID    string         `json:"folderid"`
	Added       string         `json:"added"`
	LastUpdate  string         `json:"last_update"`
	ExtID       OptionalString `json:"extid"`
	URL         OptionalString `json:"url"`
}

// DownloadTicket must be resolved with GetDownloadLink after WaitTime seconds
type DownloadTicket struct {
	Ticket     string `json:"ticket" validate:"required"`
	WaitTime   int    `json:"wait_time"`
	ValidUntil string `json:"valid_until"`
}

type DownloadLink struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url" validate:"httpurl"`
}

// FileInfo is the status of a single file in a bulk info lookup
type FileInfo struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Size      int64   `json:"size"`
	MimeType  *string `json:"mime_type"`
	Converted bool    `json:"converted"`
	Status    int     `json:"status"`
}

// UploadURL is a one-time target for a multipart/form-data POST
type UploadURL struct {
	URL        string `json:"url" validate:"httpurl"`
	ValidUntil string `json:"valid_until"`
}

// OptionalString is a string the upstream sometimes reports as false or
// null. Both decode to an empty value that renders as null.
type OptionalString struct {
	Value string
	Valid bool
}

func (s *OptionalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte("false")) {
		*s = OptionalString{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = OptionalString{Value: v, Valid: true}
	return nil
}

func (s OptionalString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
