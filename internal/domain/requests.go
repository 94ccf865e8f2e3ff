package domain

// Inbound request shapes. Query structs are bound with gin's ShouldBindQuery,
// bodies with ShouldBindJSON; both run the binding tags below.

// AddRemoteUploadRequest queues a remote upload from a public URL
type AddRemoteUploadRequest struct {
	URL      string `json:"url" binding:"required,httpurl"`
	FolderID string `json:"folder_id"`
	Headers  string `json:"headers"`
	Name     string `json:"name"`
}

type ListFolderQuery struct {
	Folder string `form:"folder"`
}

type CreateFolderQuery struct {
	Name     string `form:"name" binding:"required"`
	ParentID string `form:"pid"`
}

type RenameQuery struct {
	Name string `form:"name" binding:"required"`
}

type MoveFileQuery struct {
	Folder string `form:"folder" binding:"required"`
}

type RemoteStatusQuery struct {
	ID    string `form:"id"`
	Limit int    `form:"limit"`
}

type DownloadLinkQuery struct {
	FileID          string `form:"file_id" binding:"required"`
	Ticket          string `form:"ticket" binding:"required"`
	CaptchaResponse string `form:"captcha_response"`
}

type FileInfoQuery struct {
	FileIDs string `form:"file_ids" binding:"required"`
}

type UploadURLQuery struct {
	Folder   string `form:"folder"`
	SHA256   string `form:"sha256"`
	HTTPOnly *bool  `form:"httponly"`
}
