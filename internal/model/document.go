package model

import "time"

// Document is an uploaded PDF's extracted text plus metadata, owned by a user.
type Document struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Text         string    `json:"text"`
	Size         int64     `json:"size"`
	Pages        int       `json:"pages"`
	UploadedAt   time.Time `json:"uploadedAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// DocumentInfo is the metadata-only projection returned by list endpoints.
// Extracted text is intentionally absent.
type DocumentInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// Info builds the list projection of a Document.
func (d *Document) Info() DocumentInfo {
	return DocumentInfo{
		ID:           d.ID,
		Name:         d.OriginalName,
		Size:         d.Size,
		UploadedAt:   d.UploadedAt,
		LastAccessed: d.LastAccessed,
	}
}
