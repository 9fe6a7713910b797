package model

import "time"

// Document is the metadata record for an uploaded supporting file. The
// stored name is unique across documents even when original names collide;
// the bytes themselves live in blob storage under StoragePath.
type Document struct {
	ID           string    `json:"id"`
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedDate time.Time `json:"uploaded_date"`
	UploadedBy   string    `json:"uploaded_by"`
	ClaimID      string    `json:"claim_id,omitempty"`
}
