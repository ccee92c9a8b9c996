package models

import "time"

// Upload is one import batch.
type Upload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	RecordCount int       `json:"record_count"`
}

type UploadDetail struct {
	UploadName string           `json:"upload_name"`
	Records    []map[string]any `json:"records"`
}

func (u *Upload) ToMap() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"created_at": u.CreatedAt,
	}
}
