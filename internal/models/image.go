package models

import "time"

// Image stores an uploaded image inline as a base64 data URI.
type Image struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Filename  string    `json:"filename,omitempty" gorm:"type:varchar(255)"`
	MimeType  string    `json:"mime_type,omitempty" gorm:"column:mime_type;type:varchar(100)"`
	DataURI   string    `json:"data_uri,omitempty" gorm:"column:data_uri;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ImageMeta is the listing projection of Image: everything but the payload.
type ImageMeta struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename,omitempty"`
	MimeType  string    `json:"mime_type,omitempty" gorm:"column:mime_type"`
	CreatedAt time.Time `json:"created_at"`
}
