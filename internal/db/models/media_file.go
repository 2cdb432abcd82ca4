package models

import "time"

// Media kinds, derived from the sniffed mime type.
const (
	MediaKindImage    = "image"
	MediaKindVideo    = "video"
	MediaKindAudio    = "audio"
	MediaKindDocument = "document"
	MediaKindOther    = "other"
)

// MediaFile is an uploaded file stored below the media directory.
type MediaFile struct {
	// ID is the unique identifier for the file.
	ID uint64 `gorm:"primaryKey"`
	// Filename is the generated name on disk.
	Filename string `gorm:"size:255;not null"`
	// OriginalName is the name the file was uploaded with.
	OriginalName string `gorm:"size:255"`
	// FilePath is the public URL path of the file.
	FilePath string `gorm:"size:500;not null"`
	FileSize int64
	MimeType string `gorm:"size:100"`
	Kind     string `gorm:"size:20;index"`
	AltText  string `gorm:"size:255"`
	// CreatedAt is the upload time (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the MediaFile model.
func (MediaFile) TableName() string {
	return "media_files"
}
