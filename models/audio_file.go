package models

import (
	"time"

	"github.com/google/uuid"
)

// AudioFile points at a synthesized MP3 in object storage. The bytes live in
// the storage bucket; this row is the key plus metadata. Immutable after create.
type AudioFile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StorageKey   string    `gorm:"size:255;uniqueIndex;not null" json:"s3_key"` // legacy JSON name kept for the mobile client
	URL          string    `gorm:"type:text;not null" json:"url"`
	ContentType  string    `gorm:"size:50;default:'audio/mpeg'" json:"content_type"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	DurationSec  int       `json:"duration_sec"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Summary *PodcastSummary `gorm:"foreignKey:AudioID" json:"summary,omitempty"`
	SavedBy []UserAudioFile `gorm:"foreignKey:AudioID" json:"saved_by,omitempty"`
}
