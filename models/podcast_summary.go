package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PodcastSummary is the textual half of an episode, created alongside its
// AudioFile in the same logical operation. AudioID is set at creation and
// never repointed. Keywords are stored lowercased so the Postgres overlap
// operator behaves case-insensitively.
type PodcastSummary struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title    string         `gorm:"size:255;not null" json:"title"`
	Content  string         `gorm:"type:text;not null" json:"content"`
	Summary  string         `gorm:"type:text" json:"summary"`
	Keywords pq.StringArray `gorm:"type:text[]" json:"keywords"`
	AudioID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"audio_id"`
	Audio    AudioFile      `gorm:"constraint:OnDelete:CASCADE" json:"audio"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
