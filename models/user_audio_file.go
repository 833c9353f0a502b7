package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAudioFile records that a user has an audio file in their playlist.
// Uniqueness of the (user, audio) pair is enforced by an existence check
// before insert, not by a database constraint, matching the write path
// in the resolver and the playlist routes.
type UserAudioFile struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AudioID uuid.UUID `gorm:"type:uuid;not null;index" json:"audio_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"` // shown as "uploaded on"

	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	AudioFile AudioFile `gorm:"foreignKey:AudioID;constraint:OnDelete:CASCADE" json:"audio_file,omitempty"`
}
