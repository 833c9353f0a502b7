package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is anchored on the Firebase UID issued by the identity provider.
// FirebaseID is opaque to the backend; it is never parsed or verified here.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirebaseID string         `gorm:"size:128;uniqueIndex;not null" json:"firebase_id"`
	Email      string         `gorm:"size:150" json:"email"`
	Interests  pq.StringArray `gorm:"type:text[]" json:"interests"`
	Audios     pq.StringArray `gorm:"type:text[]" json:"audios"` // ids of audio files this user generated/saved
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	PlaylistItems []UserAudioFile `gorm:"foreignKey:UserID" json:"playlist_items,omitempty"`
}
