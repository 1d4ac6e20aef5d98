// file: internals/features/meetings/meetings/model/meeting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingModel: record sesi video. Dibuat sekali dari hasil call provider,
// setelah itu read-only.
type MeetingModel struct {
	MeetingID     uuid.UUID `gorm:"column:meeting_id;type:uuid;primaryKey" json:"meeting_id"`
	MeetingUserID uuid.UUID `gorm:"column:meeting_user_id;type:uuid;not null;index" json:"meeting_user_id"`

	MeetingTopic     string    `gorm:"column:meeting_topic;type:varchar(255);not null" json:"meeting_topic"`
	MeetingStartTime time.Time `gorm:"column:meeting_start_time;not null" json:"meeting_start_time"`
	MeetingDuration  int       `gorm:"column:meeting_duration;not null" json:"meeting_duration"` // menit

	MeetingProviderID string `gorm:"column:meeting_provider_id;type:varchar(64)" json:"meeting_provider_id"`
	MeetingJoinURL    string `gorm:"column:meeting_join_url;type:text;not null" json:"meeting_join_url"`
	MeetingStartURL   string `gorm:"column:meeting_start_url;type:text;not null" json:"-"` // hanya untuk host

	MeetingCreatedAt time.Time      `gorm:"column:meeting_created_at;autoCreateTime" json:"meeting_created_at"`
	MeetingUpdatedAt time.Time      `gorm:"column:meeting_updated_at;autoUpdateTime" json:"meeting_updated_at"`
	MeetingDeletedAt gorm.DeletedAt `gorm:"column:meeting_deleted_at;index" json:"meeting_deleted_at,omitempty"`
}

func (MeetingModel) TableName() string { return "meetings" }

func (m *MeetingModel) BeforeCreate(tx *gorm.DB) error {
	if m.MeetingID == uuid.Nil {
		m.MeetingID = uuid.New()
	}
	return nil
}
