// file: internals/features/meetings/meetings/dto/meeting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/meetings/meetings/model"
)

type CreateMeetingRequest struct {
	Topic     string    `json:"topic" validate:"required,min=3,max=255"`
	StartTime time.Time `json:"start_time" validate:"required"`
	Duration  int       `json:"duration" validate:"required,min=5,max=480"` // menit
}

type MeetingResponse struct {
	MeetingID        uuid.UUID `json:"meeting_id"`
	MeetingTopic     string    `json:"meeting_topic"`
	MeetingStartTime time.Time `json:"meeting_start_time"`
	MeetingDuration  int       `json:"meeting_duration"`
	MeetingJoinURL   string    `json:"meeting_join_url"`
	MeetingStartURL  string    `json:"meeting_start_url,omitempty"` // diisi hanya untuk host
	MeetingCreatedAt time.Time `json:"meeting_created_at"`
}

func FromModel(m *model.MeetingModel, includeStartURL bool) *MeetingResponse {
	resp := &MeetingResponse{
		MeetingID:        m.MeetingID,
		MeetingTopic:     m.MeetingTopic,
		MeetingStartTime: m.MeetingStartTime,
		MeetingDuration:  m.MeetingDuration,
		MeetingJoinURL:   m.MeetingJoinURL,
		MeetingCreatedAt: m.MeetingCreatedAt,
	}
	if includeStartURL {
		resp.MeetingStartURL = m.MeetingStartURL
	}
	return resp
}
