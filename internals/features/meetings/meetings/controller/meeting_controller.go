// file: internals/features/meetings/meetings/controller/meeting_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/meetings/meetings/dto"
	"kelasku_backend/internals/features/meetings/meetings/model"
	"kelasku_backend/internals/features/meetings/meetings/service"
	helper "kelasku_backend/internals/helpers"
)

type MeetingController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Zoom      *service.ZoomClient
}

func NewMeetingController(db *gorm.DB, zoom *service.ZoomClient) *MeetingController {
	return &MeetingController{
		DB:        db,
		Validator: validator.New(),
		Zoom:      zoom,
	}
}

/* =======================================================================
   POST /api/a/meetings — buat sesi via Zoom, simpan record
======================================================================= */

func (ctrl *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.StartTime.Before(time.Now()) {
		return helper.Error(c, fiber.StatusBadRequest, "start_time harus di masa depan")
	}

	result, err := ctrl.Zoom.CreateMeeting(c.Context(), service.CreateMeetingInput{
		Topic:     req.Topic,
		StartTime: req.StartTime,
		Duration:  req.Duration,
	})
	if err != nil {
		log.Printf("[ERROR] zoom create meeting: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal membuat meeting di provider")
	}

	meeting := model.MeetingModel{
		MeetingUserID:     userID,
		MeetingTopic:      req.Topic,
		MeetingStartTime:  req.StartTime,
		MeetingDuration:   req.Duration,
		MeetingProviderID: result.ProviderID,
		MeetingJoinURL:    result.JoinURL,
		MeetingStartURL:   result.StartURL,
	}
	if err := ctrl.DB.Create(&meeting).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan meeting")
	}

	log.Printf("[INFO] meeting %q dibuat oleh %s", meeting.MeetingTopic, helper.GetUserName(c))
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Meeting berhasil dibuat", dto.FromModel(&meeting, true))
}

/* =======================================================================
   GET /api/u/meetings — daftar meeting (start_url hanya untuk pemilik)
======================================================================= */

func (ctrl *MeetingController) ListMeetings(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.MeetingModel{})
	if c.Query("upcoming") == "true" {
		q = q.Where("meeting_start_time >= ?", time.Now())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung meeting")
	}

	var meetings []model.MeetingModel
	if err := q.Order("meeting_start_time ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&meetings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil meeting")
	}

	items := make([]*dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		items = append(items, dto.FromModel(&meetings[i], meetings[i].MeetingUserID == userID))
	}
	return helper.Success(c, "OK", fiber.Map{
		"meetings":   items,
		"pagination": helper.BuildPagination(total, paging, len(items)),
	})
}

/* =======================================================================
   GET /api/u/meetings/:id
======================================================================= */

func (ctrl *MeetingController) GetMeetingByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "meeting id tidak valid")
	}

	var meeting model.MeetingModel
	if err := ctrl.DB.First(&meeting, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Meeting tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil meeting")
	}
	return helper.Success(c, "OK", dto.FromModel(&meeting, meeting.MeetingUserID == userID))
}
