// file: internals/features/courses/courses/controller/course_admin_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/courses/courses/dto"
	"kelasku_backend/internals/features/courses/courses/model"
	svc "kelasku_backend/internals/features/courses/courses/service"
	helper "kelasku_backend/internals/helpers"
)

type CourseAdminController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseAdminController(db *gorm.DB) *CourseAdminController {
	return &CourseAdminController{DB: db, Validator: validator.New()}
}

// mapContentErr memetakan sentinel service ke status HTTP.
func mapContentErr(err error) error {
	switch {
	case errors.Is(err, svc.ErrCourseNotFound),
		errors.Is(err, svc.ErrChapterNotFound),
		errors.Is(err, svc.ErrLectureNotFound),
		errors.Is(err, svc.ErrProjectNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrChapterOrderTaken),
		errors.Is(err, svc.ErrLectureOrderTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrInvalidDuration),
		errors.Is(err, svc.ErrInvalidVideoURL):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func parseCourseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid course id")
	}
	return id, nil
}

// POST /api/a/courses
func (ctrl *CourseAdminController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "create course failed: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course dibuat", dto.ToCourseResponse(m, true))
}

// PATCH /api/a/courses/:id
func (ctrl *CourseAdminController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		req.Apply(course)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.Success(c, "Course diperbarui", dto.ToCourseResponse(course, true))
}

/* =======================================================================
   Content tree (chapters / lectures / projects)
======================================================================= */

// POST /api/a/courses/:id/chapters
func (ctrl *CourseAdminController) AddChapter(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.AddChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.AddChapter(course.Chapters(), model.Chapter{
			ChapterID:    req.ChapterID,
			ChapterTitle: req.ChapterTitle,
			ChapterOrder: req.ChapterOrder,
		})
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Chapter ditambahkan", dto.ToCourseResponse(course, true))
}

// PATCH /api/a/courses/:id/chapters/:chapterId
func (ctrl *CourseAdminController) EditChapter(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}
	chapterID := c.Params("chapterId")

	var req dto.EditChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.EditChapter(course.Chapters(), chapterID, svc.ChapterPatch{
			ChapterTitle: req.ChapterTitle,
			ChapterOrder: req.ChapterOrder,
		})
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.Success(c, "Chapter diperbarui", dto.ToCourseResponse(course, true))
}

// DELETE /api/a/courses/:id/chapters/:chapterId
func (ctrl *CourseAdminController) DeleteChapter(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}
	chapterID := c.Params("chapterId")

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.DeleteChapter(course.Chapters(), chapterID)
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.Success(c, "Chapter dihapus", dto.ToCourseResponse(course, true))
}

// POST /api/a/courses/:id/lectures
func (ctrl *CourseAdminController) AddLecture(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.AddLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.AddLecture(course.Chapters(), req.ChapterID, model.Lecture{
			LectureID:       req.LectureID,
			LectureTitle:    req.LectureTitle,
			LectureDuration: req.LectureDuration,
			LectureOrder:    req.LectureOrder,
			LectureURL:      req.LectureURL,
			IsPreviewFree:   req.IsPreviewFree,
		})
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lecture ditambahkan", dto.ToCourseResponse(course, true))
}

// PATCH /api/a/courses/:id/lectures/:lectureId
func (ctrl *CourseAdminController) EditLecture(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}
	lectureID := c.Params("lectureId")

	var req dto.EditLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.EditLecture(course.Chapters(), lectureID, svc.LecturePatch{
			LectureTitle:    req.LectureTitle,
			LectureDuration: req.LectureDuration,
			LectureOrder:    req.LectureOrder,
			LectureURL:      req.LectureURL,
			IsPreviewFree:   req.IsPreviewFree,
		})
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.Success(c, "Lecture diperbarui", dto.ToCourseResponse(course, true))
}

// DELETE /api/a/courses/:id/lectures/:lectureId
func (ctrl *CourseAdminController) DeleteLecture(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}
	lectureID := c.Params("lectureId")

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		chapters, err := svc.DeleteLecture(course.Chapters(), lectureID)
		if err != nil {
			return err
		}
		course.SetChapters(chapters)
		return nil
	})
	if err != nil {
		return mapContentErr(err)
	}

	return helper.Success(c, "Lecture dihapus", dto.ToCourseResponse(course, true))
}

// POST /api/a/courses/:id/projects
func (ctrl *CourseAdminController) AddProject(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return err
	}

	var req dto.AddProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course, err := svc.MutateCourse(ctrl.DB.WithContext(c.Context()), courseID, func(course *model.CourseModel) error {
		return svc.AddProject(course, model.Project{
			ProjectID:          req.ProjectID,
			ProjectTitle:       req.ProjectTitle,
			ProjectDescription: req.ProjectDescription,
			ProjectDueDate:     req.ProjectDueDate,
		})
	})
	if err != nil {
		if errors.Is(err, svc.ErrCourseNotFound) {
			return mapContentErr(err)
		}
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project ditambahkan", dto.ToCourseResponse(course, true))
}
