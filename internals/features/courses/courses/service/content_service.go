// file: internals/features/courses/courses/service/content_service.go
package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"kelasku_backend/internals/features/courses/courses/model"
)

/* =======================================================================
   Sentinel errors — controller yang memetakan ke status HTTP.
======================================================================= */

var (
	ErrChapterOrderTaken = errors.New("chapter_order sudah dipakai chapter lain")
	ErrLectureOrderTaken = errors.New("lecture_order sudah dipakai di chapter ini")
	ErrChapterNotFound   = errors.New("chapter tidak ditemukan")
	ErrLectureNotFound   = errors.New("lecture tidak ditemukan")
	ErrProjectNotFound   = errors.New("project tidak ditemukan")
	ErrInvalidDuration   = errors.New("lecture_duration harus berformat M:SS atau MM:SS")
	ErrInvalidVideoURL   = errors.New("lecture_url bukan URL video yang dikenali")
)

/* =======================================================================
   Validators & canonicalization
======================================================================= */

var (
	durationRe = regexp.MustCompile(`^\d{1,2}:[0-5]\d$`)
	// pola URL YouTube yang dikenali; video id selalu 11 karakter
	videoIDRes = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=)([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
	}
)

func ValidateDuration(label string) error {
	if !durationRe.MatchString(strings.TrimSpace(label)) {
		return ErrInvalidDuration
	}
	return nil
}

// ExtractVideoID mengambil video id 11 karakter dari URL YouTube.
func ExtractVideoID(rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	for _, re := range videoIDRes {
		if m := re.FindStringSubmatch(u); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", ErrInvalidVideoURL
}

// CanonicalEmbedURL menulis ulang URL video ke bentuk embed kanonik.
func CanonicalEmbedURL(rawURL string) (string, error) {
	id, err := ExtractVideoID(rawURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", id), nil
}

/* =======================================================================
   Pure tree mutations. Semua operasi menerima slice chapters, mengembalikan
   slice baru — caller (controller) yang commit ke row course di dalam
   transaksi ber-lock.
======================================================================= */

func sortChapters(chapters []model.Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].ChapterOrder < chapters[j].ChapterOrder
	})
}

func sortLectures(lectures []model.Lecture) {
	sort.SliceStable(lectures, func(i, j int) bool {
		return lectures[i].LectureOrder < lectures[j].LectureOrder
	})
}

func findChapter(chapters []model.Chapter, chapterID string) int {
	for i := range chapters {
		if chapters[i].ChapterID == chapterID {
			return i
		}
	}
	return -1
}

// AddChapter gagal dengan ErrChapterOrderTaken bila order sudah dipakai;
// list chapter tidak berubah dalam kasus itu.
func AddChapter(chapters []model.Chapter, ch model.Chapter) ([]model.Chapter, error) {
	for _, existing := range chapters {
		if existing.ChapterOrder == ch.ChapterOrder {
			return chapters, ErrChapterOrderTaken
		}
	}
	if ch.ChapterContent == nil {
		ch.ChapterContent = []model.Lecture{}
	}
	out := append(append([]model.Chapter{}, chapters...), ch)
	sortChapters(out)
	return out, nil
}

// AddLecture memvalidasi duration + URL, menulis ulang URL ke bentuk embed,
// dan menjaga keunikan lecture_order dalam chapter.
func AddLecture(chapters []model.Chapter, chapterID string, lec model.Lecture) ([]model.Chapter, error) {
	idx := findChapter(chapters, chapterID)
	if idx < 0 {
		return chapters, ErrChapterNotFound
	}
	if err := ValidateDuration(lec.LectureDuration); err != nil {
		return chapters, err
	}
	canonical, err := CanonicalEmbedURL(lec.LectureURL)
	if err != nil {
		return chapters, err
	}
	for _, existing := range chapters[idx].ChapterContent {
		if existing.LectureOrder == lec.LectureOrder {
			return chapters, ErrLectureOrderTaken
		}
	}

	lec.LectureURL = canonical

	out := cloneChapters(chapters)
	out[idx].ChapterContent = append(out[idx].ChapterContent, lec)
	sortLectures(out[idx].ChapterContent)
	return out, nil
}

type ChapterPatch struct {
	ChapterTitle *string
	ChapterOrder *int
}

func EditChapter(chapters []model.Chapter, chapterID string, patch ChapterPatch) ([]model.Chapter, error) {
	idx := findChapter(chapters, chapterID)
	if idx < 0 {
		return chapters, ErrChapterNotFound
	}

	if patch.ChapterOrder != nil && *patch.ChapterOrder != chapters[idx].ChapterOrder {
		for i, existing := range chapters {
			if i != idx && existing.ChapterOrder == *patch.ChapterOrder {
				return chapters, ErrChapterOrderTaken
			}
		}
	}

	out := cloneChapters(chapters)
	if patch.ChapterTitle != nil {
		out[idx].ChapterTitle = *patch.ChapterTitle
	}
	if patch.ChapterOrder != nil {
		out[idx].ChapterOrder = *patch.ChapterOrder
	}
	sortChapters(out)
	return out, nil
}

// DeleteChapter menghapus by index setelah lookup authored id.
func DeleteChapter(chapters []model.Chapter, chapterID string) ([]model.Chapter, error) {
	idx := findChapter(chapters, chapterID)
	if idx < 0 {
		return chapters, ErrChapterNotFound
	}
	out := cloneChapters(chapters)
	out = append(out[:idx], out[idx+1:]...)
	return out, nil
}

type LecturePatch struct {
	LectureTitle    *string
	LectureDuration *string
	LectureOrder    *int
	LectureURL      *string
	IsPreviewFree   *bool
}

// EditLecture mencari lecture dengan scan semua chapter (lecture id tidak
// di-index global).
func EditLecture(chapters []model.Chapter, lectureID string, patch LecturePatch) ([]model.Chapter, error) {
	ci, li := findLecture(chapters, lectureID)
	if ci < 0 {
		return chapters, ErrLectureNotFound
	}

	if patch.LectureDuration != nil {
		if err := ValidateDuration(*patch.LectureDuration); err != nil {
			return chapters, err
		}
	}
	var canonical string
	if patch.LectureURL != nil {
		var err error
		canonical, err = CanonicalEmbedURL(*patch.LectureURL)
		if err != nil {
			return chapters, err
		}
	}
	if patch.LectureOrder != nil && *patch.LectureOrder != chapters[ci].ChapterContent[li].LectureOrder {
		for i, existing := range chapters[ci].ChapterContent {
			if i != li && existing.LectureOrder == *patch.LectureOrder {
				return chapters, ErrLectureOrderTaken
			}
		}
	}

	out := cloneChapters(chapters)
	lec := &out[ci].ChapterContent[li]
	if patch.LectureTitle != nil {
		lec.LectureTitle = *patch.LectureTitle
	}
	if patch.LectureDuration != nil {
		lec.LectureDuration = *patch.LectureDuration
	}
	if patch.LectureOrder != nil {
		lec.LectureOrder = *patch.LectureOrder
	}
	if patch.LectureURL != nil {
		lec.LectureURL = canonical
	}
	if patch.IsPreviewFree != nil {
		lec.IsPreviewFree = *patch.IsPreviewFree
	}
	sortLectures(out[ci].ChapterContent)
	return out, nil
}

func DeleteLecture(chapters []model.Chapter, lectureID string) ([]model.Chapter, error) {
	ci, li := findLecture(chapters, lectureID)
	if ci < 0 {
		return chapters, ErrLectureNotFound
	}
	out := cloneChapters(chapters)
	out[ci].ChapterContent = append(out[ci].ChapterContent[:li], out[ci].ChapterContent[li+1:]...)
	return out, nil
}

func findLecture(chapters []model.Chapter, lectureID string) (int, int) {
	for ci := range chapters {
		for li := range chapters[ci].ChapterContent {
			if chapters[ci].ChapterContent[li].LectureID == lectureID {
				return ci, li
			}
		}
	}
	return -1, -1
}

// FindLecture expose lookup untuk caller lain (progress aggregator dsb).
func FindLecture(chapters []model.Chapter, lectureID string) (*model.Lecture, bool) {
	ci, li := findLecture(chapters, lectureID)
	if ci < 0 {
		return nil, false
	}
	return &chapters[ci].ChapterContent[li], true
}

func cloneChapters(chapters []model.Chapter) []model.Chapter {
	out := make([]model.Chapter, len(chapters))
	copy(out, chapters)
	for i := range out {
		lecs := make([]model.Lecture, len(out[i].ChapterContent))
		copy(lecs, out[i].ChapterContent)
		out[i].ChapterContent = lecs
	}
	return out
}
