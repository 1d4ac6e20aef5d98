// file: internals/features/courses/courses/service/content_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kelasku_backend/internals/features/courses/courses/model"
)

func chapterFixture() []model.Chapter {
	return []model.Chapter{
		{
			ChapterID:    "ch-intro",
			ChapterTitle: "Intro",
			ChapterOrder: 1,
			ChapterContent: []model.Lecture{
				{LectureID: "lec-1", LectureTitle: "Halo", LectureDuration: "5:30", LectureOrder: 1, LectureURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", IsPreviewFree: true},
			},
		},
	}
}

func TestAddChapter_DuplicateOrderLeavesListUnchanged(t *testing.T) {
	chapters := chapterFixture()

	out, err := AddChapter(chapters, model.Chapter{ChapterID: "ch-basics", ChapterTitle: "Basics", ChapterOrder: 1})
	require.ErrorIs(t, err, ErrChapterOrderTaken)
	assert.Len(t, out, 1)
	assert.Equal(t, "ch-intro", out[0].ChapterID)
}

func TestAddChapter_SortedByOrder(t *testing.T) {
	chapters := chapterFixture()

	out, err := AddChapter(chapters, model.Chapter{ChapterID: "ch-zero", ChapterTitle: "Prolog", ChapterOrder: 0})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ch-zero", out[0].ChapterID)
	assert.Equal(t, "ch-intro", out[1].ChapterID)
	// input slice tidak ikut berubah
	assert.Len(t, chapters, 1)
}

func TestAddLecture_CanonicalizesURL(t *testing.T) {
	chapters := chapterFixture()

	urls := []string{
		"https://www.youtube.com/watch?v=abcDEF12345",
		"https://youtu.be/abcDEF12345",
		"https://www.youtube.com/shorts/abcDEF12345",
	}
	for _, u := range urls {
		out, err := AddLecture(chapters, "ch-intro", model.Lecture{
			LectureID:       "lec-2",
			LectureTitle:    "Materi",
			LectureDuration: "12:05",
			LectureOrder:    2,
			LectureURL:      u,
		})
		require.NoError(t, err, u)
		assert.Equal(t, "https://www.youtube.com/embed/abcDEF12345", out[0].ChapterContent[1].LectureURL)
	}
}

func TestAddLecture_RejectsBadDurationAndURL(t *testing.T) {
	chapters := chapterFixture()

	_, err := AddLecture(chapters, "ch-intro", model.Lecture{
		LectureID: "lec-x", LectureDuration: "1:5", LectureOrder: 2,
		LectureURL: "https://youtu.be/abcDEF12345",
	})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = AddLecture(chapters, "ch-intro", model.Lecture{
		LectureID: "lec-x", LectureDuration: "1:05", LectureOrder: 2,
		LectureURL: "https://vimeo.com/123456",
	})
	assert.ErrorIs(t, err, ErrInvalidVideoURL)
}

func TestAddLecture_DuplicateOrderWithinChapter(t *testing.T) {
	chapters := chapterFixture()

	out, err := AddLecture(chapters, "ch-intro", model.Lecture{
		LectureID: "lec-dup", LectureDuration: "3:00", LectureOrder: 1,
		LectureURL: "https://youtu.be/abcDEF12345",
	})
	require.ErrorIs(t, err, ErrLectureOrderTaken)
	assert.Len(t, out[0].ChapterContent, 1)
}

func TestAddLecture_ChapterNotFound(t *testing.T) {
	_, err := AddLecture(chapterFixture(), "ch-missing", model.Lecture{
		LectureID: "lec-x", LectureDuration: "3:00", LectureOrder: 9,
		LectureURL: "https://youtu.be/abcDEF12345",
	})
	assert.ErrorIs(t, err, ErrChapterNotFound)
}

func TestEditChapter_OrderConflict(t *testing.T) {
	chapters, err := AddChapter(chapterFixture(), model.Chapter{ChapterID: "ch-2", ChapterOrder: 2})
	require.NoError(t, err)

	newOrder := 1
	_, err = EditChapter(chapters, "ch-2", ChapterPatch{ChapterOrder: &newOrder})
	assert.ErrorIs(t, err, ErrChapterOrderTaken)
}

func TestEditLecture_MovesAndResorts(t *testing.T) {
	chapters, err := AddLecture(chapterFixture(), "ch-intro", model.Lecture{
		LectureID: "lec-2", LectureDuration: "4:00", LectureOrder: 2,
		LectureURL: "https://youtu.be/abcDEF12345",
	})
	require.NoError(t, err)

	newOrder := 0
	out, err := EditLecture(chapters, "lec-2", LecturePatch{LectureOrder: &newOrder})
	require.NoError(t, err)
	assert.Equal(t, "lec-2", out[0].ChapterContent[0].LectureID)
	assert.Equal(t, "lec-1", out[0].ChapterContent[1].LectureID)
}

func TestDeleteLecture_ByAuthoredID(t *testing.T) {
	out, err := DeleteLecture(chapterFixture(), "lec-1")
	require.NoError(t, err)
	assert.Empty(t, out[0].ChapterContent)

	_, err = DeleteLecture(out, "lec-1")
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestSummarizeContent_DerivedCounts(t *testing.T) {
	chapters, err := AddLecture(chapterFixture(), "ch-intro", model.Lecture{
		LectureID: "lec-2", LectureDuration: "8:10", LectureOrder: 2,
		LectureURL: "https://youtu.be/abcDEF12345",
	})
	require.NoError(t, err)

	sum := model.SummarizeContent(chapters)
	assert.Equal(t, 1, sum.TotalChapters)
	assert.Equal(t, 2, sum.TotalLectures)
	require.Len(t, sum.FreePreviewLectures, 1)
	assert.Equal(t, "lec-1", sum.FreePreviewLectures[0].LectureID)
}
