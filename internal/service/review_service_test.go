package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(repository.NewReviewRepository(db), repository.NewEnrollmentRepository(db))
}

func TestCreateReviewRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)

	_, err := svc.CreateReview(student.ID, course.ID, 5, "不错")
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	require.NoError(t, db.Create(&model.Enrollment{UserID: student.ID, CourseID: course.ID}).Error)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(student.ID, course.ID, rating, "")
		assert.True(t, util.IsValidationError(err))
	}

	review, err := svc.CreateReview(student.ID, course.ID, 4, "挺好")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
}

func TestCreateReviewOncePerCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	student := seedStudent(t, db, "s@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)
	require.NoError(t, db.Create(&model.Enrollment{UserID: student.ID, CourseID: course.ID}).Error)

	_, err := svc.CreateReview(student.ID, course.ID, 5, "")
	require.NoError(t, err)

	_, err = svc.CreateReview(student.ID, course.ID, 3, "改主意了")
	assert.ErrorIs(t, err, util.ErrAlreadyReviewed)
}

func TestListCourseReviewsLimitFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	owner := seedInstructor(t, db, "owner@test.com")
	course := seedCourse(t, db, owner.ID, model.CoursePublished)

	for i := 0; i < 25; i++ {
		student := seedStudent(t, db, "s"+string(rune('a'+i))+"@test.com")
		require.NoError(t, db.Create(&model.Review{UserID: student.ID, CourseID: course.ID, Rating: 5}).Error)
	}

	// 非法 limit 回退到默认 20
	reviews, err := svc.ListCourseReviews(course.ID, -5)
	require.NoError(t, err)
	assert.Len(t, reviews, 20)

	reviews, err = svc.ListCourseReviews(course.ID, 10)
	require.NoError(t, err)
	assert.Len(t, reviews, 10)
}
