package service

import (
	"errors"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo     *repository.ReviewRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, enrollmentRepo *repository.EnrollmentRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo:     reviewRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

// CreateReview 只有已报名学员可以评价，且每门课程至多一条
func (s *ReviewService) CreateReview(userID, courseID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, util.NewValidationError("rating must be between 1 and 5")
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	if _, err := s.ReviewRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return nil, util.ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListCourseReviews(courseID uint, limit int) ([]model.Review, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ReviewRepo.ListByCourse(courseID, limit)
}
