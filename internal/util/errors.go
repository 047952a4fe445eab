package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCourseNotFound 同时覆盖"课程不存在"与"课程属于他人"，避免泄露资源存在性
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEventNotFound      = errors.New("calendar event not found")
	ErrSessionNotFound    = errors.New("builder session not found")

	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotPublished = errors.New("course not published")
	ErrAlreadyReviewed    = errors.New("course already reviewed by this user")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
)

// ValidationError 请求体校验失败，控制器映射为 400
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
