package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaService 处理课程封面与课时视频的上传和转码元信息提取
type MediaService struct {
	StorageService *StorageService
	CourseRepo     *repository.CourseRepository
	ModuleRepo     *repository.ModuleRepository
	LessonRepo     *repository.LessonRepository
}

func NewMediaService(storage *StorageService, courseRepo *repository.CourseRepository, moduleRepo *repository.ModuleRepository, lessonRepo *repository.LessonRepository) *MediaService {
	return &MediaService{
		StorageService: storage,
		CourseRepo:     courseRepo,
		ModuleRepo:     moduleRepo,
		LessonRepo:     lessonRepo,
	}
}

func extAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// UploadCourseCover 上传课程封面并写回课程记录
func (s *MediaService) UploadCourseCover(ctx context.Context, instructorID, courseID uint, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext, util.AllowedImageExtensions) {
		return "", util.NewValidationError("不支持的图片格式")
	}

	course, err := s.CourseRepo.FindOwned(courseID, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrCourseNotFound
		}
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("covers/%d/%s%s", courseID, uuid.New().String(), ext)
	url, err := s.StorageService.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	course.ThumbnailURL = url
	if err := s.CourseRepo.Save(course); err != nil {
		return "", err
	}
	return url, nil
}

// LessonVideoResult 视频上传结果，包含探测到的元信息
type LessonVideoResult struct {
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Duration     float64 `json:"duration"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
}

// UploadLessonVideo 上传课时视频：落到临时文件、探测时长、截取缩略图，再写回课时记录
func (s *MediaService) UploadLessonVideo(ctx context.Context, instructorID, courseID, lessonID uint, file *multipart.FileHeader) (*LessonVideoResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extAllowed(ext, util.AllowedVideoExtensions) {
		return nil, util.NewValidationError("不支持的视频格式")
	}

	lesson, err := s.ownedLesson(courseID, instructorID, lessonID)
	if err != nil {
		return nil, err
	}

	tempDir := filepath.Join(os.TempDir(), "learnhub_uploads")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(tempDir, uuid.New().String()+ext)
	defer os.Remove(tempPath)

	if err := saveMultipartFile(file, tempPath); err != nil {
		return nil, err
	}

	info, err := util.ProbeVideo(tempPath)
	if err != nil {
		return nil, util.NewValidationError("视频文件无法解析")
	}

	videoObject := fmt.Sprintf("videos/%d/%s%s", courseID, uuid.New().String(), ext)
	videoURL, err := s.StorageService.UploadFile(ctx, videoObject, tempPath, "video/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	// 缩略图失败不阻塞视频上传
	var thumbnailURL string
	thumbPath := filepath.Join(tempDir, uuid.New().String()+".jpg")
	if err := util.ExtractThumbnail(tempPath, thumbPath, thumbnailOffset(info.Duration)); err != nil {
		logger.Log.Warn("生成视频缩略图失败", zap.Uint("lessonId", lessonID), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		thumbObject := fmt.Sprintf("thumbnails/%d/%s.jpg", courseID, uuid.New().String())
		thumbnailURL, err = s.StorageService.UploadFile(ctx, thumbObject, thumbPath, "image/jpeg")
		if err != nil {
			logger.Log.Warn("上传视频缩略图失败", zap.Uint("lessonId", lessonID), zap.Error(err))
			thumbnailURL = ""
		}
	}

	lesson.VideoURL = videoURL
	lesson.Duration = info.Duration
	if thumbnailURL != "" {
		lesson.Thumbnail = thumbnailURL
	}
	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}

	return &LessonVideoResult{
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     info.Duration,
		Width:        info.Width,
		Height:       info.Height,
	}, nil
}

// ownedLesson 校验课时属于该讲师的课程，越权一律按不存在处理
func (s *MediaService) ownedLesson(courseID, instructorID, lessonID uint) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindOwned(courseID, instructorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	mod, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil || mod.CourseID != courseID {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

// thumbnailOffset 短视频从片头抓帧，长视频跳过片头几秒
func thumbnailOffset(duration float64) string {
	if duration > 10 {
		return "00:00:05"
	}
	return "00:00:01"
}

func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
