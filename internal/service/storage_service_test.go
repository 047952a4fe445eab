package service

import (
	"context"
	"learnhub_backend/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalProvider(t *testing.T) *LocalStorageProvider {
	t.Helper()
	return &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}
}

func TestLocalUploadWritesFile(t *testing.T) {
	p := newLocalProvider(t)
	ctx := context.Background()

	url, err := p.Upload(ctx, "covers/1/abc.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/covers/1/abc.png", url)

	data, err := os.ReadFile(filepath.Join(p.Config.LocalPath, "covers/1/abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalUploadFileCopiesFromPath(t *testing.T) {
	p := newLocalProvider(t)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(src, []byte("mp4-bytes"), 0644))

	url, err := p.UploadFile(ctx, "videos/1/video.mp4", src, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/videos/1/video.mp4", url)

	data, err := os.ReadFile(filepath.Join(p.Config.LocalPath, "videos/1/video.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "mp4-bytes", string(data))
}

func TestLocalDelete(t *testing.T) {
	p := newLocalProvider(t)
	ctx := context.Background()

	_, err := p.Upload(ctx, "covers/doomed.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, "covers/doomed.png"))
	_, err = os.Stat(filepath.Join(p.Config.LocalPath, "covers/doomed.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	// 未知类型回退到本地存储
	cfg := &config.Config{}
	cfg.Storage.Type = "tape"
	cfg.Storage.LocalPath = t.TempDir()
	svc := NewStorageService(cfg)
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
