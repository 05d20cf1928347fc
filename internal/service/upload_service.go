package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/pkg/media"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true,
}

type IUploadService interface {
	SaveMultipart(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
	SaveBase64(ctx context.Context, userId uuid.UUID, req *dto.Base64UploadRequest) (*dto.UploadResponse, error)
}

type uploadService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.UploadConfig
	baseURL    string
	logger     logger.ILogger
}

func NewUploadService(uowFactory unitofwork.RepositoryFactory, cfg config.UploadConfig, baseURL string, log logger.ILogger) IUploadService {
	return &uploadService{
		uowFactory: uowFactory,
		cfg:        cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log,
	}
}

func (s *uploadService) SaveMultipart(ctx context.Context, userId uuid.UUID, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	fileType, maxSize, err := s.classify(ext)
	if err != nil {
		return nil, err
	}
	if fileHeader.Size > maxSize {
		return nil, fmt.Errorf("%w: file exceeds %dMB limit", entity.ErrInvalidInput, maxSize>>20)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: file exceeds %dMB limit", entity.ErrInvalidInput, maxSize>>20)
	}

	return s.store(ctx, userId, data, ext, fileType)
}

func (s *uploadService) SaveBase64(ctx context.Context, userId uuid.UUID, req *dto.Base64UploadRequest) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(req.Filename))
	fileType, maxSize, err := s.classify(ext)
	if err != nil {
		return nil, err
	}

	// Tolerate data URI prefixes from frontend canvas exports.
	raw := req.Data
	if idx := strings.Index(raw, ","); idx != -1 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64 payload", entity.ErrInvalidInput)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: file exceeds %dMB limit", entity.ErrInvalidInput, maxSize>>20)
	}

	return s.store(ctx, userId, data, ext, fileType)
}

func (s *uploadService) store(ctx context.Context, userId uuid.UUID, data []byte, ext string, fileType entity.FileType) (*dto.UploadResponse, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	var duration float64
	if fileType == entity.FileTypeVideo {
		d, err := media.MP4Duration(bytes.NewReader(data))
		if err != nil {
			s.logger.Warn("Upload", "Could not read video duration", map[string]interface{}{
				"file": name, "error": err.Error(),
			})
		} else {
			duration = d
		}
	}

	fileURL := s.baseURL + "/uploads/" + name

	record := &entity.UploadedFile{
		Id:           uuid.New(),
		UserId:       userId,
		URL:          fileURL,
		FileType:     fileType,
		SizeBytes:    int64(len(data)),
		DurationSecs: duration,
		CreatedAt:    time.Now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UploadedFileRepository().Create(ctx, record); err != nil {
		// Keep the stored file out of the tree when the record fails, the
		// motion-control path depends on the record existing.
		_ = os.Remove(path)
		return nil, err
	}

	s.logger.Info("Upload", "File stored", map[string]interface{}{
		"user_id": userId, "file": name, "type": fileType, "bytes": len(data),
	})

	return &dto.UploadResponse{
		URL:      fileURL,
		FileType: string(fileType),
		Duration: duration,
	}, nil
}

func (s *uploadService) classify(ext string) (entity.FileType, int64, error) {
	switch {
	case imageExtensions[ext]:
		return entity.FileTypeImage, s.cfg.MaxImageSize, nil
	case videoExtensions[ext]:
		return entity.FileTypeVideo, s.cfg.MaxVideoSize, nil
	default:
		return "", 0, fmt.Errorf("%w: unsupported file type %q", entity.ErrInvalidInput, ext)
	}
}
