package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type GalleryFilter struct {
	FileType      string
	FavoritesOnly bool
	Limit         int
	Offset        int
}

type IGalleryService interface {
	List(ctx context.Context, userId uuid.UUID, filter GalleryFilter) ([]*entity.GalleryItem, int64, error)
	SetFavorite(ctx context.Context, userId, id uuid.UUID, favorite bool) error
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type galleryService struct {
	uowFactory unitofwork.RepositoryFactory
	uploadDir  string
	baseURL    string
	logger     logger.ILogger
}

func NewGalleryService(uowFactory unitofwork.RepositoryFactory, uploadDir, baseURL string, log logger.ILogger) IGalleryService {
	return &galleryService{
		uowFactory: uowFactory,
		uploadDir:  uploadDir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     log,
	}
}

func (s *galleryService) List(ctx context.Context, userId uuid.UUID, filter GalleryFilter) ([]*entity.GalleryItem, int64, error) {
	specs := []specification.Specification{specification.UserOwnedBy{UserID: userId}}
	if filter.FileType != "" {
		specs = append(specs, specification.ByFileType{FileType: filter.FileType})
	}
	if filter.FavoritesOnly {
		specs = append(specs, specification.FavoritesOnly{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.GalleryRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: filter.Limit, Offset: filter.Offset},
	)
	items, err := uow.GalleryRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *galleryService) SetFavorite(ctx context.Context, userId, id uuid.UUID, favorite bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}
	return uow.GalleryRepository().SetFavorite(ctx, item.Id, favorite)
}

func (s *galleryService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	item, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.GalleryRepository().Delete(ctx, item.Id); err != nil {
		return err
	}

	// Provider-hosted results stay where they are; only files we stored
	// ourselves get removed from disk.
	if localPath, ok := s.localFilePath(item.FileURL); ok {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Gallery", "Failed to remove stored file", map[string]interface{}{
				"path": localPath, "error": err.Error(),
			})
		}
	}

	return nil
}

func (s *galleryService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.GalleryItem, error) {
	item, err := uow.GalleryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrNotFound
	}
	return item, nil
}

func (s *galleryService) localFilePath(fileURL string) (string, bool) {
	prefix := s.baseURL + "/uploads/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	name := filepath.Base(strings.TrimPrefix(fileURL, prefix))
	if name == "" || name == "." || name == "/" {
		return "", false
	}
	return filepath.Join(s.uploadDir, name), true
}
