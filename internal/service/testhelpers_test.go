package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/model"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestFactory spins up an isolated in-memory database with the full
// schema. Each call gets its own database, so tests never share state.
func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=10000", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.BalanceHistory{},
		&model.AIModel{},
		&model.Generation{},
		&model.GalleryItem{},
		&model.Payment{},
		&model.Referral{},
		&model.UploadedFile{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return unitofwork.NewRepositoryFactory(db)
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
}

func createTestUser(t *testing.T, factory unitofwork.RepositoryFactory, balance int) *entity.User {
	t.Helper()

	user := &entity.User{
		Id:         uuid.New(),
		TelegramID: time.Now().UnixNano(),
		FirstName:  "Test",
		Balance:    balance,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	uow := factory.NewUnitOfWork(context.Background())
	if err := uow.UserRepository().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func seedCatalog(t *testing.T, factory unitofwork.RepositoryFactory) IAIModelService {
	t.Helper()

	modelService := NewAIModelService(factory, testLogger(t))
	if err := modelService.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	return modelService
}
