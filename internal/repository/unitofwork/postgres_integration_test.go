package unitofwork_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresWiring(t *testing.T) {
	err := godotenv.Load("../../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.GenerationRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check AI Model Repository", func(t *testing.T) {
		count, err := uow.AIModelRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("AI model count: %d", count)
	})

	t.Run("Transactional debit with history row", func(t *testing.T) {
		ctx := context.Background()
		uow := uowFactory.NewUnitOfWork(ctx)

		user := &entity.User{
			Id:         uuid.New(),
			TelegramID: time.Now().UnixNano(),
			FirstName:  "Integration Test User",
			Balance:    100,
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		after, err := uow.UserRepository().DebitBalance(ctx, user.Id, 30)
		require.NoError(t, err)
		assert.Equal(t, 70, after)

		row := &entity.BalanceHistory{
			Id:            uuid.New(),
			UserId:        user.Id,
			Amount:        -30,
			BalanceAfter:  after,
			OperationType: entity.OperationGeneration,
			Description:   "Integration test debit",
		}
		require.NoError(t, uow.BalanceHistoryRepository().Create(ctx, row))
		require.NoError(t, uow.Commit())

		check := uowFactory.NewUnitOfWork(ctx)
		fetched, err := check.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, 70, fetched.Balance)

		// The overdraft guard holds on real postgres too.
		_, err = check.UserRepository().DebitBalance(ctx, user.Id, 1000)
		assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
	})
}
