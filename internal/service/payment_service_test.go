package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-testkey"

func signWebhook(req *dto.MidtransWebhookRequest) {
	input := req.OrderId + req.StatusCode + req.GrossAmount + testServerKey
	req.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func newPaymentFixture(t *testing.T) (IPaymentService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	svc := NewPaymentService(factory, config.MidtransConfig{ServerKey: testServerKey}, nil, testLogger(t))
	return svc, factory
}

func createPendingPayment(t *testing.T, factory unitofwork.RepositoryFactory, userId uuid.UUID, tokens, amount int) *entity.Payment {
	t.Helper()

	payment := &entity.Payment{
		Id:        uuid.New(),
		UserId:    userId,
		Amount:    int64(amount),
		Tokens:    tokens,
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
	payment.OrderID = payment.Id.String()

	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PaymentRepository().Create(context.Background(), payment))
	return payment
}

func TestGetPackages(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	packages := svc.GetPackages(context.Background())
	require.NotEmpty(t, packages)
	for _, p := range packages {
		assert.NotEmpty(t, p.Code)
		assert.Greater(t, p.Tokens, 0)
		assert.Greater(t, p.Price, int64(0))
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, _ := newPaymentFixture(t)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		OrderId:           uuid.New().String(),
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "25000.00",
		SignatureKey:      "forged",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid signature", err.Error())
}

func TestWebhookSettlementCreditsOnce(t *testing.T) {
	svc, factory := newPaymentFixture(t)
	user := createTestUser(t, factory, 0)
	payment := createPendingPayment(t, factory, user.Id, 50, 25000)
	ctx := context.Background()

	req := &dto.MidtransWebhookRequest{
		OrderId:           payment.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "25000.00",
	}
	signWebhook(req)

	require.NoError(t, svc.HandleNotification(ctx, req))

	uow := factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)

	paid, err := uow.PaymentRepository().FindOne(ctx, specification.ByOrderID{OrderID: payment.OrderID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	// Midtrans retries webhooks; a replay must not double-credit.
	require.NoError(t, svc.HandleNotification(ctx, req))

	reloaded, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 50, reloaded.Balance)

	rows, err := uow.BalanceHistoryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50, rows[0].Amount)
	assert.Equal(t, entity.OperationDeposit, rows[0].OperationType)
}

func TestWebhookFailureStatuses(t *testing.T) {
	svc, factory := newPaymentFixture(t)
	user := createTestUser(t, factory, 0)
	ctx := context.Background()

	tests := []struct {
		gateway string
		want    entity.PaymentStatus
	}{
		{gateway: "deny", want: entity.PaymentStatusFailed},
		{gateway: "expire", want: entity.PaymentStatusFailed},
		{gateway: "cancel", want: entity.PaymentStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.gateway, func(t *testing.T) {
			payment := createPendingPayment(t, factory, user.Id, 50, 25000)
			req := &dto.MidtransWebhookRequest{
				OrderId:           payment.OrderID,
				TransactionStatus: tt.gateway,
				StatusCode:        "202",
				GrossAmount:       "25000.00",
			}
			signWebhook(req)

			require.NoError(t, svc.HandleNotification(ctx, req))

			got, err := factory.NewUnitOfWork(ctx).PaymentRepository().FindOne(ctx, specification.ByOrderID{OrderID: payment.OrderID})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}

	// No failure path ever credits tokens.
	reloaded, err := factory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: user.Id})
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Balance)
}

func TestWebhookPendingIsNoOp(t *testing.T) {
	svc, factory := newPaymentFixture(t)
	user := createTestUser(t, factory, 0)
	payment := createPendingPayment(t, factory, user.Id, 50, 25000)
	ctx := context.Background()

	req := &dto.MidtransWebhookRequest{
		OrderId:           payment.OrderID,
		TransactionStatus: "pending",
		StatusCode:        "201",
		GrossAmount:       "25000.00",
	}
	signWebhook(req)

	require.NoError(t, svc.HandleNotification(ctx, req))

	got, err := factory.NewUnitOfWork(ctx).PaymentRepository().FindOne(ctx, specification.ByOrderID{OrderID: payment.OrderID})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, got.Status)
}

func TestPaymentStatusOwnership(t *testing.T) {
	svc, factory := newPaymentFixture(t)
	owner := createTestUser(t, factory, 0)
	other := createTestUser(t, factory, 0)
	payment := createPendingPayment(t, factory, owner.Id, 50, 25000)
	ctx := context.Background()

	res, err := svc.GetStatus(ctx, owner.Id, payment.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentStatusPending), res.Status)

	_, err = svc.GetStatus(ctx, other.Id, payment.Id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
