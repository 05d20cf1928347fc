package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/pkg/events"
	pktNats "tg-miniapp-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Token packages offered at checkout. Prices are in IDR as midtrans expects.
var tokenPackages = []entity.TokenPackage{
	{Code: "starter", Name: "Starter Pack", Tokens: 50, Price: 25000},
	{Code: "creator", Name: "Creator Pack", Tokens: 150, Price: 65000},
	{Code: "studio", Name: "Studio Pack", Tokens: 400, Price: 150000},
	{Code: "pro", Name: "Pro Pack", Tokens: 1000, Price: 330000},
}

type IPaymentService interface {
	GetPackages(ctx context.Context) []*dto.TokenPackageResponse
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	GetStatus(ctx context.Context, userId, paymentId uuid.UUID) (*dto.PaymentStatusResponse, error)
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            config.MidtransConfig
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, cfg config.MidtransConfig, eventPublisher *pktNats.Publisher, log logger.ILogger) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *paymentService) GetPackages(ctx context.Context) []*dto.TokenPackageResponse {
	res := make([]*dto.TokenPackageResponse, len(tokenPackages))
	for i, p := range tokenPackages {
		res[i] = &dto.TokenPackageResponse{
			Code:   p.Code,
			Name:   p.Name,
			Tokens: p.Tokens,
			Price:  p.Price,
		}
	}
	return res
}

func findPackage(code string) *entity.TokenPackage {
	for i := range tokenPackages {
		if tokenPackages[i].Code == code {
			return &tokenPackages[i]
		}
	}
	return nil
}

func (s *paymentService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	pkg := findPackage(req.PackageCode)
	if pkg == nil {
		return nil, fmt.Errorf("%w: unknown package %q", entity.ErrInvalidInput, req.PackageCode)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrNotFound
	}

	payment := &entity.Payment{
		Id:        uuid.New(),
		UserId:    userId,
		Amount:    pkg.Price,
		Tokens:    pkg.Tokens,
		Status:    entity.PaymentStatusPending,
		CreatedAt: time.Now(),
	}
	payment.OrderID = payment.Id.String()

	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	// External gateway call happens after the row is persisted so the webhook
	// always finds something to settle against.
	var sClient snap.Client
	env := midtrans.Sandbox
	if s.cfg.IsProduction {
		env = midtrans.Production
	}
	sClient.New(s.cfg.ServerKey, env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  payment.OrderID,
			GrossAmt: pkg.Price,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.DisplayName(),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    pkg.Code,
				Price: pkg.Price,
				Qty:   1,
				Name:  fmt.Sprintf("%s (%d tokens)", pkg.Name, pkg.Tokens),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		_ = uow.PaymentRepository().MarkFailed(ctx, payment.OrderID, midErr.GetMessage(), entity.PaymentStatusFailed)
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	s.logger.Info("Payment", "Checkout created", map[string]interface{}{
		"payment_id": payment.Id, "user_id": userId, "package": pkg.Code, "amount": pkg.Price,
	})

	return &dto.CheckoutResponse{
		PaymentId:   payment.Id,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.ServerKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.logger.Warn("Payment", "Webhook signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return fmt.Errorf("invalid signature")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.settle(ctx, req)
	case "deny", "cancel", "expire":
		uow := s.uowFactory.NewUnitOfWork(ctx)
		status := entity.PaymentStatusFailed
		if req.TransactionStatus == "cancel" {
			status = entity.PaymentStatusCancelled
		}
		return uow.PaymentRepository().MarkFailed(ctx, req.OrderId, req.TransactionStatus, status)
	case "pending":
		return nil
	default:
		s.logger.Warn("Payment", "Unknown transaction status", map[string]interface{}{
			"order_id": req.OrderId, "status": req.TransactionStatus,
		})
		return nil
	}
}

// settle marks the payment paid and credits the tokens in one transaction.
// MarkPaid is guarded on the pending status, so a replayed webhook loses the
// swap and credits nothing.
func (s *paymentService) settle(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByOrderID{OrderID: req.OrderId})
	if err != nil {
		return err
	}
	if payment == nil {
		return fmt.Errorf("payment not found for order %s", req.OrderId)
	}

	won, err := uow.PaymentRepository().MarkPaid(ctx, req.OrderId, req.TransactionStatus)
	if err != nil {
		return err
	}
	if !won {
		s.logger.Info("Payment", "Webhook replay ignored", map[string]interface{}{"order_id": req.OrderId})
		return nil
	}

	ref := payment.Id.String()
	desc := fmt.Sprintf("Token purchase (%d tokens)", payment.Tokens)
	newBalance, err := applyCredit(ctx, uow, payment.UserId, payment.Tokens, entity.OperationDeposit, desc, &ref)
	if err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("Payment", "Payment settled", map[string]interface{}{
		"payment_id": payment.Id, "user_id": payment.UserId, "tokens": payment.Tokens, "balance_after": newBalance,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "PAYMENT_COMPLETED",
			Data: map[string]interface{}{
				"payment_id": payment.Id.String(),
				"user_id":    payment.UserId.String(),
				"tokens":     payment.Tokens,
				"balance":    newBalance,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Payment", "Failed to publish PAYMENT_COMPLETED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (s *paymentService) GetStatus(ctx context.Context, userId, paymentId uuid.UUID) (*dto.PaymentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payment, err := uow.PaymentRepository().FindOne(ctx,
		specification.ByID{ID: paymentId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, entity.ErrNotFound
	}

	return &dto.PaymentStatusResponse{
		Id:     payment.Id,
		Status: string(payment.Status),
		Tokens: payment.Tokens,
		PaidAt: payment.PaidAt,
	}, nil
}
