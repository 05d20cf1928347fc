package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/pkg/telegram"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"
	"tg-miniapp-be/pkg/events"
	pktNats "tg-miniapp-be/pkg/nats"

	"github.com/google/uuid"
)

type IUserService interface {
	// GetOrCreate resolves a validated Telegram identity to a local user,
	// creating the account on first contact. Creation credits the welcome
	// bonus and settles the referral carried in start_param, all in one
	// transaction.
	GetOrCreate(ctx context.Context, tgUser *telegram.WebAppUser, startParam string) (*entity.User, error)
	GetById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)
	GetReferralInfo(ctx context.Context, userId uuid.UUID) (*dto.ReferralInfoResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	telegramCfg    config.TelegramConfig
	bonusCfg       config.BonusConfig
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	telegramCfg config.TelegramConfig,
	bonusCfg config.BonusConfig,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		telegramCfg:    telegramCfg,
		bonusCfg:       bonusCfg,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *userService) GetOrCreate(ctx context.Context, tgUser *telegram.WebAppUser, startParam string) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByTelegramID{TelegramID: tgUser.ID})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.refreshProfile(ctx, uow, existing, tgUser)
		return existing, nil
	}

	user := &entity.User{
		Id:         uuid.New(),
		TelegramID: tgUser.ID,
		FirstName:  tgUser.FirstName,
		Balance:    0,
		IsAdmin:    s.isAdminTelegramID(tgUser.ID),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if tgUser.Username != "" {
		username := tgUser.Username
		user.Username = &username
	}
	if tgUser.LastName != "" {
		lastName := tgUser.LastName
		user.LastName = &lastName
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if s.bonusCfg.WelcomeTokens > 0 {
		newBalance, err := applyCredit(ctx, uow, user.Id, s.bonusCfg.WelcomeTokens, entity.OperationWelcome, "Welcome bonus", nil)
		if err != nil {
			return nil, err
		}
		user.Balance = newBalance
	}

	if err := s.settleReferral(ctx, uow, user, startParam); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("User", "User registered", map[string]interface{}{
		"user_id": user.Id, "telegram_id": user.TelegramID,
	})

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "USER_REGISTERED",
			Data: map[string]interface{}{
				"user_id":     user.Id.String(),
				"telegram_id": user.TelegramID,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("User", "Failed to publish USER_REGISTERED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return user, nil
}

// settleReferral credits the referrer named by start_param inside the
// caller's open transaction. Self-referrals, unknown referrers, banned
// referrers and replays are silently ignored; a bad referral never blocks
// registration.
func (s *userService) settleReferral(ctx context.Context, uow unitofwork.UnitOfWork, newUser *entity.User, startParam string) error {
	referrerTelegramID, ok := parseReferralParam(startParam)
	if !ok || referrerTelegramID == newUser.TelegramID {
		return nil
	}

	referrer, err := uow.UserRepository().FindOne(ctx, specification.ByTelegramID{TelegramID: referrerTelegramID})
	if err != nil {
		return err
	}
	if referrer == nil || referrer.IsBanned {
		return nil
	}

	already, err := uow.ReferralRepository().FindOne(ctx, specification.Filter("referred_id", newUser.Id))
	if err != nil {
		return err
	}
	if already != nil {
		return nil
	}

	referral := &entity.Referral{
		Id:          uuid.New(),
		ReferrerId:  referrer.Id,
		ReferredId:  newUser.Id,
		BonusTokens: s.bonusCfg.ReferralTokens,
		CreatedAt:   time.Now(),
	}
	if err := uow.ReferralRepository().Create(ctx, referral); err != nil {
		return err
	}

	if s.bonusCfg.ReferralTokens > 0 {
		ref := newUser.Id.String()
		desc := fmt.Sprintf("Referral bonus for inviting %s", newUser.DisplayName())
		if _, err := applyCredit(ctx, uow, referrer.Id, s.bonusCfg.ReferralTokens, entity.OperationReferral, desc, &ref); err != nil {
			return err
		}
	}

	s.logger.Info("User", "Referral settled", map[string]interface{}{
		"referrer_id": referrer.Id, "referred_id": newUser.Id, "bonus": s.bonusCfg.ReferralTokens,
	})
	return nil
}

// refreshProfile keeps the stored Telegram profile fields current. Best
// effort: a failed update never blocks authentication.
func (s *userService) refreshProfile(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, tgUser *telegram.WebAppUser) {
	changed := false

	if tgUser.FirstName != "" && user.FirstName != tgUser.FirstName {
		user.FirstName = tgUser.FirstName
		changed = true
	}
	if tgUser.Username != "" && (user.Username == nil || *user.Username != tgUser.Username) {
		username := tgUser.Username
		user.Username = &username
		changed = true
	}
	if tgUser.LastName != "" && (user.LastName == nil || *user.LastName != tgUser.LastName) {
		lastName := tgUser.LastName
		user.LastName = &lastName
		changed = true
	}

	if !changed {
		return
	}
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		s.logger.Warn("User", "Failed to refresh profile", map[string]interface{}{
			"user_id": user.Id, "error": err.Error(),
		})
	}
}

func (s *userService) GetById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByTelegramID{TelegramID: telegramID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (s *userService) GetReferralInfo(ctx context.Context, userId uuid.UUID) (*dto.ReferralInfoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrNotFound
	}

	count, err := uow.ReferralRepository().CountByReferrer(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.ReferralInfoResponse{
		ReferralLink:  fmt.Sprintf("https://t.me/%s?start=ref_%d", s.telegramCfg.BotUsername, user.TelegramID),
		ReferredCount: count,
		BonusPerUser:  s.bonusCfg.ReferralTokens,
	}, nil
}

func (s *userService) isAdminTelegramID(telegramID int64) bool {
	for _, id := range s.telegramCfg.AdminTelegramIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// parseReferralParam accepts both "ref_<telegram id>" and a bare numeric id.
func parseReferralParam(param string) (int64, bool) {
	param = strings.TrimSpace(param)
	param = strings.TrimPrefix(param, "ref_")
	if param == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
