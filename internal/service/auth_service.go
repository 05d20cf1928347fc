package service

import (
	"context"
	"fmt"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/mapper"
	"tg-miniapp-be/internal/pkg/telegram"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	// AuthenticateInitData validates a raw Telegram init data string and
	// returns the matching local user, creating it on first contact.
	AuthenticateInitData(ctx context.Context, initData string) (*entity.User, error)

	// IssueToken exchanges validated init data for a signed JWT so clients
	// that cannot resend init data on every request keep a session.
	IssueToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)

	ParseToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	userService IUserService
	telegramCfg config.TelegramConfig
	jwtSecret   string
}

func NewAuthService(userService IUserService, telegramCfg config.TelegramConfig, jwtSecret string) IAuthService {
	return &authService{
		userService: userService,
		telegramCfg: telegramCfg,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) AuthenticateInitData(ctx context.Context, initData string) (*entity.User, error) {
	data, err := telegram.Validate(initData, s.telegramCfg.BotToken, s.telegramCfg.InitDataMaxAge, time.Now())
	if err != nil {
		return nil, err
	}

	user, err := s.userService.GetOrCreate(ctx, &data.User, data.StartParam)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, entity.ErrUserBanned
	}

	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.AuthenticateInitData(ctx, req.InitData)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: signedToken,
		User:        mapper.ToUserResponse(user),
	}, nil
}

func (s *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	rawID, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id in token")
	}

	return userId, nil
}
