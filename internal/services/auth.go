package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
	"github.com/zkpolls/zkpolls-backend/internal/lib/jwt"
	"github.com/zkpolls/zkpolls-backend/utils"
)

var (
	ErrWalletRequired = errors.New("wallet address is required")
	ErrInvalidToken   = jwt.ErrInvalidToken
)

type UserStorage interface {
	SaveUser(ctx context.Context, walletAddress string) (entity.User, error)
	UserByID(ctx context.Context, id int64) (entity.User, error)
}

// Auth resolves wallet addresses to persistent users and issues session
// credentials.
type Auth struct {
	log         *slog.Logger
	userStorage UserStorage
	tokenSecret string
	tokenTTL    time.Duration
}

func NewAuth(log *slog.Logger, userStorage UserStorage, tokenSecret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:         log,
		userStorage: userStorage,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// ConnectWallet looks the user up by wallet address, creating the record on
// first contact, and returns the user plus a freshly signed credential.
// The same address always resolves to the same user; last_login advances on
// every call.
func (a *Auth) ConnectWallet(ctx context.Context, walletAddress string) (entity.User, string, error) {
	const op = "services.Auth.ConnectWallet"

	log := a.log.With(slog.String("op", op))

	if walletAddress == "" {
		return entity.User{}, "", fmt.Errorf("%s: %w", op, ErrWalletRequired)
	}

	user, err := a.userStorage.SaveUser(ctx, walletAddress)
	if err != nil {
		log.Error("failed to save user", utils.Err(err))
		return entity.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := jwt.NewToken(user, a.tokenSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to sign token", utils.Err(err))
		return entity.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("wallet connected", slog.Int64("userID", user.ID))

	return user, token, nil
}

// Authorize validates a credential and returns the user it names.
func (a *Auth) Authorize(ctx context.Context, token string) (entity.User, error) {
	const op = "services.Auth.Authorize"

	claims, err := jwt.Parse(token, a.tokenSecret)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.userStorage.UserByID(ctx, claims.UserID)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (a *Auth) TokenTTL() time.Duration {
	return a.tokenTTL
}
