package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zkpolls/zkpolls-backend/internal/entity"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity carried by a session credential.
type Claims struct {
	UserID        int64
	WalletAddress string
}

// NewToken issues a signed access token for the user.
func NewToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["wallet"] = user.WalletAddress
	claims["typ"] = "access"
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// Parse validates the token signature, type and expiry and returns its claims.
func Parse(tokenString, secret string) (Claims, error) {
	const op = "jwt.Parse"

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("%s: invalid claims: %w", op, ErrInvalidToken)
	}

	if typ, ok := claims["typ"].(string); !ok || typ != "access" {
		return Claims{}, fmt.Errorf("%s: unexpected token type: %w", op, ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("%s: exp claim missing: %w", op, ErrInvalidToken)
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return Claims{}, fmt.Errorf("%s: token expired: %w", op, ErrInvalidToken)
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return Claims{}, fmt.Errorf("%s: uid claim missing: %w", op, ErrInvalidToken)
	}

	wallet, ok := claims["wallet"].(string)
	if !ok {
		return Claims{}, fmt.Errorf("%s: wallet claim missing: %w", op, ErrInvalidToken)
	}

	return Claims{UserID: int64(uid), WalletAddress: wallet}, nil
}
