package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// SessionTTL is how long an auth cookie stays valid
const SessionTTL = time.Hour * 12

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
)

// SessionClaims is the single authenticated identity carried by the auth
// cookie. Authorization decisions are made from Role, never from session
// flags stored elsewhere
type SessionClaims struct {
	UserID uint
	Role   string
}

// MakeSessionToken signs a new HS256 session token for the given user
func MakeSessionToken(userID uint, role string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(SessionTTL).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("security.jwt_secret")))
}

// ParseSessionToken validates the signature and expiry of a session token
// and returns the claims it carries
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("security.jwt_secret")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return &SessionClaims{
		UserID: uint(userID),
		Role:   role,
	}, nil
}
