package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hrms/internal/domain/errs"
)

type Claims struct {
	UserID     int64  `json:"uid"`
	Role       string `json:"role"`
	EmployeeID int64  `json:"eid"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken issues an HS256 token for the actor. There is no revocation
// list: logout is client-side and an issued token stays valid until expiry.
func GenerateToken(secret string, actor Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:     actor.UserID,
		Role:       actor.Role,
		EmployeeID: actor.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.Wrap(errs.Unauthenticated, "token expired", err)
		}
		return nil, errs.Wrap(errs.Unauthenticated, "invalid token", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errs.New(errs.Unauthenticated, "invalid token")
	}
	return claims, nil
}
