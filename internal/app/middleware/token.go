package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IT-Nick/visionhub/internal/domain/model"
)

// Claims полезная нагрузка токена: sub содержит ID пользователя
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken выпускает токен HS256 для пользователя
func GenerateToken(secret string, identity model.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок токена и возвращает контекст вызывающего
func ParseToken(secret, tokenString string) (model.Identity, error) {
	if tokenString == "" {
		return model.Identity{}, errors.New("token is required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Identity{}, errors.New("invalid token")
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return model.Identity{}, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return model.Identity{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return model.Identity{UserID: userID, Role: role}, nil
}
