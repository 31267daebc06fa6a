package utils

import (
	"errors"
	"time"

	"github.com/kartavya2004/retail-billing/config"

	"github.com/dgrijalva/jwt-go"
)

type Claims struct {
	EnterpriseID uint   `json:"id"`
	PhoneNumber  string `json:"phone_number"`
	jwt.StandardClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

func GenerateToken(enterpriseID uint, phoneNumber string) (string, error) {
	lifespan := time.Duration(config.AppConfig.Server.JWTExpirationHours) * time.Hour

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		EnterpriseID: enterpriseID,
		PhoneNumber:  phoneNumber,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(lifespan).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})

	return token.SignedString([]byte(config.AppConfig.Server.JWTSecret))
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.AppConfig.Server.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
