package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/mikhailsoldatkin/yatube-social/config"
)

// GenerateToken issues a signed session token for the user.
func GenerateToken(userID int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken parses a session token and returns the user ID it carries.
func ValidateToken(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("invalid user id claim")
		}
		return int(userID), nil
	}

	return 0, errors.New("invalid token")
}

// GeneratePasswordResetToken issues a short-lived token bound to an email.
func GeneratePasswordResetToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":   email,
		"purpose": "password_reset",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidatePasswordResetToken returns the email a reset token was issued for.
func ValidatePasswordResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims["purpose"] != "password_reset" {
		return "", errors.New("wrong token purpose")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("invalid email claim")
	}
	return email, nil
}
