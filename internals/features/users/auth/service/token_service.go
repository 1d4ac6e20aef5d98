package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"kelasku_backend/internals/configs"
	userModel "kelasku_backend/internals/features/users/user/model"
)

const AccessTokenTTL = 24 * time.Hour

// CreateAccessToken menerbitkan JWT dengan klaim id/role/user_name.
// Role dibawa sebagai klaim — core tidak pernah membandingkan secret admin inline.
func CreateAccessToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"role":      user.UserRole,
		"user_name": user.UserName,
		"exp":       time.Now().Add(AccessTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
