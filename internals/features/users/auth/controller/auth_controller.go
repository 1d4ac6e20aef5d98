// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	"kelasku_backend/internals/features/users/auth/dto"
	authModel "kelasku_backend/internals/features/users/auth/model"
	"kelasku_backend/internals/features/users/auth/service"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("user_email = ?", email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "gagal hash password")
	}

	user := userModel.UserModel{
		UserName:     req.UserName,
		UserEmail:    email,
		UserPassword: string(hashed),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "register gagal: "+err.Error())
	}

	log.Println("[SUCCESS] User terdaftar:", user.UserEmail)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil", fiber.Map{
		"user_id":   user.UserID,
		"user_name": user.UserName,
	})
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("user_email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}

	token, err := service.CreateAccessToken(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "gagal membuat token")
	}

	return helper.Success(c, "Login berhasil", dto.AuthResponse{
		AccessToken: token,
		UserID:      user.UserID.String(),
		UserName:    user.UserName,
		UserRole:    user.UserRole,
	})
}

// POST /api/auth/google
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "id_token Google tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "gagal decode id_token")
	}

	email := strings.ToLower(claimSet.Email)
	var user userModel.UserModel
	err = ctrl.DB.WithContext(c.Context()).Where("user_email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// auto-register user Google
		user = userModel.UserModel{
			UserName:     claimSet.Name,
			UserEmail:    email,
			UserPassword: "-", // tidak dipakai untuk login Google
			UserGoogleID: &claimSet.Sub,
		}
		if err := ctrl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "register via Google gagal")
		}
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	token, err := service.CreateAccessToken(&user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "gagal membuat token")
	}

	return helper.Success(c, "Login Google berhasil", dto.AuthResponse{
		AccessToken: token,
		UserID:      user.UserID.String(),
		UserName:    user.UserName,
		UserRole:    user.UserRole,
	})
}

// POST /api/u/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	auth := strings.TrimSpace(c.Get("Authorization"))
	fields := strings.Fields(auth)
	if len(fields) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "token tidak ditemukan")
	}

	entry := authModel.TokenBlacklist{
		TokenBlacklistToken:     fields[1],
		TokenBlacklistExpiredAt: time.Now().Add(service.AccessTokenTTL),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&entry).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "logout gagal")
	}
	return helper.Success(c, "Logout berhasil", nil)
}
