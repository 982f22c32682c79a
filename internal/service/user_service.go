package service

import (
	"context"
	"errors"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/dto"
	"github.com/planhub/collab-event-service/pkg/app"
	"github.com/planhub/collab-event-service/pkg/code"
	"github.com/planhub/collab-event-service/pkg/timex"
	"github.com/planhub/collab-event-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles accounts and authentication.
type UserService interface {
	// Register creates an account and returns a fresh token pair.
	Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.UserTokenDTO, error)

	// Login authenticates by username or email.
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserTokenDTO, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, params *dto.UserRefreshRequest, clientIP string) (*dto.UserTokenDTO, error)

	// Logout revokes the presented access token.
	Logout(ctx context.Context, uid int64, token string) error

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo returns the account profile.
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenRepo    domain.TokenRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService creates a UserService instance.
func NewUserService(userRepo domain.UserRepository, tokenRepo domain.TokenRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// tokenPair issues an access + refresh token pair for the user.
func (s *userService) tokenPair(user *domain.User, clientIP string) (*dto.UserTokenDTO, error) {
	token, err := s.tokenManager.GenerateAccess(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	refresh, err := s.tokenManager.GenerateRefresh(user.UID)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	expiresAt, err := s.tokenManager.ExpiresAt(token)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	return &dto.UserTokenDTO{
		UID:          user.UID,
		Username:     user.Username,
		Token:        token,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt.Unix(),
	}, nil
}

func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.UserTokenDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}

	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordNotMatch
	}

	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailAlreadyExists
	}

	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if nameUser != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
	})
	if err != nil {
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	return s.tokenPair(user, clientIP)
}

func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserTokenDTO, error) {
	var user *domain.User
	var err error

	// Do not reveal whether the account exists; failed lookups and
	// wrong passwords share one error.
	if util.IsValidEmail(params.Credentials) {
		user, err = s.userRepo.GetByEmail(ctx, params.Credentials)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, params.Credentials)
	}
	if err != nil {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	return s.tokenPair(user, clientIP)
}

func (s *userService) Refresh(ctx context.Context, params *dto.UserRefreshRequest, clientIP string) (*dto.UserTokenDTO, error) {
	claims, err := s.tokenManager.Parse(params.RefreshToken, app.ScopeRefresh)
	if err != nil {
		return nil, code.ErrorInvalidRefreshToken
	}

	blacklisted, err := s.tokenRepo.IsBlacklisted(ctx, params.RefreshToken)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	if blacklisted {
		return nil, code.ErrorTokenBlacklisted
	}

	user, err := s.userRepo.GetByUID(ctx, claims.UID)
	if err != nil {
		return nil, code.ErrorInvalidRefreshToken
	}

	token, err := s.tokenManager.GenerateAccess(user.UID, user.Username, clientIP)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	expiresAt, err := s.tokenManager.ExpiresAt(token)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}
	return &dto.UserTokenDTO{
		UID:       user.UID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *userService) Logout(ctx context.Context, uid int64, token string) error {
	expiresAt, err := s.tokenManager.ExpiresAt(token)
	if err != nil {
		return code.ErrorInvalidUserAuthToken
	}
	if err := s.tokenRepo.Blacklist(ctx, token, uid, expiresAt.Unix()); err != nil {
		s.logger.Error("UserService.Logout blacklist failed",
			zap.Int64("uid", uid),
			zap.Error(err),
		)
		return code.ErrorDBQuery
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorUserPasswordNotMatch
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery
	}

	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserOldPasswordFailed
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorPasswordNotValid
	}

	return s.userRepo.UpdatePassword(ctx, uid, password)
}

func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		s.logger.Error("UserService.GetInfo failed",
			zap.Int64("uid", uid),
			zap.Error(err),
		)
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(user), nil
}
