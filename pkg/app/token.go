package app

import (
	"fmt"
	"time"

	"github.com/planhub/collab-event-service/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenIssuer = "collab-event-service"

// Token scopes. Access tokens authenticate API calls; refresh tokens
// may only be exchanged for a new access token.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
)

// TokenConfig configures the token manager. The signing key and
// lifetimes are injected here; nothing reads process-wide state.
type TokenConfig struct {
	SecretKey     string        `yaml:"secret-key"`
	AccessExpiry  time.Duration `yaml:"access-expiry"`
	RefreshExpiry time.Duration `yaml:"refresh-expiry"`
	Issuer        string        `yaml:"issuer"`
}

// TokenManager issues and validates scoped JWTs.
type TokenManager interface {
	GenerateAccess(uid int64, username, ip string) (string, error)
	GenerateRefresh(uid int64) (string, error)
	// Parse validates the signature and the expected scope.
	Parse(token string, scope string) (*UserEntity, error)
	// ExpiresAt returns the expiry of a valid token of any scope.
	ExpiresAt(token string) (time.Time, error)
}

type tokenManager struct {
	config TokenConfig
}

func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.AccessExpiry == 0 {
		cfg.AccessExpiry = time.Hour
	}
	if cfg.RefreshExpiry == 0 {
		cfg.RefreshExpiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity is the claim set stored in issued tokens.
type UserEntity struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	IP       string `json:"ip"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

func (t *tokenManager) signingKey() []byte {
	return []byte(t.config.SecretKey + "_" + util.GetMachineID())
}

func (t *tokenManager) generate(uid int64, username, ip, scope string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:      uid,
		Username: username,
		IP:       ip,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   "user-token",
			ID:        fmt.Sprintf("%d", uid),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.signingKey())
}

func (t *tokenManager) GenerateAccess(uid int64, username, ip string) (string, error) {
	return t.generate(uid, username, ip, ScopeAccess, t.config.AccessExpiry)
}

func (t *tokenManager) GenerateRefresh(uid int64) (string, error) {
	return t.generate(uid, "", "", ScopeRefresh, t.config.RefreshExpiry)
}

func (t *tokenManager) parse(tokenString string) (*UserEntity, error) {
	claims := &UserEntity{}

	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.signingKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (t *tokenManager) Parse(tokenString string, scope string) (*UserEntity, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Scope != scope {
		return nil, fmt.Errorf("invalid token scope: %s", claims.Scope)
	}
	return claims, nil
}

func (t *tokenManager) ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}

// GetUID extracts the authenticated user ID from the request context.
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetIP extracts the login IP recorded in the token claims.
func GetIP(ctx *gin.Context) (out string) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.IP
		}
	}
	return
}
