package dao

import (
	"context"
	"errors"
	"time"

	"github.com/planhub/collab-event-service/internal/domain"
	"github.com/planhub/collab-event-service/internal/model"
	"github.com/planhub/collab-event-service/pkg/timex"

	"gorm.io/gorm"
)

type tokenRepository struct {
	dao *Dao
}

func NewTokenRepository(dao *Dao) domain.TokenRepository {
	return &tokenRepository{dao: dao}
}

func (r *tokenRepository) Blacklist(ctx context.Context, token string, uid int64, expiresAt int64) error {
	m := &model.TokenBlacklist{
		Token:     token,
		UID:       uid,
		ExpiresAt: timex.Time(time.Unix(expiresAt, 0)),
		CreatedAt: timex.Now(),
	}
	err := r.dao.DB(ctx).Create(m).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Revoking twice is a no-op.
		return nil
	}
	return err
}

func (r *tokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.dao.DB(ctx).Model(&model.TokenBlacklist{}).
		Where("token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, now int64) (int64, error) {
	result := r.dao.DB(ctx).
		Where("expires_at < ?", timex.Time(time.Unix(now, 0))).
		Delete(&model.TokenBlacklist{})
	return result.RowsAffected, result.Error
}
