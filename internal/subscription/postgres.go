package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrPromoInvalid covers unknown, exhausted, and already-redeemed codes. The
// caller gets one error so the reply cannot be used to probe valid codes.
var ErrPromoInvalid = errors.New("promo code is not valid")

// Subscription is one paid plan row. A user is premium while an active row
// with a future expiry exists.
type Subscription struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Source    string    `gorm:"size:32;not null"`
	CreatedAt time.Time
}

// PromoCode grants a fixed number of premium days and may be redeemed a
// limited number of times, at most once per user.
type PromoCode struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"uniqueIndex;size:64;not null"`
	Days        int    `gorm:"not null"`
	MaxUses     int    `gorm:"not null"`
	Redemptions []PromoRedemption
	CreatedAt   time.Time
}

// PromoRedemption records one user redeeming one code.
type PromoRedemption struct {
	ID          uint  `gorm:"primaryKey"`
	PromoCodeID uint  `gorm:"index;not null"`
	UserID      int64 `gorm:"index;not null"`
	CreatedAt   time.Time
}

// Postgres stores subscriptions and promo codes in PostgreSQL via GORM.
type Postgres struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewPostgres connects and migrates the schema.
func NewPostgres(dsn string, log *logrus.Logger) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Subscription{}, &PromoCode{}, &PromoRedemption{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Postgres{db: db, log: log}, nil
}

func (p *Postgres) IsPremium(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&Subscription{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query subscription: %w", err)
	}
	return count > 0, nil
}

func (p *Postgres) SizeLimit(ctx context.Context, userID int64) (int64, error) {
	premium, err := p.IsPremium(ctx, userID)
	if err != nil {
		return 0, err
	}
	return SizeLimitFor(premium), nil
}

// Grant adds premium days for a user, extending the current plan if one is
// still active.
func (p *Postgres) Grant(ctx context.Context, userID int64, days int, source string) error {
	start := time.Now()

	var current Subscription
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, start).
		Order("expires_at DESC").
		First(&current).Error
	if err == nil {
		start = current.ExpiresAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("query subscription: %w", err)
	}

	sub := Subscription{
		UserID:    userID,
		ExpiresAt: start.AddDate(0, 0, days),
		Source:    source,
	}
	if err := p.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return fmt.Errorf("store subscription: %w", err)
	}

	p.log.WithFields(logrus.Fields{
		"user_id": userID,
		"days":    days,
		"source":  source,
	}).Info("Granted premium")
	return nil
}

// Redeem exchanges a promo code for premium days. The whole exchange runs in
// one transaction so concurrent redemptions cannot exceed the use limit.
func (p *Postgres) Redeem(ctx context.Context, userID int64, code string) (int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var days int
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var promo PromoCode
		if err := tx.Where("code = ?", code).First(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPromoInvalid
			}
			return fmt.Errorf("query promo code: %w", err)
		}

		var used int64
		if err := tx.Model(&PromoRedemption{}).
			Where("promo_code_id = ?", promo.ID).
			Count(&used).Error; err != nil {
			return fmt.Errorf("count redemptions: %w", err)
		}
		if used >= int64(promo.MaxUses) {
			return ErrPromoInvalid
		}

		var mine int64
		if err := tx.Model(&PromoRedemption{}).
			Where("promo_code_id = ? AND user_id = ?", promo.ID, userID).
			Count(&mine).Error; err != nil {
			return fmt.Errorf("count redemptions: %w", err)
		}
		if mine > 0 {
			return ErrPromoInvalid
		}

		if err := tx.Create(&PromoRedemption{PromoCodeID: promo.ID, UserID: userID}).Error; err != nil {
			return fmt.Errorf("store redemption: %w", err)
		}
		days = promo.Days
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := p.Grant(ctx, userID, days, "promo:"+code); err != nil {
		return 0, err
	}
	return days, nil
}
