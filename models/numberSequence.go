package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shivaccounts/books_backend/config"
	"github.com/shivaccounts/books_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NumberSequence is the dedicated per-prefix counter backing every
// human-readable document and payment number. One row per prefix, mutated
// only under SELECT ... FOR UPDATE so two concurrent creators can never read
// the same value.
type NumberSequence struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Prefix    string    `gorm:"size:10;not null;uniqueIndex" json:"prefix"`
	NextSeq   int64     `gorm:"not null;default:1" json:"next_seq"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const numberingMaxRetries = 3

// FormatSequenceNumber renders the wire format of minted numbers, e.g.
// PAY-00042. Sequences wider than the pad keep all their digits.
func FormatSequenceNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%05d", prefix, seq)
}

// NextSequenceNumber mints the next number for prefix inside the caller's
// transaction. The counter row is locked for the remainder of the
// transaction, so the number is only consumed if the caller commits; on
// rollback no gap-free guarantee is made but no orphaned document can keep a
// number.
//
// A missing counter row is created on first use; a concurrent first use loses
// the unique-index race and retries. Retries are bounded: persistent
// contention surfaces as ErrorNumberingContention, which is safe to retry at
// the operation level.
func NextSequenceNumber(ctx context.Context, tx *gorm.DB, prefix string) (string, int64, error) {
	var lastErr error
	for attempt := 0; attempt < numberingMaxRetries; attempt++ {
		seq, err := lockAndIncrementSequence(ctx, tx, prefix)
		if err == nil {
			return FormatSequenceNumber(prefix, seq), seq, nil
		}
		lastErr = err
		if !isRetryableSequenceError(err) {
			break
		}
	}

	if lastErr != nil && !isRetryableSequenceError(lastErr) {
		if config.AllowDegradedNumbering() {
			// Counter row unusable for a non-contention reason. Degraded mode:
			// fall back to a timestamp-derived suffix, which stays unique but
			// breaks the monotonic sequence. Must be visible in the logs.
			number := fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
			config.GetLogger().WithFields(logrus.Fields{
				"module": "numberSequence",
				"prefix": prefix,
				"number": number,
			}).Warn("numbering counter unavailable, minted degraded timestamp number: " + lastErr.Error())
			return number, 0, nil
		}
		return "", 0, lastErr
	}

	return "", 0, utils.ErrorNumberingContention
}

func lockAndIncrementSequence(ctx context.Context, tx *gorm.DB, prefix string) (int64, error) {
	var seq NumberSequence
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ?", prefix).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First number for this prefix; the unique index arbitrates
		// concurrent creators.
		seq = NumberSequence{Prefix: prefix, NextSeq: 1}
		if err := tx.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	minted := seq.NextSeq
	if err := tx.WithContext(ctx).Model(&seq).
		Update("next_seq", gorm.Expr("next_seq + 1")).Error; err != nil {
		return 0, err
	}
	return minted, nil
}

// Lock waits, deadlocks and duplicate-key races on first use are transient.
func isRetryableSequenceError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062, 1205, 1213: // duplicate entry, lock wait timeout, deadlock
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "duplicate entry")
}
