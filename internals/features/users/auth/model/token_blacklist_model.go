package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist menyimpan token yang sudah logout sampai expired.
type TokenBlacklist struct {
	TokenBlacklistID        uint           `gorm:"column:token_blacklist_id;primaryKey;autoIncrement" json:"token_blacklist_id"`
	TokenBlacklistToken     string         `gorm:"column:token_blacklist_token;type:text;not null;index" json:"token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time      `gorm:"column:token_blacklist_expired_at;not null" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time      `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;index" json:"token_blacklist_deleted_at,omitempty"`
}

func (TokenBlacklist) TableName() string { return "token_blacklists" }
