package account

import "time"

// Account is the persistence model for login credentials. Username,
// email and the legacy sequence number all carry unique indexes.
type Account struct {
	ID           int64     `gorm:"primaryKey"`
	Sno          int64     `gorm:"column:sno;uniqueIndex;not null"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Account) TableName() string {
	return "login_accounts"
}
