package domain

import "time"

// AccountID is assigned by the store on creation. The zero value means the
// account has not been persisted yet.
type AccountID int32

// PasswordDigest is the encoded output of the password hasher. Only the hasher
// produces values of this type, so a plaintext password cannot end up in an
// Account by accident.
type PasswordDigest string

// Credentials is the plaintext email/password pair received on registration
// and login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToAccount builds the record to persist for these credentials. The plaintext
// password is dropped.
func (c Credentials) ToAccount(digest PasswordDigest) *Account {
	return &Account{
		Email:    c.Email,
		Password: digest,
	}
}

type Account struct {
	ID       AccountID      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string         `json:"email" gorm:"uniqueIndex;not null"`
	Password PasswordDigest `json:"-" gorm:"column:password;not null"`
}

// Session is the decoded claim set of a valid token. It lives for a single
// request and is never stored.
type Session struct {
	AccountID AccountID
	NotBefore time.Time
	ExpiresAt time.Time
}
