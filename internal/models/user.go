package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User is the account a profile's records belong to. The analytics core
// only ever sees the id.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex"`
	Password    string
	DisplayName string
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
