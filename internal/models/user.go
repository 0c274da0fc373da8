// internal/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	Street       string             `bson:"street" json:"street"`
	Apartment    string             `bson:"apartment" json:"apartment"`
	Zip          string             `bson:"zip" json:"zip"`
	City         string             `bson:"city" json:"city"`
	Country      string             `bson:"country" json:"country"`
}

// UserSummary is the projection embedded in populated order responses.
type UserSummary struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
