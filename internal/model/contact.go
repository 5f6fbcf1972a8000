package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	CategoryID *string    `json:"categoryId"`
	Position   int        `json:"position"`
	LastSentAt *time.Time `json:"lastSentAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func NewContact(userID, name, email string, categoryID *string, position int) *Contact {
	now := time.Now()
	return &Contact{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       name,
		Email:      email,
		CategoryID: categoryID,
		Position:   position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
