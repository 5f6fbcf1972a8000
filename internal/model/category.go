package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCategory(userID, name string, position int) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
