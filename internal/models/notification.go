package models

import "gorm.io/gorm"

// Notification is a best-effort activity record kept in PostgreSQL. Actor and
// recipient ids are the hex form of the Mongo user ids.
type Notification struct {
	gorm.Model
	Type        string `json:"type"`
	ActorID     string `json:"actor_id" gorm:"index"`
	RecipientID string `json:"recipient_id" gorm:"index"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
}
