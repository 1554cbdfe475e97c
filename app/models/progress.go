package models

import "time"

// ProgressEntry is one lesson log line for a class: what was covered on a
// given date and period. Several entries may share the same date and period.
type ProgressEntry struct {
	ID        string    `json:"id" firestore:"-"`
	Date      string    `json:"date" firestore:"date" validate:"required"`
	Period    int       `json:"period" firestore:"period" validate:"required,min=1,max=8"`
	Topic     string    `json:"topic" firestore:"topic" validate:"required"`
	Notes     string    `json:"notes" firestore:"notes"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}
