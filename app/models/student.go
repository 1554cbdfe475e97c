package models

import "time"

// Student belongs to exactly one class roster. StudentNumber is stored as
// a string and is not required to be unique.
type Student struct {
	ID            string    `json:"id" firestore:"-"`
	StudentNumber string    `json:"student_number" firestore:"student_number" validate:"required"`
	Name          string    `json:"name" firestore:"name" validate:"required"`
	CreatedAt     time.Time `json:"created_at" firestore:"created_at"`
}
