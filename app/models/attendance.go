package models

import "time"

// AttendanceRecord is one student's attendance for a class on a date.
// StudentNumber and StudentName are snapshots taken at save time. The
// logical key is (class_id, student_id, date); the store derives the
// document ID from it so the key can hold at most one record.
type AttendanceRecord struct {
	ID            string           `json:"id" firestore:"-"`
	ClassID       string           `json:"class_id" firestore:"class_id"`
	StudentID     string           `json:"student_id" firestore:"student_id"`
	StudentNumber string           `json:"student_number" firestore:"student_number"`
	StudentName   string           `json:"student_name" firestore:"student_name"`
	Date          string           `json:"date" firestore:"date"`
	Status        AttendanceStatus `json:"status" firestore:"status" validate:"required,oneof=present absent late excused"`
	Notes         string           `json:"notes" firestore:"notes"`
	LastUpdatedAt time.Time        `json:"last_updated_at" firestore:"last_updated_at"`
}
