package models

import "time"

// Course represents one taught course for a given school year and semester.
// The lesson plan PDF is optional; when present, PdfURL is the public link
// and PdfPath is the storage object path used for later deletion.
type Course struct {
	ID        string    `json:"id" firestore:"-"`
	Year      int       `json:"year" firestore:"year" validate:"required,min=2020,max=2050"`
	Semester  int       `json:"semester" firestore:"semester" validate:"required,oneof=1 2"`
	Name      string    `json:"name" firestore:"name" validate:"required"`
	PdfURL    string    `json:"pdf_url,omitempty" firestore:"pdf_url,omitempty"`
	PdfPath   string    `json:"pdf_path,omitempty" firestore:"pdf_path,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}
