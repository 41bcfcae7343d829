package model

import "time"

// Enquiry is a row in the enquirydetails table, submitted through the public
// contact form.
type Enquiry struct {
	ID     int64     `json:"-" db:"id"`
	Name   string    `json:"name" db:"name"`
	Email  string    `json:"email" db:"email"`
	Mobile string    `json:"mobile" db:"mobile"`
	Query  string    `json:"query" db:"query"`
	Date   time.Time `json:"date" db:"date"`
}
