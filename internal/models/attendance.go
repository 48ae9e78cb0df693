package models

import "time"

// AttendanceStatus captures whether a student showed up for a class.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance is a single day's presence record for a student.
type Attendance struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     *string          `db:"notes" json:"notes,omitempty"`
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	StudentID *int64
	From      *time.Time
	To        *time.Time
	Status    AttendanceStatus
}
