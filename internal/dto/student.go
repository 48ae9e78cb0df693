package dto

// StudentRequest is the body accepted when creating or replacing a student.
type StudentRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required"`
	Instrument  string  `json:"instrument" validate:"omitempty,oneof=guitar drums keyboard"`
	Grade       string  `json:"grade" validate:"omitempty,oneof=grade1 grade2 grade3"`
	Batch       string  `json:"batch" validate:"omitempty,oneof=mt tf ws"`
	DateOfBirth *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	JoiningDate string  `json:"joiningDate" validate:"required,datetime=2006-01-02"`
	IsActive    *bool   `json:"isActive"`
}

// AttendanceRequest records one day of attendance for a student.
type AttendanceRequest struct {
	StudentID int64   `json:"studentId" validate:"required,gt=0"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"required,oneof=present absent"`
	Notes     *string `json:"notes" validate:"omitempty,max=255"`
}
