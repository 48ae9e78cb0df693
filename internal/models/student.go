package models

import "time"

// Instrument is the instrument a student is enrolled for.
type Instrument string

const (
	InstrumentGuitar   Instrument = "guitar"
	InstrumentDrums    Instrument = "drums"
	InstrumentKeyboard Instrument = "keyboard"
)

var instruments = []Instrument{InstrumentGuitar, InstrumentDrums, InstrumentKeyboard}

// Instruments returns every known instrument in canonical order.
func Instruments() []Instrument {
	out := make([]Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// Valid reports whether the instrument is one of the known values.
func (i Instrument) Valid() bool {
	for _, known := range instruments {
		if i == known {
			return true
		}
	}
	return false
}

// Grade is the exam grade a student is preparing for.
type Grade string

const (
	Grade1 Grade = "grade1"
	Grade2 Grade = "grade2"
	Grade3 Grade = "grade3"
)

// Batch is the weekday group a student attends.
type Batch string

const (
	BatchMT Batch = "mt"
	BatchTF Batch = "tf"
	BatchWS Batch = "ws"
)

// Student represents a learner registered with the school.
type Student struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone"`
	Instrument  Instrument `db:"instrument" json:"instrument"`
	Grade       Grade      `db:"grade" json:"grade"`
	Batch       Batch      `db:"batch" json:"batch"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	JoiningDate time.Time  `db:"joining_date" json:"joining_date"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search     string
	Instrument Instrument
	Active     *bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// ActiveStudent is the projection used by statistics queries.
type ActiveStudent struct {
	ID         int64      `db:"id"`
	Instrument Instrument `db:"instrument"`
}
