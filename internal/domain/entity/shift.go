package entity

import "time"

// Shift is one clock-in/clock-out period of an employee
type Shift struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EmployeeCID string     `gorm:"column:employee_cid;size:64;not null;index" json:"employee_cid"`
	ClockIn     time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// IsOpen reports whether the employee is still clocked in
func (s *Shift) IsOpen() bool {
	return s.ClockOut == nil
}

// Duration is the length of a closed shift, or the time elapsed so far for an open one
func (s *Shift) Duration(now time.Time) time.Duration {
	if s.ClockOut != nil {
		return s.ClockOut.Sub(s.ClockIn)
	}
	return now.Sub(s.ClockIn)
}
