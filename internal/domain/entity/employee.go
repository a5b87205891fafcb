package entity

import (
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
)

// UnassignedHood is the hood every employee belongs to until placed elsewhere
const UnassignedHood = "unassigned"

// Employee is a staff member who issues bills
type Employee struct {
	CID       string    `gorm:"column:cid;primaryKey;size:64" json:"cid"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Rank      enum.Rank `gorm:"size:50;not null" json:"rank"`
	Hood      string    `gorm:"size:100;not null;default:unassigned;index" json:"hood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Hood is a named team of employees
type Hood struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Hood model
func (Hood) TableName() string {
	return "hoods"
}
