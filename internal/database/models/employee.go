package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalaryFrequency is how often a salary amount is paid out.
type SalaryFrequency string

const (
	SalaryFrequencyMonthly SalaryFrequency = "monthly"
	SalaryFrequencyYearly  SalaryFrequency = "yearly"
	SalaryFrequencyHourly  SalaryFrequency = "hourly"
)

// IsValid reports whether f is one of the known frequencies.
func (f SalaryFrequency) IsValid() bool {
	switch f {
	case SalaryFrequencyMonthly, SalaryFrequencyYearly, SalaryFrequencyHourly:
		return true
	}
	return false
}

// PersonalInfo is the personal-details block of the extended profile.
type PersonalInfo struct {
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// EmergencyContact is the person to call when something happens.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Contacts is the contact block of the extended profile.
type Contacts struct {
	Phone            string            `json:"phone,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
}

// Salary is the compensation block of the extended profile.
type Salary struct {
	Amount    float64         `json:"amount,omitempty"`
	Currency  string          `json:"currency,omitempty"`
	Frequency SalaryFrequency `json:"frequency,omitempty"`
}

// Address is the postal-address block of the extended profile.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Employee is a workforce record. The extended profile blocks are optional
// and stored as JSON columns; an update replaces a whole block at once.
type Employee struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string        `gorm:"not null;size:100;index" json:"name"`
	Email        string        `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Position     string        `gorm:"not null;size:100;index" json:"position"`
	PersonalInfo *PersonalInfo `gorm:"type:jsonb" json:"personalInfo,omitempty"`
	Contacts     *Contacts     `gorm:"type:jsonb" json:"contacts,omitempty"`
	Salary       *Salary       `gorm:"type:jsonb" json:"salary,omitempty"`
	Address      *Address      `gorm:"type:jsonb" json:"address,omitempty"`
	CreatedAt    time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// TableName overrides the table name
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate assigns an id when the caller did not set one.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON value")
	}
}

// Scan implements the sql.Scanner interface for PersonalInfo
func (p *PersonalInfo) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// Value implements the driver.Valuer interface for PersonalInfo
func (p PersonalInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for Contacts
func (c *Contacts) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// Value implements the driver.Valuer interface for Contacts
func (c Contacts) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface for Salary
func (s *Salary) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Value implements the driver.Valuer interface for Salary
func (s Salary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for Address
func (a *Address) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// Value implements the driver.Valuer interface for Address
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}
