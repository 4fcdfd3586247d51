package employee

import "time"

// Employee is the persistence model. The unique indexes on email and
// employee_id are the authoritative guard against duplicates; the
// service-level pre-check only exists for friendlier error messages.
type Employee struct {
	ID          int64     `gorm:"primaryKey"`
	EmployeeID  string    `gorm:"column:employee_id;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	Mobile      string    `gorm:"column:mobile;not null"`
	Designation string    `gorm:"column:designation;not null"`
	Gender      string    `gorm:"column:gender;not null"`
	Courses     string    `gorm:"column:courses;not null"` // JSON-encoded array
	Image       string    `gorm:"column:image"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
