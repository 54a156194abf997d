package employee

import (
	"time"
)

type Employee struct {
	ID         string
	FullName   string
	Address    string
	Department Department
	AvatarURL  string
	CreatedAt  time.Time
}

type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentHR          Department = "HR"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentFinance     Department = "Finance"
)

// Departments lists the closed set of departments in display order.
func Departments() []Department {
	return []Department{
		DepartmentEngineering,
		DepartmentHR,
		DepartmentMarketing,
		DepartmentSales,
		DepartmentFinance,
	}
}

func (d Department) IsValid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}

// AvatarPlaceholders are the presentation avatars handed out to new employees.
var AvatarPlaceholders = []string{
	"https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=256&h=256&fit=crop",
	"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=256&h=256&fit=crop",
	"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=256&h=256&fit=crop",
	"https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=256&h=256&fit=crop",
	"https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=256&h=256&fit=crop",
}
