package model

import "time"

type UserRole string

const (
	RoleLecturer             UserRole = "LECTURER"
	RoleProgrammeCoordinator UserRole = "PROGRAMME_COORDINATOR"
	RoleAcademicManager      UserRole = "ACADEMIC_MANAGER"
	RoleAdministrator        UserRole = "ADMINISTRATOR"
)

// User is read-only reference data in this design; claims point back at a
// user by id and display name.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        UserRole  `json:"role"`
	Department  string    `json:"department,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	IsActive    bool      `json:"is_active"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
