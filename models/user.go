package models

// User represents a back-office account (admin or worker).
// Accounts are created only by the database seed step; there are no
// endpoints to modify them afterwards.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Fullname string `gorm:"not null" json:"fullname"`
	Role     string `gorm:"not null" json:"role"` // "admin" or "worker"

	// SupervisorIncidencias grants full incidencia visibility without
	// granting the admin role.
	SupervisorIncidencias bool `gorm:"not null;default:false" json:"supervisor_incidencias"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// PublicProfile is the safe-to-return subset of a user record
type PublicProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

// Profile returns the public view of the user, without the password hash
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Role:     u.Role,
	}
}
