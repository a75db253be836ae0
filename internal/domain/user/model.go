package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the single role claim attached to every account. Capability
// checks live here so route handlers and services never compare role
// strings ad hoc.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAttendee, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// In reports whether the role is a member of the given set.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// CanPublishEvents reports whether the role may create or flip events
// to public visibility.
func (r Role) CanPublishEvents() bool {
	return r.In(RoleOrganizer, RoleAdmin)
}

// CanManagePlanning reports whether the role may use the planning board.
func (r Role) CanManagePlanning() bool {
	return r.In(RoleOrganizer, RoleAdmin)
}

// IsAdmin reports whether the role is admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents an account in the system
type User struct {
	ID              uuid.UUID      `json:"user_id" gorm:"type:uuid;primary_key"`
	Email           string         `json:"email" gorm:"uniqueIndex:idx_user_email;not null"`
	PasswordHash    string         `json:"-" gorm:"not null"`
	FirstName       string         `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName        string         `json:"last_name" gorm:"type:varchar(100);not null"`
	Role            Role           `json:"role" gorm:"type:varchar(20);not null;default:'attendee';index:idx_user_role"`
	MajorDepartment string         `json:"major_department,omitempty" gorm:"type:varchar(150)"`
	PhoneNumber     string         `json:"phone_number,omitempty" gorm:"type:varchar(30)"`
	Hobbies         datatypes.JSON `json:"hobbies,omitempty" gorm:"type:jsonb"`
	Bio             string         `json:"bio,omitempty" gorm:"type:text"`
	ProfilePicture  string         `json:"profile_picture,omitempty" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleAttendee
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate is called before updating a user record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a typed partial update of profile fields.
// Only non-nil fields are written.
type UpdateProfileRequest struct {
	FirstName       *string         `json:"first_name,omitempty"`
	LastName        *string         `json:"last_name,omitempty"`
	MajorDepartment *string         `json:"major_department,omitempty"`
	PhoneNumber     *string         `json:"phone_number,omitempty"`
	Hobbies         *datatypes.JSON `json:"hobbies,omitempty"`
	Bio             *string         `json:"bio,omitempty"`
	ProfilePicture  *string         `json:"profile_picture,omitempty"`
}

// Fields returns the column assignments for the supplied fields only.
func (r UpdateProfileRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	if r.MajorDepartment != nil {
		fields["major_department"] = *r.MajorDepartment
	}
	if r.PhoneNumber != nil {
		fields["phone_number"] = *r.PhoneNumber
	}
	if r.Hobbies != nil {
		fields["hobbies"] = *r.Hobbies
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.ProfilePicture != nil {
		fields["profile_picture"] = *r.ProfilePicture
	}
	return fields
}

// SetRoleRequest is the admin request to change another user's role.
type SetRoleRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   Role      `json:"role" binding:"required,oneof=attendee organizer admin"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
	Token  string    `json:"token"`
}
