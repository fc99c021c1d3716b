package employee

import "time"

// Role values an employee record can carry. Every authorization
// decision keys on this field.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Employee is the single entity served by the API. PasswordHash is
// write-only: the json tag keeps it out of every serialized response.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          int       `json:"age"`
	Class        string    `json:"class,omitempty"`
	Subjects     []string  `json:"subjects"`
	Attendance   float64   `json:"attendance"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Date         time.Time `json:"date"`
	Email        string    `json:"email"`
	Flagged      bool      `json:"flagged"`
	PasswordHash string    `json:"-"`
}

// Clone returns a value copy whose slices do not alias the original.
func (e Employee) Clone() Employee {
	out := e
	if e.Subjects != nil {
		out.Subjects = append([]string(nil), e.Subjects...)
	}
	return out
}

// AuthUser is the redacted view returned by login.
type AuthUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Redacted projects a record down to its login view.
func (e Employee) Redacted() AuthUser {
	return AuthUser{ID: e.ID, Name: e.Name, Role: e.Role}
}

// Input carries the fields for a new record. Password is the plaintext
// secret; it is hashed before the record reaches any repository.
type Input struct {
	Name       string    `json:"name" binding:"required"`
	Age        int       `json:"age" binding:"min=0"`
	Class      string    `json:"class"`
	Subjects   []string  `json:"subjects"`
	Attendance float64   `json:"attendance"`
	Role       string    `json:"role" binding:"required,oneof=admin employee"`
	Avatar     string    `json:"avatar"`
	Date       time.Time `json:"date"`
	Email      string    `json:"email" binding:"required,email"`
	Flagged    bool      `json:"flagged"`
	Password   string    `json:"password" binding:"required"`
}

// Update is a typed partial-update payload. Nil pointers mean "leave
// untouched"; a present pointer replaces the field, so callers can set
// zero values deliberately.
type Update struct {
	Name       *string    `json:"name"`
	Age        *int       `json:"age"`
	Class      *string    `json:"class"`
	Subjects   *[]string  `json:"subjects"`
	Attendance *float64   `json:"attendance"`
	Role       *string    `json:"role"`
	Avatar     *string    `json:"avatar"`
	Date       *time.Time `json:"date"`
	Email      *string    `json:"email"`
	Flagged    *bool      `json:"flagged"`
}

// Fields lists the names of the fields present in the payload, using
// the wire names authorization whitelists are written in.
func (u Update) Fields() []string {
	var out []string
	if u.Name != nil {
		out = append(out, "name")
	}
	if u.Age != nil {
		out = append(out, "age")
	}
	if u.Class != nil {
		out = append(out, "class")
	}
	if u.Subjects != nil {
		out = append(out, "subjects")
	}
	if u.Attendance != nil {
		out = append(out, "attendance")
	}
	if u.Role != nil {
		out = append(out, "role")
	}
	if u.Avatar != nil {
		out = append(out, "avatar")
	}
	if u.Date != nil {
		out = append(out, "date")
	}
	if u.Email != nil {
		out = append(out, "email")
	}
	if u.Flagged != nil {
		out = append(out, "flagged")
	}
	return out
}

// ApplyTo merges the present fields onto a record.
func (u Update) ApplyTo(e *Employee) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Age != nil {
		e.Age = *u.Age
	}
	if u.Class != nil {
		e.Class = *u.Class
	}
	if u.Subjects != nil {
		e.Subjects = append([]string(nil), (*u.Subjects)...)
	}
	if u.Attendance != nil {
		e.Attendance = *u.Attendance
	}
	if u.Role != nil {
		e.Role = *u.Role
	}
	if u.Avatar != nil {
		e.Avatar = *u.Avatar
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.Flagged != nil {
		e.Flagged = *u.Flagged
	}
}
