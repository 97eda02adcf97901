package models

import "time"

// Roles recognised by the Users sheet.
const (
	RoleSpecialist          = "specialist"
	RoleImplementingPartner = "implementing_partner"
)

// User is one row of the Users sheet.
type User struct {
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone"`
	CreatedDate time.Time `json:"created_date"`
}

// Record converts u to a record keyed by the Users columns.
func (u User) Record() Record {
	r := NewRecord()
	r.Set("username", u.Username)
	r.Set("password", u.Password)
	r.Set("email", u.Email)
	r.Set("role", u.Role)
	r.Set("full_name", u.FullName)
	r.Set("phone", u.Phone)
	r.Set("created_date", u.CreatedDate)
	return r
}

// UserFromRecord reads a Users record.
func UserFromRecord(r Record) (User, error) {
	created, err := ParseTime(r.String("created_date"))
	if err != nil {
		return User{}, err
	}
	return User{
		Username:    r.String("username"),
		Password:    r.String("password"),
		Email:       r.String("email"),
		Role:        r.String("role"),
		FullName:    r.String("full_name"),
		Phone:       r.String("phone"),
		CreatedDate: created,
	}, nil
}
