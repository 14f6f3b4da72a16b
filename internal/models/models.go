package models

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Product is the single record type the whole application revolves around.
// ID is empty until the backend assigns one on create.
type Product struct {
	ID          string  `gorm:"primaryKey"  json:"id,omitempty"`
	Name        string  `gorm:"not null"    json:"name"`
	Description string  `gorm:"not null"    json:"description"`
	Price       float64 `gorm:"not null"    json:"price"`
	Stock       int     `gorm:"not null"    json:"stock"`
	Category    string  `gorm:"not null"    json:"category"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// Session is what the client persists locally between runs: who is logged in
// and the opaque bearer token that proves it.
type Session struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
