package models

// User is the profile of an account holder. Accounts are created by the
// auth service; this service only reads them.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (User) TableName() string {
	return "users"
}
