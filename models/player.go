package models

import "time"

// Player это зарегистрированный игрок. PersonalScore накапливается между турнирами
// и меняется только при завершении турнира или ручной правке счёта.
type Player struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	PersonalScore int       `json:"personal_score" db:"personal_score"`
	AvatarKey     *string   `json:"-" db:"avatar_key"`
	AvatarURL     *string   `json:"avatar_url,omitempty" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
