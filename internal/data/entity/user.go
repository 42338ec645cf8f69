package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

type User struct {
	Base
	Nickname     string   `db:"nickname"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	AvatarURL    *string  `db:"avatar_url"`
	Role         UserRole `db:"role"`
	Gender       Gender   `db:"gender"`
}
