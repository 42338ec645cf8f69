package request

type RegisterRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE UNKNOWN"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
