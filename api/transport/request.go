package transport

type RegisterRequest struct {
	Login    string `json:"login" validate:"required,min=3,max=50,login_format"`
	Email    string `json:"email" validate:"required,email,max=255"`
	FullName string `json:"fullName" validate:"max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest accepts either field; login wins when both are present.
type LoginRequest struct {
	Login    string `json:"login" validate:"required_without=Email"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Identifier() string {
	if r.Login != "" {
		return r.Login
	}
	return r.Email
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	Categories []string `json:"categories" validate:"omitempty,dive,uuid"`
}

// UpdatePostRequest is a partial update; absent fields keep their value.
type UpdatePostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,max=255"`
	Content    *string   `json:"content"`
	Status     *string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Categories *[]string `json:"categories" validate:"omitempty,dive,uuid"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type LikeRequest struct {
	Type string `json:"type" validate:"omitempty,oneof=like dislike"`
}

type CategoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}
