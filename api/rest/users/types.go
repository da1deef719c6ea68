package users

import "github.com/bottlen/server/bottlen/users"

// CompleteSignupRequest carries the extra profile fields collected after first login
type CompleteSignupRequest struct {
	Nickname        string `json:"nickname" binding:"required,max=50"`
	ProfileImageURL string `json:"profile_image_url" binding:"max=500"`
	Phone           string `json:"phone" binding:"max=20"`
}

// PhoneCodeRequest asks for a verification code to be sent
type PhoneCodeRequest struct {
	Phone string `json:"phone" binding:"required,max=20"`
}

// PhoneVerifyRequest submits a received verification code
type PhoneVerifyRequest struct {
	Phone string `json:"phone" binding:"required,max=20"`
	Code  string `json:"code" binding:"required,len=6"`
}

// UserResponse wraps user data
type UserResponse struct {
	User *users.User `json:"user"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
