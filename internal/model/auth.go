package model

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the shape of /login and /signup responses.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

type UploadedFile struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	FileType string `json:"fileType"`
}

type UploadResponse struct {
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
}
