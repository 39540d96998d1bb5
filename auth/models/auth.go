package models

// SigninRequest is the body of POST /v1/signin
type SigninRequest struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// TokenPayload echoes the claims of the issued token
type TokenPayload struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
}

// SigninUser is the profile returned on signin
type SigninUser struct {
	UUID            string `json:"uuid"`
	AuthUserUUID    string `json:"auth_user_uuid"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	DepartmentName  string `json:"department_name"`
	DesignationName string `json:"designation_name"`
}

// SigninResponse is the body of a successful signin
type SigninResponse struct {
	Payload   TokenPayload `json:"payload"`
	Token     string       `json:"token"`
	CanAccess interface{}  `json:"can_access"`
	User      SigninUser   `json:"user"`
}

// PasswordRequest is the body of PATCH /v1/hr/users/password/:uuid
type PasswordRequest struct {
	Pass      string `json:"pass"`
	UpdatedAt string `json:"updated_at"`
}
