package types

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
	// AccessTokenCookie is read when no Authorization header is sent
	AccessTokenCookie = "access_token"
	// UserCtxName is the fiber locals key holding the authenticated UserContext
	UserCtxName = "user"
)

// UserContext is the authenticated caller decoded from the access token
type UserContext struct {
	// UUID is the auth_user uuid
	UUID     string `json:"uuid"`
	Username string `json:"username"`
}
