package shopsdk

// Role is the access level of an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the authenticated account as the gateway reports it. The SDK never
// sees tokens; the credential lives in an httpOnly cookie the jar carries.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Wire shapes. Every gateway success is {"data": ...}, every failure is
// {"message": ...}.

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type userPayload struct {
	User *User `json:"user"`
}

type successPayload struct {
	Success bool `json:"success"`
}

type errorPayload struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
