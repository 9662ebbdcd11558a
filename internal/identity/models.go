package identity

// Record is the minimal profile obtained from a successful external sign-in.
// At most one is held per process; it is mirrored to persistent storage so it
// survives restarts until an explicit sign-out.
type Record struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}
