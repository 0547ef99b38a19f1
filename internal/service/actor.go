package service

// Actor identifies who performed a mutation. It fills the audit fields and event payloads.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SystemActor is used by maintenance commands that run without a login
var SystemActor = Actor{ID: "system", Name: "System"}
