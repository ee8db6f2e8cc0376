package domain

// EnforceRequest asks whether role may perform action on resource.
type EnforceRequest struct {
	Role     Role
	Resource string
	Action   string
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
