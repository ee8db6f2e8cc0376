package rbac

import "github.com/jyhens/Layer2-Application/internal/domain"

type EnforceRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Role    string `json:"role"`
	Allowed bool   `json:"allowed"`
}

type PermissionsResponse struct {
	Role        string              `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}
