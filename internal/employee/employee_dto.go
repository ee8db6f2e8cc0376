package employee

type CreateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	JobTitle *string `json:"job_title" binding:"omitempty,max=200"`
	Role     string  `json:"role" binding:"omitempty,oneof=EMPLOYEE APPROVER ADMIN"`
}

type UpdateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	JobTitle *string `json:"job_title" binding:"omitempty,max=200"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=EMPLOYEE APPROVER ADMIN"`
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	JobTitle *string `json:"job_title,omitempty"`
	Role     string  `json:"role"`
}

type EmployeeOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
