package project

type CreateProjectRequest struct {
	Name       string  `json:"name" binding:"required,max=200"`
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    *string `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name       string  `json:"name" binding:"required,max=200"`
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    *string `json:"end_date"`
}

type ProjectResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CustomerID string  `json:"customer_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

type AssignRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type AssignmentResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}
