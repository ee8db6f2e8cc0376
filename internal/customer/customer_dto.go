package customer

type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type UpdateCustomerRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type CustomerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
