package recruitment

import "github.com/shopspring/decimal"

type CreateCandidateRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone"`
	Position  string  `json:"position" binding:"required"`
	ResumeURL *string `json:"resume_url"`
	Notes     *string `json:"notes"`
}

type UpdateCandidateRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone"`
	Position  string  `json:"position" binding:"required"`
	ResumeURL *string `json:"resume_url"`
	Notes     *string `json:"notes"`
}

type MoveCandidateRequest struct {
	Stage string `json:"stage" binding:"required"`
}

type ConvertCandidateRequest struct {
	HireDate      string           `json:"hire_date" binding:"required"`
	BaseSalary    decimal.Decimal  `json:"base_salary"`
	ContractHours *decimal.Decimal `json:"contract_hours"`
}

type CandidateResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Position  string  `json:"position"`
	Stage     string  `json:"stage"`
	ResumeURL *string `json:"resume_url,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	HiredAt   *string `json:"hired_at,omitempty"`
}

type ConvertCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	EmployeeID  string `json:"employee_id"`
}

// PipelineResponse groups candidates by stage for the board view.
type PipelineResponse map[string][]CandidateResponse
