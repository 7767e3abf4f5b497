package response

import (
	"time"

	"taller_flota/internal/domain/entities"
)

type EmployeeResponse struct {
	RUT        string `json:"rut"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	RoleLabel  string `json:"role_label"`
	Username   string `json:"username"`
	WorkshopID int64  `json:"workshop_id"`
	Region     string `json:"region,omitempty"`
	Schedule   string `json:"schedule,omitempty"`
}

func FromEmployee(e entities.Employee) EmployeeResponse {
	return EmployeeResponse{
		RUT:        e.RUT,
		Name:       e.Name,
		Role:       string(e.Role),
		RoleLabel:  e.Role.Label(),
		Username:   e.Username,
		WorkshopID: e.WorkshopID,
		Region:     e.Region,
		Schedule:   e.Schedule,
	}
}

type LoginResponse struct {
	Success   bool             `json:"success"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Employee  EmployeeResponse `json:"employee"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
