package models

import (
	"github.com/JITENDRA0811/impetus9-backend/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegistrationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ReceiptID string `json:"receiptId"`
	Status    string `json:"status"`
}

type StatusLookupRequest struct {
	EventName   string `json:"eventName"`
	SearchField string `json:"searchField"`
	SearchValue string `json:"searchValue"`
}

type RegistrationData struct {
	EventName       string              `json:"eventName"`
	TeamName        string              `json:"teamName"`
	ReceiptID       string              `json:"receiptId"`
	ParticipantType string              `json:"participantType"`
	CapName         string              `json:"capName"`
	CapPhone        string              `json:"capPhone"`
	CapRoll         string              `json:"capRoll,omitempty"`
	TeamMembers     []TeamMemberRequest `json:"teamMembers"`
}

type StatusLookupResponse struct {
	Success bool             `json:"success"`
	Data    RegistrationData `json:"data"`
}

type ExportRequest struct {
	EventName       string `json:"eventName"`
	CoordinatorName string `json:"coordinatorName"`
	Passkey         string `json:"passkey"`
}

type ExportResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	ExcelBase64 string  `json:"excelBase64,omitempty"`
	VCF         *string `json:"vcf"`
}

func TransformRegistrationFromStorage(reg *storage.Registration) RegistrationData {
	members := make([]TeamMemberRequest, 0, len(reg.TeamMembers))
	for _, m := range reg.TeamMembers {
		members = append(members, TeamMemberRequest{
			MemName:  m.MemName,
			MemPhone: m.MemPhone,
			MemRoll:  m.MemRoll,
		})
	}
	return RegistrationData{
		EventName:       reg.EventName,
		TeamName:        reg.TeamName,
		ReceiptID:       reg.ReceiptID,
		ParticipantType: string(reg.ParticipantType),
		CapName:         reg.CapName,
		CapPhone:        reg.CapPhone,
		CapRoll:         reg.CapRoll,
		TeamMembers:     members,
	}
}
