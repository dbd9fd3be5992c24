package model

import (
	"strings"
	"time"
)

// Attendance statuses. Values stay in Portuguese because that's what the
// CRM extension sends and what the dashboard displays.
const (
	StatusInProgress  = "Em andamento"
	StatusResolved    = "Finalizado com sucesso"
	StatusTransferred = "Transferido"
	StatusFailed      = "Falha"
)

// Attendance origins.
const (
	OriginInbound  = "receptivo"
	OriginOutbound = "ativo"
)

// RecoveryAgentID marks records reconstructed from an end event that had no
// matching open attendance. Recovery records never score ranking points.
const RecoveryAgentID = "Sistema Monitor (Recovery)"

// Attendance is one support conversation from open to close.
type Attendance struct {
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Rating     *int       `json:"rating,omitempty"`
	ID         string     `json:"id"`
	ClientName string     `json:"client_name"`
	Phone      string     `json:"phone"`
	AgentID    string     `json:"agent_id"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason"`
	Origin     string     `json:"origin"`
	Context    string     `json:"context"`
}

// IsTransferred reports whether the attendance ended in a transfer.
func (a *Attendance) IsTransferred() bool {
	return strings.Contains(strings.ToLower(a.Status), "transferido")
}

// IsNoAnswer reports whether the attendance was closed as unanswered.
func (a *Attendance) IsNoAnswer() bool {
	return strings.Contains(strings.ToLower(a.Reason), "não respondeu") ||
		strings.Contains(strings.ToLower(a.Status), "não respondeu")
}

// HandleMinutes returns the wall-clock handling time in minutes, or 0 when
// the attendance is still open.
func (a *Attendance) HandleMinutes() float64 {
	if a.EndedAt == nil {
		return 0
	}
	return a.EndedAt.Sub(a.StartedAt).Minutes()
}

// ValidOrigin normalizes an origin value, defaulting to inbound.
func ValidOrigin(origin string) string {
	if origin == OriginOutbound {
		return OriginOutbound
	}
	return OriginInbound
}

// Transfer is an append-only record of an attendance handed between agents.
type Transfer struct {
	TransferredAt time.Time `json:"transferred_at"`
	ID            string    `json:"id"`
	FromAgent     string    `json:"from_agent"`
	ToAgent       string    `json:"to_agent"`
	ClientPhone   string    `json:"client_phone"`
	ClientName    string    `json:"client_name"`
	Reason        string    `json:"reason"`
	Note          string    `json:"note"`
}
