package model

import (
	"strings"
	"time"
)

// ignoredAgentNames are generic or system identities that never count as real
// agents, for presence or for ranking.
var ignoredAgentNames = []string{
	"sistema monitor",
	"sistema monitor (recovery)",
	"desconhecido",
	"atendente desconhecido",
	"atendente",
	"usuario",
	"null",
	"undefined",
}

// IsIgnoredAgent reports whether an agent identifier is a placeholder that
// must be excluded from presence tracking and rankings.
func IsIgnoredAgent(agentID string) bool {
	name := strings.ToLower(strings.TrimSpace(agentID))
	if name == "" {
		return true
	}
	for _, ignored := range ignoredAgentNames {
		if name == ignored || strings.Contains(name, ignored) {
			return true
		}
	}
	return false
}

// ChatSnapshot is one queue entry reported by an agent heartbeat.
type ChatSnapshot struct {
	Client  string `json:"client"`
	Pending int    `json:"qtd"`
}

// AgentStatus is the last known presence state of one agent.
type AgentStatus struct {
	LastSeen      time.Time      `json:"last_seen"`
	UpdatedAt     time.Time      `json:"updated_at"`
	AgentID       string         `json:"agent_id"`
	ChatsSnapshot []ChatSnapshot `json:"chats_snapshot"`
	Online        bool           `json:"online"`
}
