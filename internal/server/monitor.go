package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
)

// OnlineTimeout is how long an agent stays online without a heartbeat.
const OnlineTimeout = 20 * time.Second

type heartbeatRequest struct {
	AgentID       string               `json:"id_atendente" binding:"required"`
	ChatsSnapshot []model.ChatSnapshot `json:"chats_snapshot"`
	Online        bool                 `json:"online"`
}

// handleHeartbeat records an agent presence ping. Generic or system agent
// names are rejected so they never show up on the radar.
func (s *Server) handleHeartbeat(c *gin.Context) {
	var req heartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "id_atendente é obrigatório"})
		return
	}

	if model.IsIgnoredAgent(req.AgentID) {
		respondError(c, common.NewUserError("Nome de atendente inválido", nil))
		return
	}

	status := &model.AgentStatus{
		AgentID:       req.AgentID,
		Online:        req.Online,
		LastSeen:      s.now(),
		ChatsSnapshot: req.ChatsSnapshot,
	}
	if err := s.storage.UpsertAgentStatus(c.Request.Context(), status); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

type liveAgent struct {
	LastSeen      time.Time            `json:"last_seen"`
	AgentID       string               `json:"id_atendente"`
	ChatsSnapshot []model.ChatSnapshot `json:"chats_snapshot"`
	OfflineSec    int                  `json:"tempo_offline_seg"`
	Online        bool                 `json:"online"`
}

// handleMonitorLive returns the radar: every agent with its online flag
// recomputed server-side from last_seen, plus aggregate queue stats.
func (s *Server) handleMonitorLive(c *gin.Context) {
	statuses, err := s.storage.GetAgentStatuses(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	now := s.now()
	agents := make([]liveAgent, 0, len(statuses))
	online := 0
	waitingChats := 0
	pendingMessages := 0

	for _, status := range statuses {
		elapsed := now.Sub(status.LastSeen)
		isOnline := elapsed <= OnlineTimeout

		offlineSec := 0
		if !isOnline {
			offlineSec = int(elapsed.Seconds() + 0.5)
		} else {
			online++
		}

		for _, chat := range status.ChatsSnapshot {
			if chat.Pending > 0 {
				waitingChats++
				pendingMessages += chat.Pending
			}
		}

		snapshot := status.ChatsSnapshot
		if snapshot == nil {
			snapshot = []model.ChatSnapshot{}
		}
		agents = append(agents, liveAgent{
			AgentID:       status.AgentID,
			LastSeen:      status.LastSeen,
			Online:        isOnline,
			OfflineSec:    offlineSec,
			ChatsSnapshot: snapshot,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":   true,
		"timestamp": now,
		"stats": gin.H{
			"total_atendentes":          len(agents),
			"online":                    online,
			"offline":                   len(agents) - online,
			"timeout_configurado":       int(OnlineTimeout.Seconds()),
			"total_chats_aguardando":    waitingChats,
			"total_mensagens_pendentes": pendingMessages,
		},
		"atendentes": agents,
	})
}
