package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/model"
)

type startRequest struct {
	Name      string `json:"nome" binding:"required"`
	Phone     string `json:"telefone" binding:"required"`
	StartTime string `json:"horario_inicio" binding:"required"`
	AgentID   string `json:"id_atendente" binding:"required"`
	Origin    string `json:"origem"`
}

// handleAttendanceStart opens an attendance. A second start for a phone that
// already has one in progress is silently ignored so the original created_at
// keeps counting.
func (s *Server) handleAttendanceStart(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"erro": "Dados obrigatórios: nome, telefone, horario_inicio, id_atendente",
		})
		return
	}

	existing, err := s.storage.GetOpenAttendanceByPhone(c.Request.Context(), req.Phone)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		internalError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{
			"sucesso":  true,
			"ignora":   true,
			"mensagem": "Atendimento já em andamento. Solicitação ignorada.",
		})
		return
	}

	att := &model.Attendance{
		ID:         uuid.NewString(),
		ClientName: req.Name,
		Phone:      req.Phone,
		AgentID:    req.AgentID,
		Status:     model.StatusInProgress,
		Origin:     model.ValidOrigin(req.Origin),
		StartedAt:  s.now(),
	}
	if err := s.storage.SaveAttendance(c.Request.Context(), att); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sucesso":     true,
		"mensagem":    "Atendimento registrado com sucesso",
		"atendimento": att,
		"duplicata":   false,
	})
}

type endRequest struct {
	Phone       string          `json:"telefone" binding:"required"`
	FinalStatus string          `json:"status_final" binding:"required"`
	EndTime     string          `json:"horario_fim" binding:"required"`
	Reason      string          `json:"motivo"`
	Name        string          `json:"nome"`
	Origin      string          `json:"origem"`
	Context     string          `json:"contexto_resumido"`
	Rating      *int            `json:"avaliacao"`
	Messages    []model.Message `json:"mensagens"`
}

// handleAttendanceEnd closes the open attendance for a phone. Without a
// manual reason the classifier suggests one from the transcript or summary.
// When no open attendance exists a recovery record is written so the ticket
// is never lost; recovery records score no points.
func (s *Server) handleAttendanceEnd(c *gin.Context) {
	var req endRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"erro": "Dados obrigatórios: telefone, status_final, horario_fim",
		})
		return
	}

	reason := req.Reason
	autoClassified := false
	if reason == "" && (len(req.Messages) > 0 || req.Context != "") {
		result := s.engine.Suggest(req.Messages, req.Context)
		reason = result.Suggestion
		autoClassified = true
	}

	now := s.now()
	att, err := s.storage.GetOpenAttendanceByPhone(c.Request.Context(), req.Phone)
	switch {
	case err == nil:
		att.Status = req.FinalStatus
		att.Reason = reason
		att.Rating = req.Rating
		att.Context = req.Context
		att.EndedAt = &now
		if req.Origin != "" {
			att.Origin = model.ValidOrigin(req.Origin)
		}
		if updateErr := s.storage.UpdateAttendance(c.Request.Context(), att); updateErr != nil {
			internalError(c, updateErr)
			return
		}

	case errors.Is(err, common.ErrNotFound):
		name := req.Name
		if name == "" {
			name = "Cliente Recuperado"
		}
		recovery := &model.Attendance{
			ID:         uuid.NewString(),
			ClientName: name,
			Phone:      req.Phone,
			AgentID:    model.RecoveryAgentID,
			Status:     req.FinalStatus,
			Reason:     reason,
			Origin:     model.ValidOrigin(req.Origin),
			Rating:     req.Rating,
			Context:    req.Context,
			StartedAt:  now,
			EndedAt:    &now,
		}
		if saveErr := s.storage.SaveAttendance(c.Request.Context(), recovery); saveErr != nil {
			internalError(c, saveErr)
			return
		}

	default:
		internalError(c, err)
		return
	}

	// Recalculate the ranking right away instead of waiting for the cron.
	if syncErr := s.ranking.Sync(c.Request.Context(), model.PeriodToday); syncErr != nil {
		common.LogError(syncErr, "Ranking sync after attendance end failed", nil)
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":                  true,
		"motivo":                   reason,
		"classificacao_automatica": autoClassified,
	})
}

type transferRequest struct {
	FromAgent   string `json:"atendente_origem" binding:"required"`
	ToAgent     string `json:"atendente_destino" binding:"required"`
	ClientPhone string `json:"telefone_cliente" binding:"required"`
	ClientName  string `json:"nome_cliente"`
	Reason      string `json:"motivo"`
	Note        string `json:"observacao"`
}

// handleAttendanceTransfer appends to the transfer log.
func (s *Server) handleAttendanceTransfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"erro": "Campos obrigatórios: atendente_origem, atendente_destino, telefone_cliente",
		})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Transferência"
	}

	transfer := &model.Transfer{
		ID:            uuid.NewString(),
		FromAgent:     req.FromAgent,
		ToAgent:       req.ToAgent,
		ClientPhone:   req.ClientPhone,
		ClientName:    req.ClientName,
		Reason:        reason,
		Note:          req.Note,
		TransferredAt: s.now(),
	}
	if err := s.storage.SaveTransfer(c.Request.Context(), transfer); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":  true,
		"mensagem": "Transferência registrada com sucesso",
		"log":      transfer,
	})
}
