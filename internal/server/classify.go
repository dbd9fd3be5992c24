package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegentech/atendo/internal/common"
	"github.com/sitegentech/atendo/internal/forecast"
	"github.com/sitegentech/atendo/internal/model"
)

type classifyRequest struct {
	Context  string          `json:"contexto_resumido"`
	Messages []model.Message `json:"mensagens"`
}

// handleClassify runs the classifier without touching any attendance, for
// dashboard previews and rule debugging.
func (s *Server) handleClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Payload inválido"})
		return
	}
	if len(req.Messages) == 0 && req.Context == "" {
		respondError(c, common.NewUserError("Envie mensagens ou contexto_resumido", common.ErrEmptyTranscript))
		return
	}

	result := s.engine.Suggest(req.Messages, req.Context)
	c.JSON(http.StatusOK, gin.H{"sucesso": true, "resultado": result})
}

type feedbackRequest struct {
	Suggested string `json:"sugestao"`
	Chosen    string `json:"escolha" binding:"required"`
	Context   string `json:"contexto"`
}

// handleFeedback logs what the classifier suggested against what the human
// picked. The log is analysis material only; rules never change at runtime.
func (s *Server) handleFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "escolha é obrigatória"})
		return
	}

	fb := &model.ClassificationFeedback{
		Suggested: req.Suggested,
		Chosen:    req.Chosen,
		Context:   req.Context,
	}
	if err := s.storage.SaveClassificationFeedback(c.Request.Context(), fb); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleForecast serves today's demand projection, generating it when the
// cron has not run yet.
func (s *Server) handleForecast(c *gin.Context) {
	kind := model.ValidForecastKind(c.DefaultQuery("tipo", "horario"))

	fc, err := s.forecasts.Latest(c.Request.Context(), kind)
	if errors.Is(err, forecast.ErrNoHistory) {
		c.JSON(http.StatusOK, gin.H{"sucesso": false, "dados_insuficientes": true})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":         true,
		"tipo":            fc.Kind,
		"data_referencia": fc.ReferenceDate,
		"analise":         json.RawMessage(fc.Payload),
	})
}

// handleReportTest builds and sends the daily report on demand.
func (s *Server) handleReportTest(c *gin.Context) {
	if s.reporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"sucesso": false,
			"erro":    "Envio de email não configurado",
		})
		return
	}

	summary, err := s.reporter.Send(c.Request.Context(), "")
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":            true,
		"mensagem":           "Relatório enviado com sucesso!",
		"total_atendimentos": summary.Total,
	})
}
