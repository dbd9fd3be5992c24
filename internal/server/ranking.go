package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitegentech/atendo/internal/clients"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
)

type rankingEntryView struct {
	Name         string   `json:"nome"`
	Achievements []string `json:"conquistas"`
	Initials     string   `json:"avatar_initials"`
	Points       int      `json:"pontos"`
	Tickets      int      `json:"tickets"`
	AvgHandleMin int      `json:"tma"`
}

// handleRankingGet serves the stored gamification ranking for a period.
func (s *Server) handleRankingGet(c *gin.Context) {
	period := model.ValidPeriod(c.DefaultQuery("periodo", "hoje"))

	entries, err := s.ranking.Get(c.Request.Context(), period)
	if err != nil {
		internalError(c, err)
		return
	}

	views := make([]rankingEntryView, 0, len(entries))
	for _, entry := range entries {
		achievements := entry.Achievements
		if achievements == nil {
			achievements = []string{}
		}
		views = append(views, rankingEntryView{
			Name:         entry.AgentID,
			Points:       entry.Points,
			Tickets:      entry.Tickets,
			AvgHandleMin: entry.AvgHandleMin,
			Achievements: achievements,
			Initials:     initials(entry.AgentID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"sucesso": true, "ranking": views})
}

// handleRankingRefresh recomputes today's ranking on demand.
func (s *Server) handleRankingRefresh(c *gin.Context) {
	if err := s.ranking.Sync(c.Request.Context(), model.PeriodToday); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucesso": true})
}

// handleClientRanking aggregates attendances per client over a period.
func (s *Server) handleClientRanking(c *gin.Context) {
	period := c.DefaultQuery("periodo", "mes")
	since := s.now().AddDate(0, 0, -clients.PeriodDays(period))

	attendances, err := s.storage.GetAttendances(c.Request.Context(), service.AttendanceFilter{Since: &since})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso": true,
		"periodo": period,
		"analise": clients.Build(attendances),
	})
}

func initials(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}
