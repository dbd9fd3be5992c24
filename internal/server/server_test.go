package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegentech/atendo/internal/classify"
	"github.com/sitegentech/atendo/internal/forecast"
	"github.com/sitegentech/atendo/internal/gamify"
	"github.com/sitegentech/atendo/internal/model"
	"github.com/sitegentech/atendo/internal/service"
	"github.com/sitegentech/atendo/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *gin.Engine, *testutil.TestDB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	engine, err := classify.NewDefaultEngine()
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	syncer := gamify.NewSyncer(db.Storage, gamify.NewCalculator(loc, gamify.DefaultConfig()))
	generator := forecast.NewGenerator(db.Storage, forecast.NewBuilder(loc))

	srv := NewServer(db.Storage, engine, syncer, generator, nil, loc)
	return srv, srv.Router(), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestAttendanceStartAndDuplicate(t *testing.T) {
	_, router, db := newTestServer(t)

	payload := gin.H{
		"nome":           "Posto Central",
		"telefone":       "5511999000001",
		"horario_inicio": "14:30",
		"id_atendente":   "Maria",
		"origem":         "receptivo",
	}

	w, body := doJSON(t, router, http.MethodPost, "/api/attendance/start", payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["sucesso"])

	// Second start for the same phone is silently ignored.
	w, body = doJSON(t, router, http.MethodPost, "/api/attendance/start", payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ignora"])

	attendances, err := db.Storage.GetAttendances(context.Background(), service.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, attendances, 1)
}

func TestAttendanceStartValidation(t *testing.T) {
	_, router, _ := newTestServer(t)

	w, _ := doJSON(t, router, http.MethodPost, "/api/attendance/start", gin.H{"nome": "Posto"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceEndClassifiesAutomatically(t *testing.T) {
	_, router, db := newTestServer(t)

	db.SeedAttendance(&model.Attendance{
		ID:         "att-1",
		ClientName: "Posto Central",
		Phone:      "5511999000001",
		AgentID:    "Maria",
	})

	w, body := doJSON(t, router, http.MethodPost, "/api/attendance/end", gin.H{
		"telefone":          "5511999000001",
		"status_final":      model.StatusResolved,
		"horario_fim":       "15:02",
		"contexto_resumido": "cliente com problema no pinpad, não passa cartão",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["classificacao_automatica"])
	assert.Equal(t, "PINPAD", body["motivo"])

	attendances, err := db.Storage.GetAttendances(context.Background(), service.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, attendances, 1)
	assert.Equal(t, "PINPAD", attendances[0].Reason)
	assert.Equal(t, model.StatusResolved, attendances[0].Status)
	assert.NotNil(t, attendances[0].EndedAt)
}

func TestAttendanceEndManualReasonWins(t *testing.T) {
	_, router, db := newTestServer(t)

	db.SeedAttendance(&model.Attendance{
		ID:         "att-1",
		ClientName: "Posto Central",
		Phone:      "5511999000001",
		AgentID:    "Maria",
	})

	_, body := doJSON(t, router, http.MethodPost, "/api/attendance/end", gin.H{
		"telefone":          "5511999000001",
		"status_final":      model.StatusResolved,
		"horario_fim":       "15:02",
		"motivo":            "Financeiro",
		"contexto_resumido": "problema no pinpad",
	})
	assert.Equal(t, false, body["classificacao_automatica"])
	assert.Equal(t, "Financeiro", body["motivo"])
}

func TestAttendanceEndRecovery(t *testing.T) {
	_, router, db := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/attendance/end", gin.H{
		"telefone":     "5511999000009",
		"status_final": model.StatusResolved,
		"horario_fim":  "15:02",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["sucesso"])

	attendances, err := db.Storage.GetAttendances(context.Background(), service.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, attendances, 1)
	assert.Equal(t, model.RecoveryAgentID, attendances[0].AgentID)
	assert.Equal(t, "Cliente Recuperado", attendances[0].ClientName)
}

func TestAttendanceTransfer(t *testing.T) {
	_, router, db := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/attendance/transfer", gin.H{
		"atendente_origem":  "Maria",
		"atendente_destino": "Joao",
		"telefone_cliente":  "5511999000001",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["sucesso"])

	transfers, err := db.Storage.GetTransfers(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "Transferência", transfers[0].Reason)
}

func TestHeartbeatRejectsGenericNames(t *testing.T) {
	_, router, _ := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/agents/heartbeat", gin.H{
		"id_atendente": "Sistema Monitor",
		"online":       true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nome de atendente inválido", body["erro"])
}

func TestMonitorLive(t *testing.T) {
	srv, router, _ := newTestServer(t)

	_, _ = doJSON(t, router, http.MethodPost, "/api/agents/heartbeat", gin.H{
		"id_atendente":   "Maria",
		"online":         true,
		"chats_snapshot": []gin.H{{"client": "Posto Central", "qtd": 3}},
	})

	w, body := doJSON(t, router, http.MethodGet, "/api/monitor/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["online"])
	assert.Equal(t, float64(1), stats["total_chats_aguardando"])
	assert.Equal(t, float64(3), stats["total_mensagens_pendentes"])

	// Push the clock past the timeout and the agent goes offline.
	srv.now = func() time.Time { return time.Now().Add(OnlineTimeout + 10*time.Second) }
	_, body = doJSON(t, router, http.MethodGet, "/api/monitor/live", nil)
	stats = body["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["online"])
	assert.Equal(t, float64(1), stats["offline"])
}

func TestGamificationRefreshAndGet(t *testing.T) {
	_, router, db := newTestServer(t)

	// Pin the ticket to 09:00 local time today so the points stay at
	// base+handle regardless of when the suite runs: ending inside the
	// 12:00-14:00 window would add the lunch-shift bonus.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	day := time.Now().In(loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, loc)
	end := start.Add(5 * time.Minute)
	db.SeedAttendance(&model.Attendance{
		ID:         "att-1",
		ClientName: "Posto Central",
		Phone:      "5511999000001",
		AgentID:    "Maria",
		Status:     model.StatusResolved,
		StartedAt:  start,
		EndedAt:    &end,
	})

	w, _ := doJSON(t, router, http.MethodPost, "/api/gamification/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, router, http.MethodGet, "/api/gamification/ranking?periodo=hoje", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	ranking := body["ranking"].([]any)
	require.Len(t, ranking, 1)
	first := ranking[0].(map[string]any)
	assert.Equal(t, "Maria", first["nome"])
	assert.Equal(t, "MA", first["avatar_initials"])
	assert.Equal(t, float64(15), first["pontos"])
}

func TestClassifyEndpoint(t *testing.T) {
	_, router, _ := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/classify", gin.H{
		"mensagens": []gin.H{
			{"sender": "client", "text": "o pinpad não está funcionando"},
			{"sender": "attendant", "text": "vou verificar o pinpad"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	result := body["resultado"].(map[string]any)
	assert.Equal(t, "PINPAD", result["suggestion"])

	// Neither messages nor summary is a client error.
	w, body = doJSON(t, router, http.MethodPost, "/api/classify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Envie mensagens ou contexto_resumido", body["erro"])
}

func TestFeedbackEndpoint(t *testing.T) {
	_, router, db := newTestServer(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/feedback/classification", gin.H{
		"sugestao": "PDV",
		"escolha":  "PINPAD",
		"contexto": "problema no pinpad",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["received"])

	feedback, err := db.Storage.GetClassificationFeedback(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, "PINPAD", feedback[0].Chosen)
}

func TestForecastWithoutHistory(t *testing.T) {
	_, router, _ := newTestServer(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/forecast/demand?tipo=horario", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["dados_insuficientes"])
}

func TestForecastWithHistory(t *testing.T) {
	_, router, db := newTestServer(t)

	db.SeedAttendance(&model.Attendance{
		ID:         "att-1",
		ClientName: "Posto Central",
		Phone:      "5511999000001",
		AgentID:    "Maria",
	})

	w, body := doJSON(t, router, http.MethodGet, "/api/forecast/demand?tipo=horario", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["sucesso"])
	assert.NotNil(t, body["analise"])
}

func TestReportTestWithoutSMTP(t *testing.T) {
	_, router, _ := newTestServer(t)

	w, _ := doJSON(t, router, http.MethodGet, "/api/report/test", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
