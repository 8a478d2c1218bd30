// Package stubserver is a local stand-in for the advisory answering service.
// It speaks the same JSON contract with canned data and never calls an LLM.
package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dawang/internal/advisor"
	"dawang/internal/catalog"
	"dawang/internal/chatmsg"
)

// maxHistory is the number of entries kept per session (ten exchanges).
const maxHistory = 20

type historyEntry struct {
	Role    string
	Content string
}

// Server holds the stub's in-memory session store.
type Server struct {
	logger *zap.Logger

	mu       sync.Mutex
	failing  bool
	sessions map[string][]historyEntry
	asked    int
}

// New creates a stub server. A nil logger disables request logging.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:   logger,
		sessions: make(map[string][]historyEntry),
	}
}

// SetFailing makes every /api route answer 500 until cleared.
func (s *Server) SetFailing(fail bool) {
	s.mu.Lock()
	s.failing = fail
	s.mu.Unlock()
}

// Asked returns how many chat requests were received, failed ones included.
func (s *Server) Asked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asked
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.Get("/", s.root)
	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Use(s.failWhenAsked)
		r.Post("/chat", s.chat)
		r.Post("/route", s.route)
		r.Get("/programs/available", s.available)
		r.Get("/programs/catalog", s.programCatalog)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) failWhenAsked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := s.failing
		if fail && r.URL.Path == "/api/chat" {
			s.asked++
		}
		s.mu.Unlock()
		if fail {
			writeError(w, http.StatusInternalServerError, "서버 오류: stub is failing on purpose")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "다왕이 챗봇 API 서버가 정상 작동 중이다왕!",
		"version": "1.0.0",
		"status":  "healthy",
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req advisor.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	label := Classify(req.Question)
	answer := compose(label, req)

	s.mu.Lock()
	s.asked++
	h := append(s.sessions[sessionID],
		historyEntry{Role: "user", Content: req.Question},
		historyEntry{Role: "assistant", Content: answer},
	)
	if len(h) > maxHistory {
		h = h[len(h)-maxHistory:]
	}
	s.sessions[sessionID] = h
	s.mu.Unlock()
	s.logger.Debug("Answered chat",
		zap.String("session_id", sessionID),
		zap.String("label", string(label)),
		zap.Int("history", len(h)))

	writeJSON(w, http.StatusOK, advisor.ChatResponse{
		Answer:    answer,
		Label:     string(label),
		Emotion:   emotionFor(label),
		Success:   label != chatmsg.LabelUnmatched,
		SessionID: sessionID,
	})
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	var req advisor.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	label := Classify(req.Question)
	writeJSON(w, http.StatusOK, advisor.RouteResponse{
		Label:   string(label),
		Success: label != chatmsg.LabelUnmatched,
	})
}

func (s *Server) available(w http.ResponseWriter, _ *http.Request) {
	programs := make([]catalog.Program, 0, len(catalog.KnownPrograms()))
	for _, id := range catalog.KnownPrograms() {
		programs = append(programs, catalog.Program{ID: string(id), Name: id.DisplayName(), Type: "융합전공"})
	}
	writeJSON(w, http.StatusOK, map[string]any{"programs": programs})
}

func (s *Server) programCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"programs": fullCatalog})
}

// =============================================================================
// CANNED CONTENT
// =============================================================================

var fullCatalog = []catalog.Program{
	{Name: "빅데이터", Type: "융합전공"},
	{Name: "스마트팜", Type: "융합전공"},
	{Name: "지식재산 스마트융합", Type: "융합전공"},
	{Name: "위기관리", Type: "융합전공"},
	{Name: "바이오헬스", Type: "융합전공"},
	{Name: "보안컨설팅", Type: "융합전공"},
	{Name: "벤처비즈니스", Type: "융합전공"},
	{Name: "이차전지융합", Type: "융합전공"},
	{Name: "공공데이터사이언스", Type: "융합전공"},
	{Name: "문화콘텐츠", Type: "연계전공"},
	{Name: "국제지역학", Type: "연계전공"},
}

var labelKeywords = []struct {
	label    chatmsg.Label
	keywords []string
}{
	{chatmsg.LabelRequirements, []string{"졸업요건", "학점", "학위"}},
	{chatmsg.LabelCurriculum, []string{"과목", "교과", "전공필수", "주임교수"}},
	{chatmsg.LabelStatus, []string{"목록", "몇 개", "있나요", "개설"}},
	{chatmsg.LabelSystem, []string{"신청", "차이", "자격", "뭐예요", "제도"}},
}

// Classify assigns a topic label by keyword. Questions matching nothing are Unmatched.
func Classify(question string) chatmsg.Label {
	for _, lk := range labelKeywords {
		for _, kw := range lk.keywords {
			if strings.Contains(question, kw) {
				return lk.label
			}
		}
	}
	return chatmsg.LabelUnmatched
}

func emotionFor(label chatmsg.Label) string {
	switch label {
	case chatmsg.LabelUnmatched:
		return "embarrassed"
	case chatmsg.LabelRequirements:
		return "proud"
	default:
		return "joy"
	}
}

func compose(label chatmsg.Label, req advisor.ChatRequest) string {
	if label == chatmsg.LabelUnmatched {
		return "그 질문은 잘 모르겠다왕... 다전공 관련해서 다시 물어봐라왕!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** 관련 질문이다왕!\n\n", label)
	if req.SelectedProgram != "" {
		fmt.Fprintf(&b, "- 선택한 전공: %s\n", req.SelectedProgram)
	}
	if req.ProfileDept != "" {
		fmt.Fprintf(&b, "- 소속 학과: %s\n", req.ProfileDept)
	}
	fmt.Fprintf(&b, "- 질문: %s\n", req.Question)
	return b.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"detail": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
