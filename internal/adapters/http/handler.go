package httpadapter

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/PabloGalante/atelier-agent/internal/app/conversation"
	"github.com/PabloGalante/atelier-agent/internal/app/leads"
	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/catalog"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// ServerConfig carries the use cases the router exposes.
type ServerConfig struct {
	Conversation *conversation.Service
	Leads        *leads.Service
	Catalog      *catalog.Catalog
	Engine       *recommend.Engine

	// AllowedOrigins for CORS. Empty or "*" allows any origin.
	AllowedOrigins []string
	ServiceName    string
}

type Server struct {
	conv    *conversation.Service
	leads   *leads.Service
	catalog *catalog.Catalog
	engine  *recommend.Engine
}

func NewServer(cfg ServerConfig) http.Handler {
	s := &Server{
		conv:    cfg.Conversation,
		leads:   cfg.Leads,
		catalog: cfg.Catalog,
		engine:  cfg.Engine,
	}
	if s.engine == nil && s.catalog != nil {
		s.engine = recommend.NewEngine(s.catalog)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "atelier"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(requestID())
	r.Use(requestLogger())
	r.Use(corsMiddleware(cfg.AllowedOrigins))

	r.GET("/healthz", s.handleHealthz)

	sessions := r.Group("/sessions")
	{
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.POST("/:id/messages", s.handleSendMessage)
	}

	cat := r.Group("/catalog")
	{
		cat.GET("/courses", s.handleListCourses)
		cat.GET("/courses/:id", s.handleGetCourse)
		cat.GET("/journeys", s.handleListJourneys)
		cat.GET("/journeys/:id", s.handleGetJourney)
		cat.GET("/packages", s.handleListPackages)
		cat.GET("/compare", s.handleCompare)
	}

	r.POST("/recommendations", s.handleRecommendations)
	r.GET("/leads", s.handleListLeads)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	Language string `json:"language,omitempty"`
}

type createSessionResponse struct {
	SessionID string    `json:"session_id"`
	Phase     string    `json:"phase"`
	Language  string    `json:"language"`
	Welcome   string    `json:"welcome_message"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	SessionID       string                  `json:"session_id"`
	Response        string                  `json:"response"`
	Blocked         bool                    `json:"blocked"`
	ReasonCode      string                  `json:"reason_code,omitempty"`
	Phase           string                  `json:"phase"`
	Intents         []domain.Intent         `json:"intents"`
	Profile         domain.UserProfile      `json:"user_profile"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type recommendationsRequest struct {
	Experience     string   `json:"experience"`
	Goals          []string `json:"goals"`
	Interests      []string `json:"interests"`
	TimeCommitment string   `json:"time_commitment"`
	PreferredStyle string   `json:"preferred_style"`
	Language       string   `json:"language"`
}

type recommendationsResponse struct {
	Journey         domain.LearningJourney  `json:"journey"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Package         *domain.CoursePackage   `json:"package,omitempty"`
}

// ─────────────────────────────────────────────
// Conversation handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_body", "invalid JSON body")
			return
		}
	}

	lang, ok := parseLanguage(req.Language)
	if !ok {
		badRequest(c, "invalid_language", "language must be de or en")
		return
	}

	out, err := s.conv.StartSession(c.Request.Context(), conversation.StartSessionInput{Language: lang})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createSessionResponse{
		SessionID: string(out.State.SessionID),
		Phase:     string(out.State.Phase),
		Language:  string(out.State.Profile.ReplyLanguage()),
		Welcome:   out.Welcome,
		CreatedAt: out.State.CreatedAt,
	})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(c, "empty_text", "text is required")
		return
	}

	res, err := s.conv.ProcessTurn(c.Request.Context(), domain.SessionID(c.Param("id")), req.Text)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, sendMessageResponse{
		SessionID:       string(res.SessionID),
		Response:        res.Response,
		Blocked:         res.Blocked,
		ReasonCode:      res.ReasonCode,
		Phase:           string(res.Phase),
		Intents:         nonNil(res.Intents),
		Profile:         res.Profile,
		Recommendations: nonNil(res.Recommendations),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	state, err := s.conv.GetSession(c.Request.Context(), domain.SessionID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			respondError(c, http.StatusNotFound, "session_not_found", err)
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ─────────────────────────────────────────────
// Recommendation & lead handlers
// ─────────────────────────────────────────────

func (s *Server) handleRecommendations(c *gin.Context) {
	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_body", "invalid JSON body")
		return
	}
	lang, ok := parseLanguage(req.Language)
	if !ok {
		badRequest(c, "invalid_language", "language must be de or en")
		return
	}

	profile := domain.UserProfile{
		Experience:     domain.Experience(req.Experience),
		Goals:          []domain.Goal{},
		TimeCommitment: domain.TimeCommitment(req.TimeCommitment),
		PreferredStyle: domain.LearningStyle(req.PreferredStyle),
		Language:       lang,
	}
	for _, g := range req.Goals {
		profile.AddGoal(domain.Goal(g))
	}
	for _, i := range req.Interests {
		profile.AddInterest(strings.ToLower(strings.TrimSpace(i)))
	}

	journey, ok := s.engine.RecommendJourney(profile)
	if !ok {
		respondError(c, http.StatusInternalServerError, "journey_missing", domain.ErrJourneyNotFound)
		return
	}

	recs := s.engine.GenerateRecommendations(profile)
	resp := recommendationsResponse{
		Journey:         journey,
		Recommendations: nonNil(recs),
	}
	if pkg, ok := s.engine.BestPackage(recs); ok {
		resp.Package = &pkg
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListLeads(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	out, err := s.leads.ListLeads(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leads": out})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// internalError hides the cause from the client; the request logger records it.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorEnvelope{
		Error: apiError{Message: "internal server error", Code: "internal_error"},
	})
}

func parseLanguage(s string) (domain.Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return domain.LanguageUnset, true
	case "de", "german", "deutsch":
		return domain.LanguageGerman, true
	case "en", "english", "englisch":
		return domain.LanguageEnglish, true
	default:
		return domain.LanguageUnset, false
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
