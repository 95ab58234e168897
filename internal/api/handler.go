package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovira/internal/logger"
	"github.com/terraincognita07/ovira/internal/services"
)

const (
	contextUserIDKey = "user_id"

	defaultChatRateLimit  = 20
	defaultChatRateWindow = time.Minute
)

type Dependencies struct {
	Logs      *services.SymptomLogService
	Dashboard *services.DashboardService
	Reports   *services.ReportService
	Profiles  *services.ProfileService
	Chat      *services.ChatService

	SecretKey      string
	Location       *time.Location
	Logger         *logger.Logger
	ChatLimiter    ChatLimiter
	ChatRateLimit  int
	ChatRateWindow time.Duration
	Now            func() time.Time
}

type Handler struct {
	logs      *services.SymptomLogService
	dashboard *services.DashboardService
	reports   *services.ReportService
	profiles  *services.ProfileService
	chat      *services.ChatService

	secretKey      []byte
	location       *time.Location
	log            *logger.Logger
	chatLimiter    ChatLimiter
	chatRateLimit  int
	chatRateWindow time.Duration
	now            func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Logs == nil || deps.Dashboard == nil || deps.Reports == nil || deps.Profiles == nil || deps.Chat == nil {
		return nil, errors.New("api services are not configured")
	}

	handler := &Handler{
		logs:           deps.Logs,
		dashboard:      deps.Dashboard,
		reports:        deps.Reports,
		profiles:       deps.Profiles,
		chat:           deps.Chat,
		secretKey:      []byte(deps.SecretKey),
		location:       deps.Location,
		log:            deps.Logger,
		chatLimiter:    deps.ChatLimiter,
		chatRateLimit:  deps.ChatRateLimit,
		chatRateWindow: deps.ChatRateWindow,
		now:            deps.Now,
	}
	if handler.location == nil {
		handler.location = time.UTC
	}
	if handler.log == nil {
		handler.log = logger.NewNop()
	}
	if handler.chatLimiter == nil {
		handler.chatLimiter = newAttemptLimiter()
	}
	if handler.chatRateLimit <= 0 {
		handler.chatRateLimit = defaultChatRateLimit
	}
	if handler.chatRateWindow <= 0 {
		handler.chatRateWindow = defaultChatRateWindow
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	return handler, nil
}
