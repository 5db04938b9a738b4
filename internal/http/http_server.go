package http

// this is the entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/achievement"
	"gitlab.com/inteleval.net/internal/core/services/feedback"
	"gitlab.com/inteleval.net/internal/core/services/grading"
	"gitlab.com/inteleval.net/internal/core/services/judging"
	"gitlab.com/inteleval.net/internal/core/services/notification"
	"gitlab.com/inteleval.net/internal/core/services/ranking"
	"gitlab.com/inteleval.net/internal/core/services/realtime"
	"gitlab.com/inteleval.net/internal/handlers"
	achievementsh "gitlab.com/inteleval.net/internal/handlers/achievements"
	authh "gitlab.com/inteleval.net/internal/handlers/auth"
	feedbackh "gitlab.com/inteleval.net/internal/handlers/feedback"
	gradingh "gitlab.com/inteleval.net/internal/handlers/grading"
	judgeh "gitlab.com/inteleval.net/internal/handlers/judge"
	notificationsh "gitlab.com/inteleval.net/internal/handlers/notifications"
	rankingsh "gitlab.com/inteleval.net/internal/handlers/rankings"
	realtimeh "gitlab.com/inteleval.net/internal/handlers/realtime"
)

type ServiceProvider struct {
	judgingService      judging.IJudgingService
	gradingService      grading.IGradingService
	feedbackService     feedback.IFeedbackService
	notificationService notification.INotificationService
	rankingService      ranking.IRankingService
	achievementService  achievement.IAchievementService
	channelManager      *realtime.ChannelManager

	ggAuth    authh.GoogleAuthenticator
	localAuth authh.LocalAuthenticator
}

func NewServiceProvider(
	judgingService judging.IJudgingService,
	gradingService grading.IGradingService,
	feedbackService feedback.IFeedbackService,
	notificationService notification.INotificationService,
	rankingService ranking.IRankingService,
	achievementService achievement.IAchievementService,
	channelManager *realtime.ChannelManager,
	ggAuth authh.GoogleAuthenticator,
	localAuth authh.LocalAuthenticator,
) *ServiceProvider {
	return &ServiceProvider{
		judgingService:      judgingService,
		gradingService:      gradingService,
		feedbackService:     feedbackService,
		notificationService: notificationService,
		rankingService:      rankingService,
		achievementService:  achievementService,
		channelManager:      channelManager,
		ggAuth:              ggAuth,
		localAuth:           localAuth,
	}
}

type Server struct {
	router          *mux.Router
	httpServer      *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	// Open endpoints: judging (browser clients), auth, public reads
	judgeh.NewHandler(s.ServiceProvider.judgingService, s.logger).RegisterRoutes(r)
	rankingsh.NewHandler(s.ServiceProvider.rankingService, s.logger).RegisterRoutes(r)
	achievementsh.NewHandler(s.ServiceProvider.achievementService, s.logger).RegisterRoutes(r)
	authh.NewHandler(s.logger).RegisterRoutes(r, &authh.ServiceDependencies{
		GGAuthService:    s.ServiceProvider.ggAuth,
		LocalAuthService: s.ServiceProvider.localAuth,
	})

	// Endpoints that act as an authenticated profile
	protected := r.NewRoute().Subrouter()
	protected.Use(handlers.New().JWTMiddleware)
	gradingh.NewHandler(s.ServiceProvider.gradingService, s.logger).RegisterRoutes(protected)
	feedbackh.NewHandler(s.ServiceProvider.feedbackService, s.logger).RegisterRoutes(protected)
	notificationsh.NewHandler(s.ServiceProvider.notificationService, s.logger).RegisterRoutes(protected)
	realtimeh.NewHandler(s.ServiceProvider.channelManager, s.logger).RegisterRoutes(protected)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.httpServer = srv

	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr, "service", s.ServiceName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.httpServer == nil {
		return
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Shutdown error", "error", err)
	}
}
