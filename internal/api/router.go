package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yegors/wxwidget/internal/config"
	"github.com/yegors/wxwidget/pkg/logger"
)

// Router wires the API handlers, the websocket endpoint and the page shell
type Router struct {
	handler   *Handler
	websocket http.HandlerFunc
	metrics   http.Handler
	static    http.Handler
	config    *config.Config
	logger    *logger.Logger
}

// NewRouter creates a new router. metricsHandler is only mounted when metrics are enabled.
func NewRouter(handler *Handler, websocket http.HandlerFunc, metricsHandler http.Handler, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:   handler,
		websocket: websocket,
		metrics:   metricsHandler,
		static:    NewStaticFileHandler(config.Server.StaticFilesDir, logger),
		config:    config,
		logger:    logger.Named("router"),
	}
}

// Routes builds the HTTP handler tree
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(rt.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", rt.handler.GetHealth)
		r.Get("/config", rt.handler.GetConfig)
		r.Get("/weather", rt.handler.GetWeather)
	})

	if rt.websocket != nil {
		r.Get("/ws", rt.websocket)
	}

	if rt.config.Metrics.Enabled && rt.metrics != nil {
		r.Method(http.MethodGet, rt.config.Metrics.Path, rt.metrics)
	}

	r.NotFound(rt.static.ServeHTTP)

	return r
}

// requestLogger logs each request through the application logger
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		rt.logger.Debug("HTTP request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
			logger.String("request_id", middleware.GetReqID(r.Context())))
	})
}
