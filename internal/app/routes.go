package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/omhp/weektaak/internal/logger"
)

// Routes wires the server handlers
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.GetHead)

	router.Get("/", s.ServeIndex)
	router.Get("/index.html", s.ServeIndex)
	router.Get(PersonalPage, s.ServePersonal)
	router.Get("/health", HandleHealth)
	router.Handle("/static/*", http.FileServer(http.FS(StaticFiles)))

	// Feeds are read by calendar apps and other pages
	router.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			MaxAge:         300,
		}))

		r.Get("/tasks.json", s.HandleTasksJSON)
		r.Get("/cal/{file}", s.HandleCalendar)
		r.Route("/api", func(r chi.Router) {
			r.Get("/week", s.HandleWeek)
			r.Get("/people", s.HandlePeople)
			r.Get("/people/{name}", s.HandlePerson)
		})
	})

	return router
}

// requestLogger logs every request with its status and duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
