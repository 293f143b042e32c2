package shell

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/vehicle-viewer/internal/api"
	"github.com/ukydev/vehicle-viewer/internal/middleware"
	"github.com/ukydev/vehicle-viewer/internal/ui"
)

// Route names of the two screens.
const (
	RouteHome     = "Home"
	RouteVehicles = "Vehicles"
)

// Shell is the front-end's static route table. It holds no per-screen state: every
// request to a route builds a fresh screen.
type Shell struct {
	router *mux.Router
	lister api.VehicleLister
	log    logrus.FieldLogger
}

// New wires the Home and Vehicles routes.
func New(lister api.VehicleLister, logger logrus.FieldLogger) *Shell {
	s := &Shell{
		router: mux.NewRouter(),
		lister: lister,
		log:    logger,
	}

	s.router.Use(middleware.RequestID, middleware.AccessLog(logger))
	s.router.HandleFunc("/", s.home).Methods(http.MethodGet).Name(RouteHome)
	s.router.HandleFunc("/vehicles", s.vehicles).Methods(http.MethodGet).Name(RouteVehicles)
	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return s
}

func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// URL returns the path of the named route.
func (s *Shell) URL(name string) string {
	route := s.router.Get(name)
	if route == nil {
		return ""
	}
	u, err := route.URL()
	if err != nil {
		return ""
	}
	return u.Path
}

func (s *Shell) page(active string) ui.Page {
	nav := make([]ui.NavLink, 0, 2)
	for _, name := range []string{RouteHome, RouteVehicles} {
		nav = append(nav, ui.NavLink{Name: name, URL: s.URL(name), Active: name == active})
	}
	return ui.Page{Title: active, Nav: nav}
}

func (s *Shell) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	logger := s.requestLogger(r)
	if err := ui.RenderHeader(w, s.page(RouteHome)); err != nil {
		logger.WithError(err).Error("Failed to render home screen")
		return
	}
	if err := (ui.HomeScreen{VehiclesURL: s.URL(RouteVehicles)}).Render(w); err != nil {
		logger.WithError(err).Error("Failed to render home screen")
		return
	}
	if err := ui.RenderFooter(w); err != nil {
		logger.WithError(err).Error("Failed to render home screen")
	}
}

// vehicles mounts a new VehiclesScreen for this request. The spinner is streamed first
// when the fetch is still in flight, then the list once it completes.
func (s *Shell) vehicles(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	screen := ui.NewVehiclesScreen(s.lister, logger)
	screen.Mount(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.RenderHeader(w, s.page(RouteVehicles)); err != nil {
		logger.WithError(err).Error("Failed to render vehicles screen")
		return
	}

	select {
	case <-screen.Done():
	default:
		if err := ui.RenderLoading(w); err != nil {
			logger.WithError(err).Error("Failed to render vehicles screen")
			return
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}

	select {
	case <-screen.Done():
	case <-r.Context().Done():
		logger.Debug("Vehicles screen left before loading finished")
		return
	}

	if err := screen.Render(w); err != nil {
		logger.WithError(err).Error("Failed to render vehicles screen")
		return
	}
	if err := ui.RenderFooter(w); err != nil {
		logger.WithError(err).Error("Failed to render vehicles screen")
		return
	}

	logger.WithFields(logrus.Fields{
		"outcome": screen.Outcome(),
		"count":   len(screen.Vehicles()),
	}).Info("Rendered vehicles")
}

func (s *Shell) requestLogger(r *http.Request) logrus.FieldLogger {
	if id, ok := middleware.GetRequestID(r.Context()); ok {
		return s.log.WithField("request_id", id)
	}
	return s.log
}
