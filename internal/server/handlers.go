// Package server exposes a session over local HTTP so a share link can be opened
// in a browser. The server holds its own order set, loaded from the store at
// startup; a terminal session running at the same time keeps a separate copy,
// and whichever saves last wins in the store.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"dinnerconcierge/internal/codec"
	"dinnerconcierge/internal/export"
	"dinnerconcierge/internal/flow"
	"dinnerconcierge/internal/models"
)

// Server serialises every request on one controller; net/http runs handlers
// concurrently but the controller is single-threaded.
type Server struct {
	mu        sync.Mutex
	ctrl      *flow.Controller
	shareBase string
	logger    log.FieldLogger
	now       func() time.Time
}

func New(ctrl *flow.Controller, shareBase string, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{ctrl: ctrl, shareBase: shareBase, logger: logger, now: time.Now}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/orders", s.orders).Methods(http.MethodGet)
	r.HandleFunc("/summary", s.summary).Methods(http.MethodGet)
	r.HandleFunc("/share", s.share).Methods(http.MethodGet)
	return s.logMiddleware(r)
}

type status struct {
	State   string   `json:"state"`
	Orders  []string `json:"orders"`
	Waiting []string `json:"waiting"`
	Menu    int      `json:"menuItems"`
	Notice  string   `json:"notice,omitempty"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Has(codec.ImportParam) {
		s.consumeImport(query.Get(codec.ImportParam))

		// the payload is consumed once; drop it so a reload does not import again
		query.Del(codec.ImportParam)
		target := *r.URL
		target.RawQuery = query.Encode()
		http.Redirect(w, r, target.RequestURI(), http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	st := status{
		State:   s.ctrl.State().String(),
		Orders:  s.ctrl.Orders().Names(),
		Waiting: memberNames(s.ctrl.Waiting()),
		Menu:    len(s.ctrl.Menu().AllItems()),
		Notice:  s.ctrl.Notice(),
	}
	s.mu.Unlock()

	s.writeJSON(w, st)
}

func (s *Server) consumeImport(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.ctrl.Import(payload)
	if err != nil {
		s.logger.WithError(err).Warn("Ignoring shared link")
		return
	}
	s.logger.WithField("names", names).Info("Imported shared orders")
}

func (s *Server) orders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	orders := s.ctrl.Orders()
	s.mu.Unlock()

	s.writeJSON(w, orders)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	format := export.FormatReport
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	s.mu.Lock()
	orders := s.ctrl.Orders()
	s.mu.Unlock()

	content, err := export.Render(format, orders, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if format == export.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+export.FileName(format, s.now())+`"`)
	if _, err := w.Write(content); err != nil {
		s.logger.WithError(err).Error("write response")
	}
}

func (s *Server) share(w http.ResponseWriter, r *http.Request) {
	person := r.URL.Query().Get("person")
	if person != "" {
		if _, err := models.ParseMember(person); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	link, err := s.ctrl.ShareLink(s.shareBase, person)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, map[string]string{"link": link})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		s.logger.WithError(err).Error("write response")
	}
}

func (s *Server) logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

func memberNames(members []models.Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, string(m))
	}
	return names
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
