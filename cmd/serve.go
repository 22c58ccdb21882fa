package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/staff"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for sync and staff requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSyncEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		// Staff endpoints need the contacts database; without it the API
		// still serves company sync.
		var staffSvc *staff.Service
		if cfg.Notion.ContactsDB != "" {
			staffSvc, err = initStaff(env)
			if err != nil {
				return err
			}
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env, staffSvc),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the API routes. staffSvc may be nil when the contacts
// database is not configured.
func newRouter(env *syncEnv, staffSvc *staff.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/sync", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Regcode string `json:"regcode"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Regcode == "" {
			writeError(w, http.StatusBadRequest, "regcode is required")
			return
		}

		log := requestLogger("sync", zap.String("regcode", body.Regcode))
		outcome, err := env.Syncer.SyncByRegcode(req.Context(), body.Regcode)
		if err != nil {
			log.Error("sync failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		log.Info(outcome.Message())
		writeJSON(w, http.StatusOK, outcome)
	})

	// Notion button automations can only issue GETs, so autofill accepts
	// both verbs.
	autofill := func(w http.ResponseWriter, req *http.Request, pageID string) {
		if pageID == "" {
			writeError(w, http.StatusBadRequest, "page_id is required")
			return
		}

		log := requestLogger("autofill", zap.String("page_id", pageID))
		outcome, err := env.Syncer.AutofillPage(req.Context(), pageID)
		if err != nil {
			log.Error("autofill failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		log.Info(outcome.Message())
		writeJSON(w, http.StatusOK, outcome)
	}

	r.Get("/api/autofill", func(w http.ResponseWriter, req *http.Request) {
		autofill(w, req, req.URL.Query().Get("page_id"))
	})

	r.Post("/api/autofill", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			PageID string `json:"page_id"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		autofill(w, req, body.PageID)
	})

	r.Post("/api/update-staff", func(w http.ResponseWriter, req *http.Request) {
		if staffSvc == nil {
			writeError(w, http.StatusServiceUnavailable, "contacts database not configured")
			return
		}

		var body struct {
			OrgPageID string         `json:"org_page_id"`
			People    []model.Person `json:"people"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.OrgPageID == "" {
			writeError(w, http.StatusBadRequest, "org_page_id is required")
			return
		}
		if len(body.People) == 0 {
			writeError(w, http.StatusBadRequest, "people is required")
			return
		}

		log := requestLogger("update-staff", zap.String("org_page_id", body.OrgPageID))
		report, err := staffSvc.Apply(req.Context(), body.OrgPageID, body.People)
		if err != nil {
			log.Error("staff update failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		log.Info(report.Message())
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

// requestLogger tags log lines of one API request with a run ID, so
// concurrent requests stay distinguishable in the output.
func requestLogger(op string, fields ...zap.Field) *zap.Logger {
	all := append([]zap.Field{
		zap.String("op", op),
		zap.String("run_id", uuid.New().String()),
	}, fields...)
	return zap.L().With(all...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
