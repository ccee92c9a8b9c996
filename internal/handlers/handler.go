package handlers

import (
	"database/sql"
	"net/http"
	"sway-pr/config"
	"sway-pr/internal/models"
	"sway-pr/internal/repositories"
	"sway-pr/internal/services"
	"sway-pr/internal/wsnotify"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options carries the optional collaborators of the HTTP layer. Nil fields
// fall back to the SQL session store, the global websocket hub and a fresh
// metrics registry; a nil Archive disables archiving.
type Options struct {
	Sessions repositories.SessionStore
	Archive  services.FileArchive
	Hub      *wsnotify.WebSocketManager
	Metrics  *services.Metrics
}

type HTTPHandler struct {
	imports   *services.ImportService
	queries   *services.QueryService
	uploads   *services.UploadService
	templates *services.DocumentService
	releases  *services.DocumentService
	drafts    *services.FollowUpService
	outreach  *services.OutreachService
	auth      *services.AuthService

	staff     *repositories.SQLStaffRepository
	followUps *repositories.SQLFollowUpRepository
	coverage  *repositories.SQLCoverageRepository

	hub      *wsnotify.WebSocketManager
	metrics  *services.Metrics
	validate *validator.Validate
	config   *config.Config
}

func NewHTTPHandler(db *sql.DB, cfg *config.Config, opts Options) *HTTPHandler {
	if opts.Sessions == nil {
		opts.Sessions = repositories.NewSQLSessionRepository(db)
	}
	if opts.Hub == nil {
		opts.Hub = wsnotify.Manager
	}
	if opts.Metrics == nil {
		opts.Metrics = services.NewMetrics()
	}

	contacts := repositories.NewSQLContactRepository(db)
	uploads := repositories.NewSQLUploadRepository(db)
	staff := repositories.NewSQLStaffRepository(db)
	pressReleases := repositories.NewSQLDocumentRepository(db, models.DocumentPressRelease)
	followUps := repositories.NewSQLFollowUpRepository(db)

	imports := services.NewImportService(contacts, cfg.Import).
		WithNotifier(opts.Hub).
		WithMetrics(opts.Metrics)
	if opts.Archive != nil {
		imports.WithArchive(opts.Archive)
	}

	return &HTTPHandler{
		imports:   imports,
		queries:   services.NewQueryService(contacts, uploads, cfg.Search),
		uploads:   services.NewUploadService(uploads, contacts, opts.Hub),
		templates: services.NewDocumentService(repositories.NewSQLDocumentRepository(db, models.DocumentEmailTemplate), opts.Archive),
		releases:  services.NewDocumentService(pressReleases, opts.Archive),
		drafts:    services.NewFollowUpService(followUps, pressReleases, staff, contacts),
		outreach:  services.NewOutreachService(contacts, repositories.NewSQLOutreachLogRepository(db), cfg.Webhook, opts.Metrics),
		auth:      services.NewAuthService(repositories.NewSQLUserRepository(db), opts.Sessions, cfg.Session.Duration),
		staff:     staff,
		followUps: followUps,
		coverage:  repositories.NewSQLCoverageRepository(db),
		hub:       opts.Hub,
		metrics:   opts.Metrics,
		validate:  newValidator(),
		config:    cfg,
	}
}

// Router returns the full HTTP surface: session endpoints, metrics and
// swagger at the root, and the authenticated API under /api.
func (h *HTTPHandler) Router() http.Handler {
	root := mux.NewRouter()
	root.Use(RequestLogger)

	root.HandleFunc("/login", h.Login).Methods("POST")
	root.HandleFunc("/logout", h.Logout).Methods("POST")
	root.Handle("/metrics", promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	root.PathPrefix("/api/swagger-ui/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/api/swagger-ui/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	api := root.PathPrefix("/api").Subrouter()
	api.Use(h.RequireSession)

	api.HandleFunc("/me", h.Me).Methods("GET")
	api.HandleFunc("/ws", h.WebSocket)

	// Import pipeline
	api.HandleFunc("/import/preview", h.PreviewImport).Methods("POST")
	api.HandleFunc("/import/run", h.RunImport).Methods("POST")

	// Contact queries
	api.HandleFunc("/table/{table}", h.ListTable).Methods("GET")
	api.HandleFunc("/table/{table}/schema", h.TableSchema).Methods("GET")
	api.HandleFunc("/outlets/{table}", h.DistinctOutlets).Methods("GET")
	api.HandleFunc("/cities/all", h.DistinctCities).Methods("GET")
	api.HandleFunc("/search/{field}", h.SearchField).Methods("GET")
	api.HandleFunc("/media-contacts", h.MediaContacts).Methods("GET")

	// Upload batches
	api.HandleFunc("/uploads", h.ListUploads).Methods("GET")
	api.HandleFunc("/upload/{id:[0-9]+}", h.GetUpload).Methods("GET")
	api.HandleFunc("/upload/{id:[0-9]+}", h.RenameUpload).Methods("PUT")
	api.HandleFunc("/upload/{id:[0-9]+}", h.DeleteUpload).Methods("DELETE")
	api.HandleFunc("/upload/{id:[0-9]+}/export", h.ExportUpload).Methods("GET")

	// Staff
	api.HandleFunc("/staff", h.ListStaff).Methods("GET")
	api.HandleFunc("/staff", h.CreateStaff).Methods("POST")
	api.HandleFunc("/staff/{id:[0-9]+}", h.DeleteStaff).Methods("DELETE")

	// Email templates and press releases
	for _, d := range []struct {
		list, item, upload string
		svc                *services.DocumentService
	}{
		{"/email-templates", "/email-template/{id:[0-9]+}", "/upload-template", h.templates},
		{"/press-releases", "/press-release/{id:[0-9]+}", "/upload-press-release", h.releases},
	} {
		api.HandleFunc(d.list, h.ListDocuments(d.svc)).Methods("GET")
		api.HandleFunc(d.item, h.GetDocument(d.svc)).Methods("GET")
		api.HandleFunc(d.item, h.UpdateDocument(d.svc)).Methods("PUT")
		api.HandleFunc(d.item, h.DeleteDocument(d.svc)).Methods("DELETE")
		api.HandleFunc(d.item+"/image", h.DocumentImage(d.svc)).Methods("GET")
		api.HandleFunc(d.upload, h.UploadDocument(d.svc)).Methods("POST")
	}

	// Follow-up emails
	api.HandleFunc("/follow-up-emails", h.ListFollowUpEmails).Methods("GET")
	api.HandleFunc("/follow-up-emails", h.CreateFollowUpEmail).Methods("POST")
	api.HandleFunc("/follow-up-email/{id:[0-9]+}", h.GetFollowUpEmail).Methods("GET")
	api.HandleFunc("/follow-up-email/{id:[0-9]+}", h.UpdateFollowUpEmail).Methods("PUT")
	api.HandleFunc("/follow-up-email/{id:[0-9]+}", h.DeleteFollowUpEmail).Methods("DELETE")

	// Coverage reports; published-reports is the older name
	for _, base := range []string{"/coverage-reports", "/published-reports"} {
		api.HandleFunc(base, h.ListCoverageReports).Methods("GET")
		api.HandleFunc(base, h.CreateCoverageReport).Methods("POST")
		api.HandleFunc(base+"/{id:[0-9]+}", h.GetCoverageReport).Methods("GET")
		api.HandleFunc(base+"/{id:[0-9]+}", h.UpdateCoverageReport).Methods("PUT")
		api.HandleFunc(base+"/{id:[0-9]+}", h.DeleteCoverageReport).Methods("DELETE")
		api.HandleFunc(base+"/{id:[0-9]+}/qrcode", h.CoverageQRCode).Methods("GET")
	}

	// Outreach
	api.HandleFunc("/webhook/send_targeted_outreach", h.SendTargetedOutreach).Methods("POST")
	api.HandleFunc("/outreach/history", h.OutreachHistory).Methods("GET")
	api.HandleFunc("/outreach/prepare-follow-up", h.PrepareFollowUp).Methods("POST")

	origins := h.config.CORS.AllowedOrigins
	c := cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return containsOrigin(origins, origin) },
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(root)
}

func containsOrigin(origins []string, origin string) bool {
	for _, o := range origins {
		if o == origin {
			return true
		}
	}
	return false
}
