package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/folio/i18n"
	"github.com/Daskott/folio/server/auth"
	"github.com/Daskott/folio/server/auth/key"
	"github.com/Daskott/folio/server/gstorage"
	"github.com/Daskott/folio/server/logger"
	"github.com/Daskott/folio/server/metrics"
	"github.com/Daskott/folio/server/models"
	"github.com/Daskott/folio/server/notifier"
	"github.com/Daskott/folio/server/ratelimit"
	"github.com/Daskott/folio/server/twilio"
	"github.com/Daskott/folio/server/work"
	"github.com/Daskott/folio/shared"
	"github.com/Daskott/folio/site"
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"
)

type RequestContextKey string

type DecodedJWT struct {
	Claims   *auth.FolioTokenClaims
	ErrorMsg string
}

type ResponsePayload struct {
	Errors  []string    `json:"errors,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ContactResponse is the body of POST /api/contact. 'Error' is what the page
// shows verbatim when a submission fails.
type ContactResponse struct {
	Success bool              `json:"success,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type folioServer struct {
	owner      shared.OwnerConfig
	storage    shared.StorageConfig
	dbFilePath string

	keyPair    *key.KeyPair
	bundle     *i18n.Bundle
	content    site.Content
	metrics    *metrics.Metrics
	limiter    *ratelimit.Limiter
	proxies    ratelimit.TrustedProxies
	notifier   *notifier.Notifier
	workerPool *work.WorkerPoolAdapter
	gStorage   *gstorage.GStorage
	pages      *pageRenderer
}

var (
	logg     = logger.NewLogger()
	validate = validator.New()
)

func init() {
	fatalOnError(RegisterValidators(validate))
}

func Start(config *viper.Viper, devMode bool) {
	serverConfig, err := loadServerConfig(config)
	fatalOnError(err)

	configDir := configDirectory(devMode)
	storageConfig := serverConfig.Google.Storage
	dbFilePath := models.DbFilePath(configDir)

	var gStorage *gstorage.GStorage
	if storageConfig.EnableSqliteBackupAndSync {
		gStorage, err = gstorage.NewGStorage(serverConfig.Google.ApplicationCredentials)
		fatalOnError(err)

		fatalOnError(syncSqliteDb(gStorage, storageConfig, dbFilePath))
	}

	fatalOnError(models.InitializeDb(serverConfig.Sqlite.PassPhrase, configDir))

	keyPair, err := key.NewKeyPairFromPemBytes([]byte(serverConfig.Folio.PrivateKeyPem))
	fatalOnError(err)

	workers := serverConfig.Folio.Workers
	if workers == 0 {
		workers = work.MAX_CONCURRENCY
	}
	workerPool, err := work.NewWorkerAdapter(serverConfig.Folio.Cron.TimeZone, workers, false)
	fatalOnError(err)

	s, err := newFolioServer(serverConfig, workerPool, twilio.NewClient(serverConfig.Twilio, devMode), keyPair)
	fatalOnError(err)
	s.dbFilePath = dbFilePath
	s.gStorage = gStorage

	fatalOnError(s.registerJobHandlers())
	fatalOnError(s.enqueueJobs())

	workerPool.Start()
	s.limiter.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%v", serverConfig.Folio.Listener.Port),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go serve(server)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down folio server...")
	cleanup(s, workerPool, server, storageConfig.EnableSqliteBackupAndSync)
}

func newFolioServer(serverConfig *shared.ServerConfig, workerPool *work.WorkerPoolAdapter, sender notifier.Sender, keyPair *key.KeyPair) (*folioServer, error) {
	bundle, err := i18n.NewBundle()
	if err != nil {
		return nil, err
	}

	pages, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	n, err := notifier.NewNotifier(workerPool, sender, serverConfig.Owner, m)
	if err != nil {
		return nil, err
	}

	proxies, err := ratelimit.ParseTrustedProxies(serverConfig.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}

	limit := serverConfig.RateLimit.Limit
	if limit == 0 {
		limit = ratelimit.DEFAULT_LIMIT
	}

	return &folioServer{
		owner:      serverConfig.Owner,
		storage:    serverConfig.Google.Storage,
		keyPair:    keyPair,
		bundle:     bundle,
		content:    site.DefaultContent(),
		metrics:    m,
		limiter:    ratelimit.NewLimiter(limit, time.Duration(serverConfig.RateLimit.WindowMinutes)*time.Minute),
		proxies:    proxies,
		notifier:   n,
		workerPool: workerPool,
		pages:      pages,
	}, nil
}

func (s *folioServer) router() *mux.Router {
	router := mux.NewRouter()
	// mux does not run router middlewares for NotFoundHandler
	router.NotFoundHandler = s.loggingMiddleware(s.localeMiddleware(http.HandlerFunc(s.notFound)))
	router.Use(s.loggingMiddleware)
	router.Use(s.localeMiddleware)

	// Pages
	router.HandleFunc("/", s.index).Methods("GET")
	router.HandleFunc("/contact", s.submitContactForm).Methods("POST")
	router.HandleFunc("/contact/new", s.newContactForm).Methods("GET")
	router.HandleFunc("/locale", s.switchLocale).Methods("POST")
	router.HandleFunc("/health", s.health).Methods("GET")
	router.HandleFunc("/jwks", s.jwks).Methods("GET")
	router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	router.PathPrefix("/static/").Handler(staticHandler())

	// Public API
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(jsonContentTypeMiddleware)
	apiRouter.HandleFunc("/contact", s.createSubmission).Methods("POST")
	apiRouter.HandleFunc("/animations", s.animations).Methods("GET")
	apiRouter.HandleFunc("/messages", s.messages).Methods("GET")
	apiRouter.HandleFunc("/content", s.siteContent).Methods("GET")
	apiRouter.HandleFunc("/login", s.logIn).Methods("POST")

	// Admin API
	adminRouter := apiRouter.NewRoute().Subrouter()
	adminRouter.Use(s.adminRouteMiddleware)
	adminRouter.HandleFunc("/submissions", s.findSubmissions).Methods("GET")
	adminRouter.HandleFunc("/submissions/{id:[0-9]+}", s.findSubmission).Methods("GET")
	adminRouter.HandleFunc("/submissions/{id:[0-9]+}", s.updateSubmission).Methods("PUT")
	adminRouter.HandleFunc("/submissions/{id:[0-9]+}", s.deleteSubmission).Methods("DELETE")
	adminRouter.HandleFunc("/jobs", s.findJobs).Methods("GET")
	adminRouter.HandleFunc("/jobs/stats", s.jobStats).Methods("GET")

	return router
}

func syncSqliteDb(gStorage *gstorage.GStorage, storageConfig shared.StorageConfig, dbFilePath string) error {
	if _, err := os.Stat(dbFilePath); err == nil {
		return nil
	}

	object := gstorage.ObjectName(storageConfig.Prefix, dbFilePath)
	err := gStorage.DownloadFile(context.Background(), storageConfig.Bucket, object, dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("No backup found at %v/%v, starting with a new database", storageConfig.Bucket, object)
		return nil
	}

	return err
}
