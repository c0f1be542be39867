// server.go - HTTP server assembly: configuration, route table, middleware
// chain, and the JSON response helpers shared by every handler.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
)

type Config struct {
	Addr           string // e.g. ":8080"
	Build          string
	SecretKey      string
	DB             *sql.DB
	Minio          *minio.Client
	Bucket         string
	PublicURL      string // base URL served photo objects are linked under
	MaxUploadBytes int64  // 0 means no limit
}

type Server struct {
	cfg         Config
	auth        AuthConfig
	donors      DonorStore
	refs        ReferenceStore
	chat        ChatStore
	db          *sql.DB
	minioClient *minio.Client
	bucketName  string
	httpServer  *http.Server
}

// New assembles the server. With a database configured the stores are
// PostgreSQL-backed; without one they fall back to in-memory stores, which
// is what the handler tests run against.
func New(cfg Config) *Server {
	s := &Server{
		cfg:         cfg,
		db:          cfg.DB,
		minioClient: cfg.Minio,
		bucketName:  cfg.Bucket,
	}

	if cfg.DB != nil {
		s.donors = NewPostgresDonorStore(cfg.DB)
		s.refs = NewPostgresReferenceStore(cfg.DB)
		s.chat = NewPostgresChatStore(cfg.DB)
	} else {
		s.donors = NewMemoryDonorStore()
		s.refs = NewMemoryReferenceStore()
		s.chat = NewMemoryChatStore()
	}

	s.auth = AuthConfig{SecretKey: cfg.SecretKey, Donors: s.donors}

	mux := http.NewServeMux()

	// Registration and login are the abuse targets; everything else is
	// read-heavy and left unthrottled.
	limiter := newRateLimiter(20, time.Minute)

	mux.HandleFunc("GET /{$}", s.welcomeHandler)

	mux.Handle("POST /login", limiter.middleware(http.HandlerFunc(s.loginHandler)))
	mux.Handle("POST /donorsData", limiter.middleware(http.HandlerFunc(s.registerDonorHandler)))
	mux.Handle("GET /profile", s.auth.requireAuth(http.HandlerFunc(s.profileHandler)))

	mux.HandleFunc("GET /donor/{number}", s.donorDetailHandler)
	mux.HandleFunc("GET /all-donors", s.allDonorsHandler)
	mux.HandleFunc("POST /donor/update/{number}", s.updateDonorHandler)
	mux.HandleFunc("POST /donor/update/photo/{number}", s.updatePhotoHandler)
	mux.HandleFunc("POST /manage-date/{number}", s.manageDateHandler)
	mux.HandleFunc("POST /change-password/{number}", s.changePasswordHandler)
	mux.HandleFunc("POST /getSearchResult", s.searchHandler)

	mux.HandleFunc("POST /univercelData", s.createReferenceHandler)
	mux.HandleFunc("GET /univercelData", s.listReferenceHandler)
	mux.HandleFunc("POST /upazilla", s.upazillaHandler)
	mux.HandleFunc("POST /getDistrict", s.getDistrictHandler)

	mux.HandleFunc("POST /chatbox", s.postMessageHandler)
	mux.HandleFunc("GET /chatbox", s.listMessagesHandler)

	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.HandleFunc("GET /ready", s.HandleReady)
	mux.HandleFunc("GET /live", s.HandleLive)
	mux.Handle("GET /metrics", PrometheusMetricsHandler(cfg.Build))

	// Wrap middleware: securityHeaders -> cors -> requestID -> logging -> mux
	var handler http.Handler = mux
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(handler)
	handler = securityHeadersMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// welcomeHandler answers GET / with the plain-text banner clients probe
// the server with.
func (s *Server) welcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Welcome to SERVER"))
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// msgResp is the uniform message envelope used by errors and simple
// confirmations alike.
type msgResp struct {
	Msg string `json:"msg"`
}

// writeMsg writes the {"msg": ...} envelope with the given status.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResp{Msg: msg})
}
