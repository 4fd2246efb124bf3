package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"adminauth/pkg/handlers"
	"adminauth/pkg/middleware"
)

const (
	apiPrefix = "/api"

	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

func NewRouter(userHandler *handlers.Handler, decoder middleware.TokenDecoder, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Panic(logger))

	InitRoutes(r, userHandler, decoder, logger)
	ServeFallback(r, logger)
	return r
}

// InitRoutes registers full paths on the root router; mux reports a method
// mismatch on a PathPrefix subrouter as 404.
func InitRoutes(r *mux.Router, userHandler *handlers.Handler, decoder middleware.TokenDecoder, logger *slog.Logger) {
	checkJWT := middleware.CheckJWT(decoder, logger)

	/* auth routers */
	r.HandleFunc(apiPrefix+"/login", userHandler.Login).Methods(http.MethodPost).Name("login")
	r.Handle(apiPrefix+"/check-auth", checkJWT(http.HandlerFunc(userHandler.CheckAuth))).Methods(http.MethodGet).Name("check-auth")

	/* service routers */
	r.HandleFunc(apiPrefix+"/health", userHandler.Health).Methods(http.MethodGet).Name("health")
}

// ServeFallback answers unknown paths and methods with JSON errors.
func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.NotFoundHandler = middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResp(w, logger, handlers.MessageResponse{Message: "not found"}, http.StatusNotFound)
	}))
	r.MethodNotAllowedHandler = methodNotAllowed(logger)
}

func methodNotAllowed(logger *slog.Logger) http.Handler {
	return middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResp(w, logger, handlers.MessageResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
	}))
}

// StartServer listens on addr and serves h until ctx is cancelled.
func StartServer(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, shutdownTimeout, logger)
}

// Serve serves h on ln and shuts the server down gracefully once ctx is done.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
