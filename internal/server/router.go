package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sabores/internal/auth"
	"sabores/internal/commons"
	ordercontroller "sabores/internal/order/controller"
	productcontroller "sabores/internal/product/controller"
	"sabores/internal/upload"
)

// Handlers groups the module controllers mounted by the router.
type Handlers struct {
	Orders    *ordercontroller.OrderController
	Products  *productcontroller.Controller
	Auth      *auth.Controller
	Upload    *upload.Controller
	UploadDir string
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		commons.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.Orders.Submit)
		r.Get("/orders", h.Orders.List)

		r.Post("/auth/login", h.Auth.HandleLogin)

		r.Post("/upload", h.Upload.HandleUpload)
		r.Delete("/upload", h.Upload.HandleDelete)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.HandleList)
			r.Post("/", h.Products.HandleCreate)
			r.Get("/{id}", h.Products.HandleGet)
			r.Put("/{id}", h.Products.HandleUpdate)
			r.Delete("/{id}", h.Products.HandleDelete)
		})
	})

	if h.UploadDir != "" {
		r.Handle(upload.PublicPrefix+"*", http.StripPrefix(upload.PublicPrefix, http.FileServer(http.Dir(h.UploadDir))))
	}

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case ww.Status() >= 500:
				logger.Error("request completed", fields...)
			case ww.Status() >= 400:
				logger.Warn("request completed", fields...)
			default:
				logger.Info("request completed", fields...)
			}
		})
	}
}
