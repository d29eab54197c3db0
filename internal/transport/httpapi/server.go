package httpapi

import (
	"context"
	"net/http"

	"github.com/kaypiton/billing-backend/internal/config"
	"github.com/kaypiton/billing-backend/internal/logging"
	"github.com/kaypiton/billing-backend/internal/services"
)

// Services bundles everything the router serves.
type Services struct {
	Auth      *services.AuthService
	Issuer    *services.TokenIssuer
	Customers *services.CustomerService
	Products  *services.ProductService
	Billings  *services.BillingService
	Roles     *services.RoleService
	Users     *services.UserService
}

// NewRouter builds the full route table. Auth routes and the health check
// are open; everything else requires a bearer token.
func NewRouter(svcs *Services, logger logging.Logger) http.Handler {
	mux := http.NewServeMux()
	guard := func(next http.Handler) http.Handler {
		return requireAuth(svcs.Issuer, next)
	}

	auth := &authHandler{svc: svcs.Auth, logger: logger}
	mux.Handle("POST /api/authenticate/signin", http.HandlerFunc(auth.signIn))
	mux.Handle("POST /api/authenticate/refresh", http.HandlerFunc(auth.refresh))
	mux.Handle("POST /api/authenticate/revoke", http.HandlerFunc(auth.revoke))

	registerCRUD[services.CustomerRequest, services.CustomerResponse](mux, "customer", svcs.Customers, logger, guard)
	registerCRUD[services.ProductRequest, services.ProductResponse](mux, "product", svcs.Products, logger, guard)
	registerCRUD[services.BillingRequest, services.BillingResponse](mux, "billing", svcs.Billings, logger, guard)
	registerCRUD[services.RoleRequest, services.RoleResponse](mux, "role", svcs.Roles, logger, guard)

	users := &userHandler{svc: svcs.Users, logger: logger}
	mux.Handle("POST /api/user", guard(http.HandlerFunc(users.create)))
	mux.Handle("GET /api/user", guard(http.HandlerFunc(users.getAll)))
	mux.Handle("GET /api/user/{id}", guard(http.HandlerFunc(users.getByID)))
	mux.Handle("PUT /api/user/{id}", guard(http.HandlerFunc(users.update)))
	mux.Handle("DELETE /api/user/{id}", guard(http.HandlerFunc(users.delete)))

	mux.Handle("POST /api/billing/import", guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svcs.Billings.ImportFromExternalAPI(r.Context()); err != nil {
			respondError(w, r, logger, err)
			return
		}
		respondData(w, r, "Billing data imported successfully.")
	})))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		respondData(w, r, "ok")
	})

	return withTraceID(withRequestLogging(logger, mux))
}

// Server wraps http.Server with the configured timeouts.
type Server struct {
	srv *http.Server
}

func NewServer(cfg config.HTTPServer, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}}
}

func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
