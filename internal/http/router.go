package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handlers 路由注册所需的全部实体 Handler
type Handlers struct {
	Organizations   *OrganizationsHandler
	Accounts        *AccountsHandler
	TrackingObjects *TrackingObjectsHandler
	Tags            *TagsHandler
	Alarms          *AlarmsHandler
	Routes          *RoutesHandler
	Roles           *RolesHandler
}

// RegisterRoutes 注册全部实体路由
func (r *Router) RegisterRoutes(h *Handlers) {
	r.Handle("/organizations", h.Organizations)
	r.Handle("/organizations/", h.Organizations)

	r.Handle("/accounts", h.Accounts)
	r.Handle("/accounts/", h.Accounts)

	r.Handle("/tracking-objects", h.TrackingObjects)
	r.Handle("/tracking-objects/", h.TrackingObjects)

	r.Handle("/tags", h.Tags)
	r.Handle("/tags/", h.Tags)

	r.Handle("/alarms", h.Alarms)
	r.Handle("/alarms/", h.Alarms)

	r.Handle("/routes", h.Routes)
	r.Handle("/routes/", h.Routes)

	r.Handle("/roles", h.Roles)
	r.Handle("/roles/", h.Roles)

	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
