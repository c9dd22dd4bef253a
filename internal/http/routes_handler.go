package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
	"trakr-data/internal/service"
)

// RoutesHandler 轨迹查询 Handler
type RoutesHandler struct {
	routeService service.RouteService
	orgService   service.OrganizationService
	logger       *zap.Logger
}

// NewRoutesHandler 创建轨迹查询 Handler
func NewRoutesHandler(routeService service.RouteService, orgService service.OrganizationService, logger *zap.Logger) *RoutesHandler {
	return &RoutesHandler{
		routeService: routeService,
		orgService:   orgService,
		logger:       logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *RoutesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/routes/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case strings.HasPrefix(r.URL.Path, "/routes/statistics/") && r.Method == http.MethodGet:
		h.Statistics(w, r)
	case r.URL.Path == "/routes" && r.Method == http.MethodGet:
		h.ListRoutes(w, r)
	case strings.HasPrefix(r.URL.Path, "/routes/") && r.Method == http.MethodGet:
		h.GetRoute(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListRoutes 查询轨迹列表
func (h *RoutesHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	startTime, err := parseTimeParam(r, "start_time")
	if err != nil {
		writeError(w, err)
		return
	}
	endTime, err := parseTimeParam(r, "end_time")
	if err != nil {
		writeError(w, err)
		return
	}

	filter := repository.RoutesFilter{
		Organization: strings.TrimSpace(r.URL.Query().Get("organization")),
		StartTime:    startTime,
		EndTime:      endTime,
	}
	page := paginationFromQuery(r)

	routes, pageOut, err := h.routeService.ListRoutes(r.Context(), filter, page)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("ListRoutes failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"routes":     routes,
		"pagination": pageOut,
	})
}

// GetRoute 根据ID查询轨迹点
func (h *RoutesHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/routes/"))
	if err != nil {
		writeError(w, err)
		return
	}

	route, err := h.routeService.GetRoute(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetRoute failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, route)
}

// Statistics 组织轨迹统计
func (h *RoutesHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	organization := strings.TrimPrefix(r.URL.Path, "/routes/statistics/")
	if organization == "" || strings.Contains(organization, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	startTime, err := parseTimeParam(r, "start_time")
	if err != nil {
		writeError(w, err)
		return
	}
	endTime, err := parseTimeParam(r, "end_time")
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.routeService.Statistics(r.Context(), organization, startTime, endTime)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("Statistics failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
