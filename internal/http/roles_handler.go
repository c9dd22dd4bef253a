package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/service"
)

// RolesHandler 角色查询 Handler
type RolesHandler struct {
	roleService service.RoleService
	orgService  service.OrganizationService
	logger      *zap.Logger
}

// NewRolesHandler 创建角色查询 Handler
func NewRolesHandler(roleService service.RoleService, orgService service.OrganizationService, logger *zap.Logger) *RolesHandler {
	return &RolesHandler{
		roleService: roleService,
		orgService:  orgService,
		logger:      logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/roles/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case r.URL.Path == "/roles" && r.Method == http.MethodGet:
		h.ListRoles(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListRoles 查询组织下的角色
func (h *RolesHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	organization := strings.TrimSpace(r.URL.Query().Get("organization"))

	roles, err := h.roleService.ListRoles(r.Context(), organization)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("ListRoles failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roles)
}
