package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/service"
)

// OrganizationsHandler 组织管理 Handler
type OrganizationsHandler struct {
	orgService service.OrganizationService
	logger     *zap.Logger
}

// NewOrganizationsHandler 创建组织管理 Handler
func NewOrganizationsHandler(orgService service.OrganizationService, logger *zap.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *OrganizationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/organizations" && r.Method == http.MethodGet:
		h.ListOrganizations(w, r)
	case r.URL.Path == "/organizations" && r.Method == http.MethodPost:
		h.CreateOrganization(w, r)
	case strings.HasPrefix(r.URL.Path, "/organizations/") && r.Method == http.MethodGet:
		h.GetOrganization(w, r)
	case strings.HasPrefix(r.URL.Path, "/organizations/") && r.Method == http.MethodPut:
		h.UpdateOrganization(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListOrganizations 分页查询组织列表
func (h *OrganizationsHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	page := paginationFromQuery(r)

	orgs, pageOut, err := h.orgService.ListOrganizations(r.Context(), page)
	if err != nil {
		h.logger.Error("ListOrganizations failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"organizations": orgs,
		"total_count":   pageOut.TotalRecords,
		"page":          pageOut.Page,
		"page_size":     pageOut.PageSize,
	})
}

// GetOrganization 根据ID查询组织
func (h *OrganizationsHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/organizations/"))
	if err != nil {
		writeError(w, err)
		return
	}

	org, err := h.orgService.GetOrganization(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetOrganization failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// CreateOrganization 创建组织
func (h *OrganizationsHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var create domain.OrganizationCreate
	if err := readBodyJSON(r, 1<<20, &create); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	org, err := h.orgService.CreateOrganization(r.Context(), &create)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("CreateOrganization failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// UpdateOrganization 更新组织
func (h *OrganizationsHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/organizations/"))
	if err != nil {
		writeError(w, err)
		return
	}

	var update domain.OrganizationUpdate
	if err := readBodyJSON(r, 1<<20, &update); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	org, err := h.orgService.UpdateOrganization(r.Context(), id, &update)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("UpdateOrganization failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}
