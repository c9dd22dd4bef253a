package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
	"trakr-data/internal/service"
)

// AccountsHandler 账号管理 Handler
type AccountsHandler struct {
	accountService service.AccountService
	orgService     service.OrganizationService
	logger         *zap.Logger
}

// NewAccountsHandler 创建账号管理 Handler
func NewAccountsHandler(accountService service.AccountService, orgService service.OrganizationService, logger *zap.Logger) *AccountsHandler {
	return &AccountsHandler{
		accountService: accountService,
		orgService:     orgService,
		logger:         logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *AccountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/accounts/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case r.URL.Path == "/accounts" && r.Method == http.MethodGet:
		h.ListAccounts(w, r)
	case r.URL.Path == "/accounts" && r.Method == http.MethodPost:
		h.CreateAccount(w, r)
	case strings.HasPrefix(r.URL.Path, "/accounts/") && r.Method == http.MethodGet:
		h.GetAccount(w, r)
	case strings.HasPrefix(r.URL.Path, "/accounts/") && r.Method == http.MethodPut:
		h.UpdateAccount(w, r)
	case strings.HasPrefix(r.URL.Path, "/accounts/") && r.Method == http.MethodDelete:
		h.DeleteAccount(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListAccounts 查询账号列表
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	organization := strings.TrimSpace(r.URL.Query().Get("organization"))
	if organization == "" {
		writeError(w, domain.Validationf("organization is required"))
		return
	}

	filter := repository.AccountsFilter{
		Organization: organization,
		AccountName:  strings.TrimSpace(r.URL.Query().Get("account_name")),
	}
	page := paginationFromQuery(r)

	accounts, pageOut, err := h.accountService.ListAccounts(r.Context(), filter, page)
	if err != nil {
		h.logger.Error("ListAccounts failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accounts":    accounts,
		"total_count": pageOut.TotalRecords,
		"page":        pageOut.Page,
		"page_size":   pageOut.PageSize,
	})
}

// GetAccount 根据ID查询账号
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/accounts/"))
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetAccount failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// CreateAccount 创建账号
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var create domain.AccountCreate
	if err := readBodyJSON(r, 1<<20, &create); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), &create)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("CreateAccount failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// UpdateAccount 更新账号
func (h *AccountsHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/accounts/"))
	if err != nil {
		writeError(w, err)
		return
	}

	var update domain.AccountUpdate
	if err := readBodyJSON(r, 1<<20, &update); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), id, &update)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("UpdateAccount failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount 删除账号
func (h *AccountsHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/accounts/"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), id); err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("DeleteAccount failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeOrganizationRefs 各实体共用的组织下拉列表
func writeOrganizationRefs(w http.ResponseWriter, r *http.Request, orgService service.OrganizationService, logger *zap.Logger) {
	refs, err := orgService.ListOrganizationRefs(r.Context())
	if err != nil {
		logger.Error("ListOrganizationRefs failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}
