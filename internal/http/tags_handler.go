package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
	"trakr-data/internal/service"
)

// TagsHandler 标签管理 Handler
type TagsHandler struct {
	tagService service.TagService
	orgService service.OrganizationService
	logger     *zap.Logger
}

// NewTagsHandler 创建标签管理 Handler
func NewTagsHandler(tagService service.TagService, orgService service.OrganizationService, logger *zap.Logger) *TagsHandler {
	return &TagsHandler{
		tagService: tagService,
		orgService: orgService,
		logger:     logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/tags/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case r.URL.Path == "/tags/transfer" && r.Method == http.MethodPost:
		h.TransferTags(w, r)
	case r.URL.Path == "/tags" && r.Method == http.MethodGet:
		h.ListTags(w, r)
	case strings.HasPrefix(r.URL.Path, "/tags/") && r.Method == http.MethodGet:
		h.GetTag(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListTags 查询标签列表
func (h *TagsHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	filter := repository.TagsFilter{
		Organization: strings.TrimSpace(r.URL.Query().Get("organization")),
		Model:        strings.TrimSpace(r.URL.Query().Get("model")),
	}
	page := paginationFromQuery(r)

	tags, pageOut, err := h.tagService.ListTags(r.Context(), filter, page)
	if err != nil {
		h.logger.Error("ListTags failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tags":        tags,
		"total_count": pageOut.TotalRecords,
		"page":        pageOut.Page,
		"page_size":   pageOut.PageSize,
	})
}

// GetTag 根据ID查询标签
func (h *TagsHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/tags/"))
	if err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetTag failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tag)
}

// TransferTags 批量转移标签到目标组织
func (h *TagsHandler) TransferTags(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TagIDs            []int64 `json:"tag_ids"`
		NewOrganizationID int64   `json:"new_organization_id"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	result, err := h.tagService.TransferTags(r.Context(), payload.TagIDs, payload.NewOrganizationID)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("TransferTags failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Tag transfer completed",
		"transferred_count": result.AppliedCount,
		"failed_count":      result.FailedCount,
		"failed_tag_ids":    result.FailedIDs,
		"transfer_time":     result.Timestamp,
	})
}
