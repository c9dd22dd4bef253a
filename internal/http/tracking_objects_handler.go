package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/service"
)

// TrackingObjectsHandler 被跟踪对象管理 Handler
type TrackingObjectsHandler struct {
	objectService service.TrackingObjectService
	orgService    service.OrganizationService
	logger        *zap.Logger
}

// NewTrackingObjectsHandler 创建被跟踪对象管理 Handler
func NewTrackingObjectsHandler(objectService service.TrackingObjectService, orgService service.OrganizationService, logger *zap.Logger) *TrackingObjectsHandler {
	return &TrackingObjectsHandler{
		objectService: objectService,
		orgService:    orgService,
		logger:        logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *TrackingObjectsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/tracking-objects/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case r.URL.Path == "/tracking-objects" && r.Method == http.MethodGet:
		h.ListTrackingObjects(w, r)
	case r.URL.Path == "/tracking-objects" && r.Method == http.MethodPost:
		h.CreateTrackingObject(w, r)
	case strings.HasPrefix(r.URL.Path, "/tracking-objects/") && r.Method == http.MethodGet:
		h.GetTrackingObject(w, r)
	case strings.HasPrefix(r.URL.Path, "/tracking-objects/") && r.Method == http.MethodPut:
		h.UpdateTrackingObject(w, r)
	case strings.HasPrefix(r.URL.Path, "/tracking-objects/") && r.Method == http.MethodDelete:
		h.DeleteTrackingObject(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListTrackingObjects 查询组织下的被跟踪对象（不分页）
func (h *TrackingObjectsHandler) ListTrackingObjects(w http.ResponseWriter, r *http.Request) {
	organization := strings.TrimSpace(r.URL.Query().Get("organization"))

	objects, err := h.objectService.ListTrackingObjects(r.Context(), organization)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("ListTrackingObjects failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, objects)
}

// GetTrackingObject 根据ID查询被跟踪对象
func (h *TrackingObjectsHandler) GetTrackingObject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/tracking-objects/"))
	if err != nil {
		writeError(w, err)
		return
	}

	obj, err := h.objectService.GetTrackingObject(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetTrackingObject failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, obj)
}

// CreateTrackingObject 创建被跟踪对象
func (h *TrackingObjectsHandler) CreateTrackingObject(w http.ResponseWriter, r *http.Request) {
	var create domain.TrackingObjectCreate
	if err := readBodyJSON(r, 1<<20, &create); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	obj, err := h.objectService.CreateTrackingObject(r.Context(), &create)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("CreateTrackingObject failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, obj)
}

// UpdateTrackingObject 更新被跟踪对象
func (h *TrackingObjectsHandler) UpdateTrackingObject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/tracking-objects/"))
	if err != nil {
		writeError(w, err)
		return
	}

	var update domain.TrackingObjectUpdate
	if err := readBodyJSON(r, 1<<20, &update); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	obj, err := h.objectService.UpdateTrackingObject(r.Context(), id, &update)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("UpdateTrackingObject failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, obj)
}

// DeleteTrackingObject 删除被跟踪对象
func (h *TrackingObjectsHandler) DeleteTrackingObject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/tracking-objects/"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.objectService.DeleteTrackingObject(r.Context(), id); err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("DeleteTrackingObject failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
