package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
	"trakr-data/internal/service"
)

// AlarmsHandler 报警管理 Handler
type AlarmsHandler struct {
	alarmService service.AlarmService
	orgService   service.OrganizationService
	logger       *zap.Logger
}

// NewAlarmsHandler 创建报警管理 Handler
func NewAlarmsHandler(alarmService service.AlarmService, orgService service.OrganizationService, logger *zap.Logger) *AlarmsHandler {
	return &AlarmsHandler{
		alarmService: alarmService,
		orgService:   orgService,
		logger:       logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *AlarmsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 路由分发
	switch {
	case r.URL.Path == "/alarms/organizations" && r.Method == http.MethodGet:
		writeOrganizationRefs(w, r, h.orgService, h.logger)
	case r.URL.Path == "/alarms/handle" && r.Method == http.MethodPost:
		h.HandleAlarms(w, r)
	case r.URL.Path == "/alarms" && r.Method == http.MethodGet:
		h.ListAlarms(w, r)
	case strings.HasPrefix(r.URL.Path, "/alarms/") && r.Method == http.MethodGet:
		h.GetAlarm(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListAlarms 查询报警列表
func (h *AlarmsHandler) ListAlarms(w http.ResponseWriter, r *http.Request) {
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

	filter := repository.AlarmsFilter{
		Organization: strings.TrimSpace(r.URL.Query().Get("organization")),
		WarnType:     strings.TrimSpace(r.URL.Query().Get("warn_type")),
		StartTime:    startTime,
		EndTime:      endTime,
	}
	page := paginationFromQuery(r)

	alarms, pageOut, err := h.alarmService.ListAlarms(r.Context(), filter, page)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("ListAlarms failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alarms":     alarms,
		"pagination": pageOut,
	})
}

// GetAlarm 根据ID查询报警
func (h *AlarmsHandler) GetAlarm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(strings.TrimPrefix(r.URL.Path, "/alarms/"))
	if err != nil {
		writeError(w, err)
		return
	}

	alarm, err := h.alarmService.GetAlarm(r.Context(), id)
	if err != nil {
		if !domain.IsNotFound(err) {
			h.logger.Error("GetAlarm failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alarm)
}

// HandleAlarms 批量处理报警
func (h *AlarmsHandler) HandleAlarms(w http.ResponseWriter, r *http.Request) {
	var req domain.AlarmHandleRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, domain.Validationf("invalid body"))
		return
	}

	result, err := h.alarmService.HandleAlarms(r.Context(), &req, actorFrom(r))
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logger.Error("HandleAlarms failed", zap.Error(err))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Alarm handling completed",
		"handled_count":    result.AppliedCount,
		"failed_count":     result.FailedCount,
		"failed_alarm_ids": result.FailedIDs,
		"handle_time":      result.Timestamp,
	})
}
