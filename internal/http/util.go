package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError 业务错误到HTTP状态码的映射
// 响应体统一为 {"detail": "..."}。
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	}
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "internal server error"
	}
	writeJSON(w, status, map[string]string{"detail": detail})
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("invalid id %q", s)
	}
	return id, nil
}

// paginationFromQuery 从查询参数解析分页，越界值由 Normalize 收敛
func paginationFromQuery(r *http.Request) models.Pagination {
	page := models.Pagination{
		Page:     parseInt(r.URL.Query().Get("page"), models.DefaultPage),
		PageSize: parseInt(r.URL.Query().Get("page_size"), models.DefaultPageSize),
	}
	page.Normalize()
	return page
}

// parseTimeParam RFC3339 时间参数，空值返回 nil
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.Validationf("invalid %s, expected RFC3339 timestamp", name)
	}
	return &t, nil
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
