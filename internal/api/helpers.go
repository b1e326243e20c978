package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kontora/internal/sqlgen"
)

// queryToMap — query-строка в плоский map (берём первое значение ключа)
func queryToMap(c *gin.Context) map[string]any {
	out := map[string]any{}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	return out
}

// bindBody читает JSON-тело; пустое тело — не ошибка
func bindBody(c *gin.Context) (map[string]any, bool) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return map[string]any{}, true
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return nil, false
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, true
}

// statusForError: ошибки конфигурации → 404, входные ошибки → 400
func statusForError(err error) int {
	switch {
	case errors.Is(err, sqlgen.ErrUnknownEntity), errors.Is(err, sqlgen.ErrUnknownLookup):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) dispatch(c *gin.Context, req sqlgen.Request) (*sqlgen.Result, bool) {
	res, err := s.dispatcher.Dispatch(req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return res, true
}

// execute гоняет скрипт через исполнитель; без настроенной базы — 503
func (s *Server) execute(c *gin.Context, res *sqlgen.Result) ([]map[string]any, bool) {
	if s.exec == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "no database configured",
			"hint":  "use POST /api/query for dry-run SQL",
		})
		return nil, false
	}
	rows, err := s.exec.RunScript(c.Request.Context(), res.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "execution failed", "details": err.Error()})
		return nil, false
	}
	return rows, true
}
