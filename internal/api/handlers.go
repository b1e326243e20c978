package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"kontora/internal/sqlgen"
)

// QueryHandler — dry-run: принимает запрос в форме диспетчера и возвращает
// собранный SQL без исполнения. База не нужна вовсе.
func (s *Server) QueryHandler(c *gin.Context) {
	var req sqlgen.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// ==== CRUD над сущностями ====

func (s *Server) ListHandler(c *gin.Context) {
	req := sqlgen.Request{
		EntityType: c.Param("entity"),
		Method:     "GET",
		Query:      queryToMap(c),
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	// общее количество — отдельным счётным запросом, в заголовок
	if res.CountQuery != "" {
		if count, err := s.exec.RunScript(c.Request.Context(), res.CountQuery); err == nil && len(count) > 0 {
			c.Header("X-Total-Count", fmt.Sprintf("%v", count[0]["total"]))
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "params": res.Params})
}

func (s *Server) GetOneHandler(c *gin.Context) {
	req := sqlgen.Request{
		EntityType: c.Param("entity"),
		Method:     "GET",
		Params:     sqlgen.RequestParams{ID: c.Param("id")},
		Query:      queryToMap(c),
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, rows[0])
}

func (s *Server) CreateHandler(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	req := sqlgen.Request{
		EntityType: c.Param("entity"),
		Method:     "POST",
		Query:      queryToMap(c),
		Body:       body,
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
		return
	}
	c.JSON(http.StatusCreated, rows[0])
}

func (s *Server) UpdateHandler(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	req := sqlgen.Request{
		EntityType: c.Param("entity"),
		Method:     "PUT",
		Params:     sqlgen.RequestParams{ID: c.Param("id")},
		Query:      queryToMap(c),
		Body:       body,
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, rows[0])
}

func (s *Server) DeleteHandler(c *gin.Context) {
	req := sqlgen.Request{
		EntityType: c.Param("entity"),
		Method:     "DELETE",
		Params:     sqlgen.RequestParams{ID: c.Param("id")},
		Query:      queryToMap(c),
	}
	res, ok := s.dispatch(c, req)
	if !ok {
		return
	}
	if _, ok := s.execute(c, res); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "policy": res.Params["delete_policy"]})
}

// ==== Справочники: code в path вместо числового id ====

func (s *Server) lookupRequest(c *gin.Context, method string, withCode bool, body map[string]any) sqlgen.Request {
	req := sqlgen.Request{
		EntityType: sqlgen.LookupPrefix + c.Param("name"),
		Method:     method,
		Query:      queryToMap(c),
		Body:       body,
	}
	if withCode {
		req.Params.ID = c.Param("code")
	}
	return req
}

func (s *Server) LookupListHandler(c *gin.Context) {
	res, ok := s.dispatch(c, s.lookupRequest(c, "GET", false, nil))
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "params": res.Params})
}

func (s *Server) LookupGetHandler(c *gin.Context) {
	res, ok := s.dispatch(c, s.lookupRequest(c, "GET", true, nil))
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, rows[0])
}

func (s *Server) LookupCreateHandler(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	res, ok := s.dispatch(c, s.lookupRequest(c, "POST", false, body))
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
		return
	}
	c.JSON(http.StatusCreated, rows[0])
}

func (s *Server) LookupUpdateHandler(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	res, ok := s.dispatch(c, s.lookupRequest(c, "PUT", true, body))
	if !ok {
		return
	}
	rows, ok := s.execute(c, res)
	if !ok {
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, rows[0])
}

func (s *Server) LookupDeleteHandler(c *gin.Context) {
	res, ok := s.dispatch(c, s.lookupRequest(c, "DELETE", true, nil))
	if !ok {
		return
	}
	if _, ok := s.execute(c, res); !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ==== Переводы ====

// TranslationHandler обслуживает все методы одной ручки: составной ключ
// (code, language_id) приходит в query или в теле, не в path.
func (s *Server) TranslationHandler(method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if method == "POST" || method == "PUT" || method == "DELETE" {
			var ok bool
			if body, ok = bindBody(c); !ok {
				return
			}
		}
		req := sqlgen.Request{
			EntityType: sqlgen.TranslationToken,
			Method:     method,
			Query:      queryToMap(c),
			Body:       body,
		}
		res, ok := s.dispatch(c, req)
		if !ok {
			return
		}
		rows, ok := s.execute(c, res)
		if !ok {
			return
		}
		switch method {
		case "GET":
			c.JSON(http.StatusOK, gin.H{"items": rows, "params": res.Params})
		case "POST":
			if len(rows) > 0 {
				c.JSON(http.StatusCreated, rows[0])
				return
			}
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		case "DELETE":
			c.JSON(http.StatusOK, gin.H{"ok": true})
		default:
			if len(rows) > 0 {
				c.JSON(http.StatusOK, rows[0])
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true})
		}
	}
}
