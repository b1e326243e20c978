package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MetaListHandler — список зарегистрированных сущностей с ключевыми атрибутами
func (s *Server) MetaListHandler(c *gin.Context) {
	items := make([]gin.H, 0, s.registry.Len())
	for _, key := range s.registry.Keys() {
		e, _ := s.registry.Get(key)
		items = append(items, gin.H{
			"key":           e.Key,
			"table":         e.Table,
			"alias":         e.Alias,
			"sharedPK":      e.SharedPrimaryKey,
			"deletePolicy":  e.DeletePolicy,
			"translated":    len(e.TranslationColumns) > 0,
			"auditUpdate":   e.UsesAuditUpdate(),
			"searchColumns": e.SearchColumns,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entities": items})
}

// MetaEntityHandler отдаёт полную конфигурацию одной сущности
func (s *Server) MetaEntityHandler(c *gin.Context) {
	e, ok := s.registry.Get(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown entity"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// MetaLintHandler прогоняет линт реестра и возвращает найденные проблемы
func (s *Server) MetaLintHandler(c *gin.Context) {
	issues := s.registry.Lint()
	c.JSON(http.StatusOK, gin.H{"ok": len(issues) == 0, "issues": issues})
}

func (s *Server) MetaLookupsHandler(c *gin.Context) {
	items := make([]gin.H, 0, s.lookups.Len())
	for _, name := range s.lookups.Names() {
		l, _ := s.lookups.Get(name)
		items = append(items, gin.H{
			"name":       l.Name,
			"table":      l.Table,
			"translated": l.Translated,
		})
	}
	c.JSON(http.StatusOK, gin.H{"lookups": items})
}
