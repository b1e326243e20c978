// api/router.go
package api

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/db"
	"kontora/internal/reference"
	"kontora/internal/schema"
	"kontora/internal/sqlgen"
)

// Server связывает диспетчер с HTTP-маршрутами. Executor может быть nil —
// тогда data-маршруты отвечают 503, а /api/query работает как dry-run.
type Server struct {
	dispatcher *sqlgen.Dispatcher
	exec       *db.Executor
	registry   *schema.Registry
	lookups    *reference.Catalog
}

func NewServer(d *sqlgen.Dispatcher, exec *db.Executor, reg *schema.Registry, lookups *reference.Catalog) *Server {
	return &Server{dispatcher: d, exec: exec, registry: reg, lookups: lookups}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	apiGroup := r.Group("/api")
	{
		// dry-run: собрать SQL, ничего не исполнять
		apiGroup.POST("/query", s.QueryHandler)

		// метаданные — СНАЧАЛА, чтобы не конфликтовать с data-путями
		apiGroup.GET("/meta", s.MetaListHandler)
		apiGroup.GET("/meta/lint", s.MetaLintHandler)
		apiGroup.GET("/meta/lookups", s.MetaLookupsHandler)
		apiGroup.GET("/meta/entities/:entity", s.MetaEntityHandler)

		// обычные CRUD поверх диспетчера
		apiGroup.GET("/data/:entity", s.ListHandler)
		apiGroup.POST("/data/:entity", s.CreateHandler)
		apiGroup.GET("/data/:entity/:id", s.GetOneHandler)
		apiGroup.PUT("/data/:entity/:id", s.UpdateHandler)
		apiGroup.DELETE("/data/:entity/:id", s.DeleteHandler)

		// справочники: в path вместо id — code
		apiGroup.GET("/lookup/:name", s.LookupListHandler)
		apiGroup.POST("/lookup/:name", s.LookupCreateHandler)
		apiGroup.GET("/lookup/:name/:code", s.LookupGetHandler)
		apiGroup.PUT("/lookup/:name/:code", s.LookupUpdateHandler)
		apiGroup.DELETE("/lookup/:name/:code", s.LookupDeleteHandler)

		// переводы: составной ключ (code, language_id) в query/body
		apiGroup.GET("/translations", s.TranslationHandler("GET"))
		apiGroup.POST("/translations", s.TranslationHandler("POST"))
		apiGroup.PUT("/translations", s.TranslationHandler("PUT"))
		apiGroup.DELETE("/translations", s.TranslationHandler("DELETE"))
	}

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}
