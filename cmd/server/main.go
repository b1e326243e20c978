package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/gin-gonic/gin"

	"kontora/internal/api"
	"kontora/internal/config"
	"kontora/internal/db"
	"kontora/internal/reference"
	"kontora/internal/schema"
	"kontora/internal/sqlgen"
)

func main() {
	cfg := config.Load()

	// 1. Реестр сущностей: встроенные конфиги + YAML-оверлеи
	registry := schema.NewRegistry()
	if err := registry.LoadDir(cfg.SchemasDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Ошибка загрузки схем: %v", err)
	}
	fmt.Printf("Загружено сущностей: %d\n", registry.Len())

	// 2. Каталог справочников
	lookups := reference.NewCatalog()
	if err := lookups.LoadCatalogDir(cfg.LookupsDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Ошибка загрузки справочников: %v", err)
	}
	fmt.Printf("Загружено справочников: %d\n", lookups.Len())

	// 3. Линт конфигураций: с противоречивым реестром не стартуем
	if issues := registry.Lint(); len(issues) > 0 {
		for _, i := range issues {
			log.Printf("линт: %s/%s [%s] %s", i.Entity, i.Field, i.Code, i.Message)
		}
		log.Fatalf("Реестр сущностей не прошёл линт: %d проблем(ы)", len(issues))
	}

	// 4. База опциональна: без неё сервис отдаёт только dry-run SQL
	var exec *db.Executor
	if cfg.DBURL != "" {
		conn, err := db.Open(cfg.DBURL)
		if err != nil {
			log.Fatalf("Ошибка подключения к базе: %v", err)
		}
		defer conn.Close()
		exec = db.NewExecutor(conn)
		fmt.Println("База подключена")
	} else {
		fmt.Println("База не настроена, работаем в режиме dry-run")
	}

	// 5. Запускаем REST API сервер
	gin.SetMode(cfg.GinMode)
	dispatcher := sqlgen.NewDispatcher(registry, lookups)
	server := api.NewServer(dispatcher, exec, registry, lookups)
	fmt.Printf("Стартуем сервер Kontora на %s...\n", cfg.Addr())
	if err := server.Run(cfg.Addr()); err != nil {
		log.Fatalf("Сервер остановился с ошибкой: %v", err)
	}
}
