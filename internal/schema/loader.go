package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir дочитывает конфигурации сущностей из папки с YAML-файлами
// (по одной сущности на файл). Вызывается только на старте процесса,
// до того как реестр уходит в диспетчер.
func (r *Registry) LoadDir(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var e EntityConfig
		if err := yaml.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		// ключ — из конфига или из имени файла
		if e.Key == "" {
			e.Key = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if err := r.add(&e); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
