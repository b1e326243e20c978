package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalogDir дочитывает справочники из папки reference/lookups/
// (по одному на YAML-файл). Встроенные имена переопределять нельзя.
func (c *Catalog) LoadCatalogDir(dir string) error {
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
		var l LookupConfig
		if err := yaml.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		// имя справочника — из файла, если не задано явно
		if l.Name == "" {
			l.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if l.Table == "" {
			l.Table = l.Name
		}
		if _, exists := c.lookups[l.Name]; exists {
			return fmt.Errorf("%s: duplicate lookup %q", path, l.Name)
		}
		c.lookups[l.Name] = l
	}
	return nil
}
