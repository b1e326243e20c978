package reference

import "sort"

// LookupConfig описывает один плоский справочник, ключуемый по code.
type LookupConfig struct {
	Name  string `yaml:"name"`
	Table string `yaml:"table"`
	// Translated=false — справочник без join'а на переводы
	// (languages и currencies — жёсткое исключение)
	Translated bool `yaml:"translated"`
}

// Catalog — каталог справочников (имя справочника → конфигурация).
// Как и реестр сущностей: наполняется на старте, дальше только читается.
type Catalog struct {
	lookups map[string]LookupConfig
}

func NewCatalog() *Catalog {
	c := &Catalog{lookups: make(map[string]LookupConfig)}
	for _, l := range builtinLookups() {
		c.lookups[l.Name] = l
	}
	return c
}

func (c *Catalog) Get(name string) (LookupConfig, bool) {
	l, ok := c.lookups[name]
	return l, ok
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.lookups))
	for n := range c.lookups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int { return len(c.lookups) }

func builtinLookups() []LookupConfig {
	return []LookupConfig{
		{Name: "countries", Table: "countries", Translated: true},
		{Name: "salutations", Table: "salutations", Translated: true},
		{Name: "genders", Table: "genders", Translated: true},
		{Name: "industries", Table: "industries", Translated: true},
		{Name: "contact_types", Table: "contact_types", Translated: true},
		{Name: "address_types", Table: "address_types", Translated: true},
		{Name: "identification_types", Table: "identification_types", Translated: true},
		{Name: "relation_types", Table: "relation_types", Translated: true},
		{Name: "document_types", Table: "document_types", Translated: true},
		{Name: "payment_statuses", Table: "payment_statuses", Translated: true},
		{Name: "object_statuses", Table: "object_statuses", Translated: true},
		// без переводов — текст у них и так нейтральный
		{Name: "languages", Table: "languages", Translated: false},
		{Name: "currencies", Table: "currencies", Translated: false},
	}
}
