package schema

import "strings"

// ColumnType — фиксированный набор типов колонок
type ColumnType string

const (
	TypeInt      ColumnType = "int"
	TypeDecimal  ColumnType = "decimal"
	TypeString   ColumnType = "string"
	TypeText     ColumnType = "text"
	TypeDate     ColumnType = "date"
	TypeDateTime ColumnType = "datetime"
	TypeBool     ColumnType = "bool"
	TypeJSON     ColumnType = "json"
)

func (t ColumnType) Valid() bool {
	switch t {
	case TypeInt, TypeDecimal, TypeString, TypeText, TypeDate, TypeDateTime, TypeBool, TypeJSON:
		return true
	}
	return false
}

// DeletePolicy — одна политика удаления на сущность.
// Три взаимоисключающих варианта — поэтому enum, а не три булевых флага.
type DeletePolicy string

const (
	DeleteHard   DeletePolicy = "hard"   // DELETE FROM <table>
	DeleteSoft   DeletePolicy = "soft"   // UPDATE ... SET is_active = 0
	DeleteObject DeletePolicy = "object" // DELETE FROM objects (каскад снесёт строку сущности)
)

func (p DeletePolicy) Valid() bool {
	return p == DeleteHard || p == DeleteSoft || p == DeleteObject
}

// ColumnDefinition описывает колонку таблицы сущности
type ColumnDefinition struct {
	Name         string     `yaml:"name"`
	Type         ColumnType `yaml:"type"`
	Nullable     bool       `yaml:"nullable,omitempty"`
	PrimaryKey   bool       `yaml:"primary_key,omitempty"`
	Searchable   bool       `yaml:"searchable,omitempty"`
	TrackChanges bool       `yaml:"track_changes,omitempty"` // участвует в old/new-протоколе обновления
}

type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
)

func (k JoinKind) Valid() bool {
	return k == JoinInner || k == JoinLeft || k == JoinRight
}

// JoinDefinition — статический join из конфигурации сущности.
// On подставляется в SQL как есть.
type JoinDefinition struct {
	Table   string   `yaml:"table"`
	Alias   string   `yaml:"alias"`
	Kind    JoinKind `yaml:"kind"`
	On      string   `yaml:"on"`
	Columns []string `yaml:"columns,omitempty"`
}

// EntityConfig — полное описание одного типа сущности.
// Заполняется один раз на старте, дальше только читается.
type EntityConfig struct {
	Key            string `yaml:"key"`
	Table          string `yaml:"table"`
	Alias          string `yaml:"alias"`
	ObjectTypeCode string `yaml:"object_type_code,omitempty"`

	// true для сущностей, деливших первичный ключ с таблицей objects (1:1)
	SharedPrimaryKey bool `yaml:"shared_primary_key,omitempty"`

	Columns []ColumnDefinition `yaml:"columns"`

	SelectColumns     []string `yaml:"select_columns"`
	SearchColumns     []string `yaml:"search_columns,omitempty"`
	DefaultSortColumn string   `yaml:"default_sort_column"`
	DefaultSortDir    string   `yaml:"default_sort_dir"`

	Joins []JoinDefinition `yaml:"joins,omitempty"`

	// колонки, чьё значение — ключ таблицы переводов, а не готовый текст
	TranslationColumns []string `yaml:"translation_columns,omitempty"`

	DeletePolicy DeletePolicy `yaml:"delete_policy"`

	// старое значение из запроса сверяется с текущим перед записью;
	// по умолчанию выключено — _old остаются просто аудит-метаданными
	AuditVerifyOld bool `yaml:"audit_verify_old,omitempty"`

	// закреплённые записи всегда раньше незакреплённых (заметки)
	PinnedSort bool `yaml:"pinned_sort,omitempty"`
}

func (e *EntityConfig) Column(name string) (ColumnDefinition, bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

func (e *EntityConfig) HasColumn(name string) bool {
	_, ok := e.Column(name)
	return ok
}

// PrimaryKey возвращает имя колонки первичного ключа ("id", если не помечена явно)
func (e *EntityConfig) PrimaryKey() string {
	for _, c := range e.Columns {
		if c.PrimaryKey {
			return c.Name
		}
	}
	return "id"
}

// AuditColumns — колонки, участвующие в old/new-протоколе
func (e *EntityConfig) AuditColumns() []ColumnDefinition {
	var out []ColumnDefinition
	for _, c := range e.Columns {
		if c.TrackChanges {
			out = append(out, c)
		}
	}
	return out
}

// UsesAuditUpdate: сущность обновляется old/new-протоколом, а не COALESCE
func (e *EntityConfig) UsesAuditUpdate() bool {
	return len(e.AuditColumns()) > 0
}

// IsDetail: дочерняя/детальная сущность, привязанная к объекту через object_id
func (e *EntityConfig) IsDetail() bool {
	return !e.SharedPrimaryKey && e.HasColumn("object_id")
}

func (e *EntityConfig) IsTranslated(col string) bool {
	for _, tc := range e.TranslationColumns {
		if tc == col {
			return true
		}
	}
	return false
}

// normalize приводит ключ и направление сортировки к каноническому виду
func (e *EntityConfig) normalize() {
	e.Key = strings.ToLower(strings.TrimSpace(e.Key))
	e.DefaultSortDir = strings.ToUpper(strings.TrimSpace(e.DefaultSortDir))
	if e.DefaultSortDir != "DESC" {
		e.DefaultSortDir = "ASC"
	}
}
