package schema

import (
	"fmt"
	"sort"
)

// Registry — read-only таблица конфигураций сущностей.
// Наполняется на старте процесса (builtin + YAML-оверлеи) и дальше не меняется.
type Registry struct {
	entities map[string]*EntityConfig
}

func NewRegistry() *Registry {
	r := &Registry{entities: make(map[string]*EntityConfig)}
	for _, e := range builtin() {
		e.normalize()
		r.entities[e.Key] = e
	}
	return r
}

func (r *Registry) Get(key string) (*EntityConfig, bool) {
	e, ok := r.entities[key]
	return e, ok
}

// Keys возвращает ключи в стабильном порядке
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entities))
	for k := range r.entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *Registry) Len() int { return len(r.entities) }

// add регистрирует сущность; builtin-ключи переопределять нельзя
func (r *Registry) add(e *EntityConfig) error {
	e.normalize()
	if e.Key == "" {
		return fmt.Errorf("entity config without key")
	}
	if _, exists := r.entities[e.Key]; exists {
		return fmt.Errorf("duplicate entity %q", e.Key)
	}
	r.entities[e.Key] = e
	return nil
}

// ==== Системные колонки ====

func pkCol() ColumnDefinition {
	return ColumnDefinition{Name: "id", Type: TypeInt, PrimaryKey: true}
}

func stampCols() []ColumnDefinition {
	return []ColumnDefinition{
		{Name: "created_at", Type: TypeDateTime},
		{Name: "created_by", Type: TypeInt, Nullable: true},
		{Name: "updated_at", Type: TypeDateTime, Nullable: true},
		{Name: "updated_by", Type: TypeInt, Nullable: true},
	}
}

func activeCol() ColumnDefinition {
	return ColumnDefinition{Name: "is_active", Type: TypeBool}
}

func cols(base []ColumnDefinition, extra ...ColumnDefinition) []ColumnDefinition {
	out := append([]ColumnDefinition{pkCol()}, base...)
	out = append(out, extra...)
	return append(out, stampCols()...)
}

// ==== Встроенный реестр ====
//
// Разделяемый первичный ключ (строка в objects 1:1): persons, companies,
// users, invoices, transactions, documents, files — удаление через objects.
// Детальные сущности (object_id): addresses, contacts, identifications,
// notes (soft delete), relations, audits (hard delete).
func builtin() []*EntityConfig {
	return []*EntityConfig{
		{
			Key: "persons", Table: "persons", Alias: "p",
			ObjectTypeCode:   "person",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "first_name", Type: TypeString, Searchable: true},
				{Name: "last_name", Type: TypeString, Searchable: true},
				{Name: "middle_name", Type: TypeString, Nullable: true},
				{Name: "date_of_birth", Type: TypeDate, Nullable: true},
				{Name: "gender_code", Type: TypeString, Nullable: true},
				{Name: "nationality_code", Type: TypeString, Nullable: true},
			}),
			SelectColumns: []string{
				"id", "first_name", "last_name", "middle_name",
				"date_of_birth", "gender_code", "nationality_code",
				"created_at", "updated_at",
			},
			SearchColumns:      []string{"first_name", "last_name"},
			DefaultSortColumn:  "last_name",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"gender_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "companies", Table: "companies", Alias: "c",
			ObjectTypeCode:   "company",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "name", Type: TypeString, Searchable: true},
				{Name: "registration_number", Type: TypeString, Nullable: true, Searchable: true},
				{Name: "industry_code", Type: TypeString, Nullable: true},
				{Name: "founded_on", Type: TypeDate, Nullable: true},
				{Name: "website", Type: TypeString, Nullable: true},
			}),
			SelectColumns: []string{
				"id", "name", "registration_number", "industry_code",
				"founded_on", "website", "created_at", "updated_at",
			},
			SearchColumns:      []string{"name", "registration_number"},
			DefaultSortColumn:  "name",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"industry_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "users", Table: "users", Alias: "u",
			ObjectTypeCode:   "user",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "username", Type: TypeString, Searchable: true},
				{Name: "email", Type: TypeString, Searchable: true},
				{Name: "person_id", Type: TypeInt, Nullable: true},
				{Name: "role_code", Type: TypeString},
				{Name: "password_hash", Type: TypeString},
				{Name: "last_login_at", Type: TypeDateTime, Nullable: true},
			}),
			// password_hash наружу не отдаём
			SelectColumns: []string{
				"id", "username", "email", "person_id", "role_code",
				"last_login_at", "created_at", "updated_at",
			},
			SearchColumns:      []string{"username", "email"},
			DefaultSortColumn:  "username",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"role_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "invoices", Table: "invoices", Alias: "inv",
			ObjectTypeCode:   "invoice",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "invoice_number", Type: TypeString, Searchable: true},
				{Name: "customer_object_id", Type: TypeInt},
				{Name: "issue_date", Type: TypeDate},
				{Name: "due_date", Type: TypeDate, Nullable: true},
				{Name: "currency_code", Type: TypeString},
				{Name: "total_amount", Type: TypeDecimal},
				{Name: "payment_status_code", Type: TypeString},
			}),
			SelectColumns: []string{
				"id", "invoice_number", "customer_object_id", "issue_date",
				"due_date", "currency_code", "total_amount",
				"payment_status_code", "created_at", "updated_at",
			},
			SearchColumns:      []string{"invoice_number"},
			DefaultSortColumn:  "issue_date",
			DefaultSortDir:     "DESC",
			TranslationColumns: []string{"payment_status_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "transactions", Table: "transactions", Alias: "tx",
			ObjectTypeCode:   "transaction",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "transaction_number", Type: TypeString, Searchable: true},
				{Name: "invoice_id", Type: TypeInt, Nullable: true},
				{Name: "amount", Type: TypeDecimal},
				{Name: "currency_code", Type: TypeString},
				{Name: "booked_on", Type: TypeDate},
				{Name: "direction_code", Type: TypeString},
			}),
			SelectColumns: []string{
				"id", "transaction_number", "invoice_id", "amount",
				"currency_code", "booked_on", "direction_code",
				"created_at", "updated_at",
			},
			SearchColumns:      []string{"transaction_number"},
			DefaultSortColumn:  "booked_on",
			DefaultSortDir:     "DESC",
			TranslationColumns: []string{"direction_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "documents", Table: "documents", Alias: "doc",
			ObjectTypeCode:   "document",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "title", Type: TypeString, Searchable: true},
				{Name: "document_type_code", Type: TypeString},
				{Name: "mime_type", Type: TypeString, Nullable: true},
				{Name: "issued_on", Type: TypeDate, Nullable: true},
				{Name: "valid_until", Type: TypeDate, Nullable: true},
			}),
			SelectColumns: []string{
				"id", "title", "document_type_code", "mime_type",
				"issued_on", "valid_until", "created_at", "updated_at",
			},
			SearchColumns:      []string{"title"},
			DefaultSortColumn:  "title",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"document_type_code"},
			DeletePolicy:       DeleteObject,
		},
		{
			Key: "files", Table: "files", Alias: "f",
			ObjectTypeCode:   "file",
			SharedPrimaryKey: true,
			Columns: cols([]ColumnDefinition{
				{Name: "file_name", Type: TypeString, Searchable: true},
				{Name: "mime_type", Type: TypeString},
				{Name: "size_bytes", Type: TypeInt},
				{Name: "storage_path", Type: TypeString},
				{Name: "checksum", Type: TypeString, Nullable: true},
			}),
			SelectColumns: []string{
				"id", "file_name", "mime_type", "size_bytes",
				"storage_path", "checksum", "created_at", "updated_at",
			},
			SearchColumns:     []string{"file_name"},
			DefaultSortColumn: "file_name",
			DefaultSortDir:    "ASC",
			DeletePolicy:      DeleteObject,
		},

		// ---- детальные сущности ----
		{
			Key: "addresses", Table: "addresses", Alias: "a",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "address_type_code", Type: TypeString},
				{Name: "street", Type: TypeString, Searchable: true},
				{Name: "house_number", Type: TypeString, Nullable: true},
				{Name: "postal_code", Type: TypeString, Nullable: true},
				{Name: "city", Type: TypeString, Searchable: true},
				{Name: "country_code", Type: TypeString},
				{Name: "is_primary", Type: TypeBool},
			}, activeCol()),
			SelectColumns: []string{
				"id", "object_id", "address_type_code", "street",
				"house_number", "postal_code", "city", "country_code",
				"is_primary", "is_active", "created_at", "updated_at",
			},
			SearchColumns:      []string{"street", "city"},
			DefaultSortColumn:  "city",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"address_type_code", "country_code"},
			DeletePolicy:       DeleteSoft,
		},
		{
			Key: "contacts", Table: "contacts", Alias: "ct",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "contact_type_code", Type: TypeString},
				{Name: "contact_value", Type: TypeString, Searchable: true},
				{Name: "is_primary", Type: TypeBool},
			}, activeCol()),
			SelectColumns: []string{
				"id", "object_id", "contact_type_code", "contact_value",
				"is_primary", "is_active", "created_at", "updated_at",
			},
			SearchColumns:      []string{"contact_value"},
			DefaultSortColumn:  "contact_value",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"contact_type_code"},
			DeletePolicy:       DeleteSoft,
		},
		{
			Key: "identifications", Table: "identifications", Alias: "idn",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "identification_type_code", Type: TypeString},
				{Name: "id_number", Type: TypeString, Searchable: true},
				{Name: "issued_by", Type: TypeString, Nullable: true},
				{Name: "issued_on", Type: TypeDate, Nullable: true},
				{Name: "valid_until", Type: TypeDate, Nullable: true},
			}, activeCol()),
			SelectColumns: []string{
				"id", "object_id", "identification_type_code", "id_number",
				"issued_by", "issued_on", "valid_until", "is_active",
				"created_at", "updated_at",
			},
			SearchColumns:      []string{"id_number"},
			DefaultSortColumn:  "id_number",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"identification_type_code"},
			DeletePolicy:       DeleteSoft,
		},
		{
			Key: "notes", Table: "notes", Alias: "n",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "subject", Type: TypeString, Searchable: true, TrackChanges: true},
				{Name: "note_text", Type: TypeText, TrackChanges: true},
				{Name: "is_pinned", Type: TypeBool},
			}, activeCol()),
			SelectColumns: []string{
				"id", "object_id", "subject", "note_text", "is_pinned",
				"is_active", "created_at", "created_by", "updated_at",
			},
			SearchColumns:     []string{"subject"},
			DefaultSortColumn: "created_at",
			DefaultSortDir:    "DESC",
			DeletePolicy:      DeleteSoft,
			PinnedSort:        true,
		},
		{
			Key: "relations", Table: "relations", Alias: "rel",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "related_object_id", Type: TypeInt},
				{Name: "relation_type_code", Type: TypeString},
				{Name: "valid_from", Type: TypeDate, Nullable: true},
				{Name: "valid_to", Type: TypeDate, Nullable: true},
			}),
			SelectColumns: []string{
				"id", "object_id", "related_object_id", "relation_type_code",
				"valid_from", "valid_to", "created_at", "updated_at",
			},
			DefaultSortColumn:  "id",
			DefaultSortDir:     "ASC",
			TranslationColumns: []string{"relation_type_code"},
			DeletePolicy:       DeleteHard,
		},
		{
			Key: "audits", Table: "audits", Alias: "au",
			Columns: cols([]ColumnDefinition{
				{Name: "object_id", Type: TypeInt},
				{Name: "table_name", Type: TypeString},
				{Name: "column_name", Type: TypeString},
				{Name: "old_value", Type: TypeText, Nullable: true},
				{Name: "new_value", Type: TypeText, Nullable: true},
				{Name: "changed_by", Type: TypeInt, Nullable: true},
				{Name: "changed_at", Type: TypeDateTime},
			}),
			SelectColumns: []string{
				"id", "object_id", "table_name", "column_name",
				"old_value", "new_value", "changed_by", "changed_at",
			},
			DefaultSortColumn: "changed_at",
			DefaultSortDir:    "DESC",
			DeletePolicy:      DeleteHard,
		},
	}
}
