package sqlgen

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"kontora/internal/reference"
	"kontora/internal/schema"

	"github.com/oklog/ulid/v2"
)

// ==== Диспетчер: токен сущности + метод → нужный построитель ====

// LookupPrefix — токен вида "lookup:countries"
const (
	LookupPrefix     = "lookup:"
	TranslationToken = "translation"
)

type RequestParams struct {
	ID string `json:"id,omitempty"`
}

// Request — форма запроса от внешнего слоя:
// method + токен типа + path/query/body параметры (identity вызывающего
// уже развёрнута снаружи и приходит обычным user_id).
type Request struct {
	EntityType string         `json:"entityType"`
	Method     string         `json:"method"`
	Params     RequestParams  `json:"params"`
	Query      map[string]any `json:"query"`
	Body       map[string]any `json:"body"`
}

// Debug — конверт для интеграционных тестов: какие join'ы переводов
// применились. Не часть логического контракта.
type Debug struct {
	QueryID          string   `json:"queryId"`
	TranslationJoins []string `json:"translationJoins,omitempty"`
}

type Result struct {
	Query      string         `json:"query"`
	CountQuery string         `json:"countQuery,omitempty"`
	Params     map[string]any `json:"params"`
	Debug      *Debug         `json:"debug,omitempty"`
}

// Dispatcher держит неизменяемые реестр и каталог справочников.
// Сам состояния между вызовами не копит (кроме энтропии для query id).
type Dispatcher struct {
	registry *schema.Registry
	lookups  *reference.Catalog

	mu      sync.Mutex
	entropy io.Reader
}

// NewDispatcher: реестр и каталог инжектятся, а не берутся из глобалов —
// тесты подставляют фикстурные конфиги.
func NewDispatcher(reg *schema.Registry, lookups *reference.Catalog) *Dispatcher {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Dispatcher{
		registry: reg,
		lookups:  lookups,
		entropy:  ulid.Monotonic(src, 0),
	}
}

func (d *Dispatcher) newQueryID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), d.entropy).String()
}

// Dispatch резолвит токен и метод и отдаёт готовый Result.
// Ошибки конфигурации (неизвестный токен) и входные ошибки поднимаются
// до построения стейтмента.
func (d *Dispatcher) Dispatch(req Request) (*Result, error) {
	token := strings.ToLower(strings.TrimSpace(req.EntityType))
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	q := req.Query
	if q == nil {
		q = map[string]any{}
	}
	body := req.Body
	if body == nil {
		body = map[string]any{}
	}

	var (
		st  *Statement
		err error
	)
	switch {
	case token == TranslationToken:
		st, err = d.dispatchTranslation(method, req.Params, q, body)
	case strings.HasPrefix(token, LookupPrefix):
		st, err = d.dispatchLookup(strings.TrimPrefix(token, LookupPrefix), method, req.Params, q, body)
	default:
		st, err = d.dispatchEntity(token, method, req.Params, q, body)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Query:      st.Query,
		CountQuery: st.CountQuery,
		Params:     st.Params,
		Debug: &Debug{
			QueryID:          d.newQueryID(),
			TranslationJoins: st.TranslationJoins,
		},
	}, nil
}

func (d *Dispatcher) dispatchEntity(token, method string, p RequestParams, q, body map[string]any) (*Statement, error) {
	e, ok := d.registry.Get(token)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, token)
	}

	switch method {
	case "GET":
		if p.ID != "" {
			return BuildSelectByID(e, p.ID, q), nil
		}
		return BuildSelect(e, q), nil
	case "POST":
		return BuildInsert(e, body, q), nil
	case "PUT":
		if p.ID == "" {
			return nil, fmt.Errorf("%w: PUT %s", ErrMissingID, token)
		}
		return BuildUpdate(e, p.ID, body, q)
	case "DELETE":
		if p.ID == "" {
			return nil, fmt.Errorf("%w: DELETE %s", ErrMissingID, token)
		}
		return BuildDelete(e, p.ID), nil
	default:
		return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedMethod, method, token)
	}
}

func (d *Dispatcher) dispatchLookup(name, method string, p RequestParams, q, body map[string]any) (*Statement, error) {
	l, ok := d.lookups.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLookup, name)
	}

	// для справочников id в path — это code
	switch method {
	case "GET":
		if p.ID != "" {
			return BuildLookupGet(l, p.ID, q), nil
		}
		return BuildLookupSelect(l, q), nil
	case "POST":
		return BuildLookupInsert(l, body, q)
	case "PUT":
		return BuildLookupUpdate(l, p.ID, body, q)
	case "DELETE":
		return BuildLookupDelete(l, p.ID)
	default:
		return nil, fmt.Errorf("%w: %s lookup:%s", ErrUnsupportedMethod, method, name)
	}
}

func (d *Dispatcher) dispatchTranslation(method string, p RequestParams, q, body map[string]any) (*Statement, error) {
	switch method {
	case "GET":
		return BuildTranslationSelect(q), nil
	case "POST":
		// POST — upsert: составной ключ, суррогатного id нет.
		// strict=true — строгая вставка, падает на дубликате ключа.
		if hasParam(body, "strict") && boolishParam(body["strict"]) == 1 {
			return BuildTranslationInsert(body)
		}
		return BuildTranslationUpsert(body)
	case "PUT":
		return BuildTranslationUpdate(body)
	case "DELETE":
		if len(body) > 0 {
			return BuildTranslationDelete(body)
		}
		return BuildTranslationDelete(q)
	default:
		return nil, fmt.Errorf("%w: %s translation", ErrUnsupportedMethod, method)
	}
}
