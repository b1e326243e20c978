package sqlgen

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatValue превращает типизированное значение в SQL-литерал.
// Единственная точка экранирования во всём генераторе: плейсхолдеров
// тут нет, все значения инлайнятся в текст запроса.
// Чистая функция, никогда не паникует: неизвестный тип деградирует в NULL.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return QuoteString(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", t)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		// из decoder'а приходит уже числовая строка, но перепроверим
		if _, err := t.Float64(); err != nil {
			return "NULL"
		}
		return t.String()
	case time.Time:
		return QuoteString(t.UTC().Format("2006-01-02 15:04:05"))
	default:
		// структурные значения сериализуем в JSON и экранируем как строку
		b, err := json.Marshal(v)
		if err != nil {
			return "NULL"
		}
		return QuoteString(string(b))
	}
}

// QuoteString оборачивает строку в одинарные кавычки.
// Сначала бэкслеши, потом кавычки — иначе кавычка, добавленная первым
// проходом, заэкранируется второй раз.
func QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
