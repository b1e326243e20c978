package sqlgen

import "errors"

// Ошибки конфигурации и входных данных. Тихие деградации (неизвестный тип
// значения → NULL, несуществующий language_code → пустой join) ошибками
// не считаются — это осознанные fallback'и.
var (
	ErrUnknownEntity     = errors.New("unknown entity type")
	ErrUnknownLookup     = errors.New("unknown lookup type")
	ErrNoColumns         = errors.New("no columns to update")
	ErrMissingID         = errors.New("missing id")
	ErrMissingCode       = errors.New("missing code")
	ErrUnsupportedMethod = errors.New("unsupported method")
)
