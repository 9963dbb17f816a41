package upload

import (
	"strings"

	"github.com/shenikar/geo_checkin/internal/errs"
)

// SanitizeKey приводит строку к безопасному имени файла или каталога: нижний регистр,
// любой символ кроме [a-z0-9] заменяется на '_'. Результат не может содержать
// разделителей пути и "..", поэтому не выходит за корень хранилища.
func SanitizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// регистр меняется только у ASCII: strings.ToLower превращает, например, знак Кельвина в 'k'
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 'a' - 'A')
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func sanitizeRequired(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", errs.Validation(field, "is required")
	}
	return SanitizeKey(value), nil
}
