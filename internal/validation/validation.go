// Package validation содержит чистые функции проверки и нормализации входных данных:
// проверку формата UUID и нормализацию списков тегов.
package validation

import (
	"strings"

	"github.com/google/uuid"
)

// uuidLen - длина канонической записи UUID (8-4-12 с дефисами)
const uuidLen = 36

// IsUUID проверяет, что строка является UUID любой версии в канонической записи.
// Формы с фигурными скобками и urn:uuid: не принимаются.
func IsUUID(s string) bool {
	if len(s) != uuidLen {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizeTags приводит теги к нижнему регистру, обрезает пробелы,
// отбрасывает пустые и удаляет дубликаты (сохраняется первое вхождение).
// Всегда возвращает non-nil срез.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		name := strings.ToLower(strings.TrimSpace(tag))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ParseTagFilter разбирает значение query-параметра tags ("a, B,c").
// Возвращает nil, если после нормализации не осталось ни одного тега:
// такой фильтр означает отсутствие фильтрации.
func ParseTagFilter(q string) []string {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	tags := NormalizeTags(strings.Split(q, ","))
	if len(tags) == 0 {
		return nil
	}
	return tags
}
