// Package swagger отдает встроенный OpenAPI документ сервиса
package swagger

import (
	_ "embed"
	"net/http"
	"strings"
)

//go:embed openapi.json
var spec []byte

// prefixPlaceholder заменяется на фактический префикс API
const prefixPlaceholder = "{{API_PREFIX}}"

// Spec возвращает OpenAPI документ с подставленным префиксом маршрутов
func Spec(apiPrefix string) []byte {
	prefix := strings.TrimRight(strings.TrimSpace(apiPrefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return []byte(strings.ReplaceAll(string(spec), prefixPlaceholder, prefix))
}

// Handler возвращает обработчик GET /swagger.json
func Handler(apiPrefix string) http.Handler {
	body := Spec(apiPrefix)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(body)
	})
}
