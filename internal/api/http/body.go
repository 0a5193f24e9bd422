package httpapi

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"notes-api/internal/model"
)

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

var errInvalidBody = model.NewValidationError("invalid request body")

// body - поля JSON объекта запроса. Хранит сырые значения,
// чтобы отличать отсутствующее поле от переданного null.
type body map[string]json.RawMessage

// readBody читает тело запроса как JSON объект. Пустое тело считается пустым объектом.
func readBody(c *gin.Context) (body, error) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, errInvalidBody
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return body{}, nil
	}

	var b body
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errInvalidBody
	}
	if b == nil {
		b = body{}
	}
	return b, nil
}

// has сообщает, присутствует ли поле в запросе (в том числе со значением null)
func (b body) has(key string) bool {
	_, ok := b[key]
	return ok
}

// isNull сообщает, что поле присутствует и равно null
func (b body) isNull(key string) bool {
	raw, ok := b[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str возвращает строковое поле. ok=false, если поле отсутствует или равно null.
// Значение другого типа приводит к ошибке валидации.
func (b body) str(key string) (value string, ok bool, err error) {
	if !b.has(key) || b.isNull(key) {
		return "", false, nil
	}
	if err := json.Unmarshal(b[key], &value); err != nil {
		return "", false, model.NewValidationError("%s must be a string", key)
	}
	return value, true, nil
}

// tags разбирает поле tags, которое обязано быть массивом строк
func (b body) tags() ([]string, error) {
	raw := bytes.TrimSpace(b["tags"])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, model.NewValidationError("tags must be an array")
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, model.NewValidationError("tags must be an array of strings")
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
