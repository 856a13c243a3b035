package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeJSON декодирует тело запроса в модель, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
