package misc

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"timelogger/bizerror"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindingQueryID reads an entity id from the query string. Missing or malformed ids are
// reported through notFound, the same way as ids that do not resolve; a missing id reads as 0.
func BindingQueryID(c *gin.Context, key string, notFound func(id interface{}) *bizerror.ErrIDNotFound) (uint, error) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return 0, notFound(0)
	}
	id, err := types.ParseID(raw)
	if err != nil || id == 0 || uint64(id) > math.MaxUint32 {
		return 0, notFound(raw)
	}
	return uint(id), nil
}

// BindingJSON decodes the request body into payload and returns the top-level keys present,
// so that an explicit null can be told apart from an absent field.
func BindingJSON(c *gin.Context, payload interface{}) (map[string]json.RawMessage, error) {
	if err := c.ShouldBindBodyWith(payload, binding.JSON); err != nil {
		return nil, &bizerror.ErrBadParam{Cause: err}
	}
	keys := map[string]json.RawMessage{}
	if err := c.ShouldBindBodyWith(&keys, binding.JSON); err != nil {
		return nil, &bizerror.ErrBadParam{Cause: err}
	}
	return keys, nil
}

// IsExplicitNull reports whether key was sent with a JSON null value.
func IsExplicitNull(keys map[string]json.RawMessage, key string) bool {
	raw, ok := keys[key]
	return ok && string(raw) == "null"
}

// Created answers 201 with the entity and a Location pointing at its detail endpoint.
func Created(c *gin.Context, path, idKey string, id uint, body interface{}) {
	c.Header("Location", fmt.Sprintf("%s?%s=%d", path, idKey, id))
	c.JSON(http.StatusCreated, body)
}
