package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Payload is the canonical key-value form of a request body, whether it
// arrived as a JSON object or as URL-encoded form fields. Handlers are
// agnostic to the original wire format.
type Payload struct {
	values map[string]string
}

// ParsePayload normalizes the request body. A JSON content type is
// decoded as an object; anything else is read as form fields. Scalar
// JSON values are coerced to their literal string form.
func ParsePayload(c *gin.Context) (Payload, error) {
	p := Payload{values: map[string]string{}}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var raw map[string]json.RawMessage
		dec := json.NewDecoder(c.Request.Body)
		if err := dec.Decode(&raw); err != nil {
			return Payload{}, err
		}
		for k, v := range raw {
			p.values[k] = coerceJSONValue(v)
		}
		return p, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return Payload{}, err
	}
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			p.values[k] = vs[0]
		} else {
			p.values[k] = ""
		}
	}
	return p, nil
}

func coerceJSONValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	// null, objects and arrays read as empty
	return ""
}

// Get returns the trimmed value for a key, or "" when absent.
func (p Payload) Get(key string) string {
	return strings.TrimSpace(p.values[key])
}

// Has reports whether the key was present in the request body, even with
// an empty value. Partial updates rely on this distinction.
func (p Payload) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}
