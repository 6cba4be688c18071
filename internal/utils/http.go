package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
)

// ExtractIDFromParams returns the named route parameter with any ".json"
// suffix removed.
func ExtractIDFromParams(r *http.Request, paramName string) string {
	params := httprouter.ParamsFromContext(r.Context())
	return strings.TrimSuffix(params.ByName(paramName), ".json")
}

func invalidValue(key string) string {
	return fmt.Sprintf("Invalid field value for field %q.", key)
}

// ParseFloatParam reads key from params. A missing key yields def; an
// unparsable value yields def and a field error.
func ParseFloatParam(params url.Values, key string, def float64, fieldErrors map[string][]string) float64 {
	val := params.Get(key)
	if val == "" {
		return def
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], invalidValue(key))
		return def
	}
	return f
}

// ParseIntParam is ParseFloatParam for integers.
func ParseIntParam(params url.Values, key string, def int, fieldErrors map[string][]string) int {
	val := params.Get(key)
	if val == "" {
		return def
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], invalidValue(key))
		return def
	}
	return i
}
