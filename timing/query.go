package timing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// encodeQuery flattens a wire-cased parameter mapping into url.Values
// using bracket notation:
//
//	{"limit": 10}                        -> limit=10
//	{"projects": ["/projects/1"]}        -> projects[]=/projects/1
//	{"filter": {"field": "title"}}       -> filter[field]=title
//	{"filters": [{"field": "title"}]}    -> filters[0][field]=title
//
// nil values are skipped.
func encodeQuery(params map[string]any) url.Values {
	values := url.Values{}
	for key, v := range params {
		addQueryValue(values, key, v)
	}
	return values
}

func addQueryValue(values url.Values, key string, v any) {
	switch t := v.(type) {
	case nil:
		return
	case map[string]any:
		for k, inner := range t {
			addQueryValue(values, key+"["+k+"]", inner)
		}
	case []any:
		if containsObjects(t) {
			for i, inner := range t {
				addQueryValue(values, fmt.Sprintf("%s[%d]", key, i), inner)
			}
			return
		}
		for _, inner := range t {
			if inner == nil {
				continue
			}
			values.Add(key+"[]", scalarString(inner))
		}
	case []string:
		for _, inner := range t {
			values.Add(key+"[]", inner)
		}
	default:
		values.Add(key, scalarString(t))
	}
}

func containsObjects(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			return true
		}
	}
	return false
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
