package streamtape

import (
	"fmt"
	"net/url"
	"strconv"
)

// Credential parameter names. They are always written last by Encode.
const (
	ParamLogin = "login"
	ParamKey   = "key"
)

// Params are the query parameters of one upstream call. Values may be
// strings, integers, booleans or nil; nil values are not sent.
type Params map[string]any

// Set stores value under key unless it is the empty string.
func (p Params) Set(key, value string) {
	if value == "" {
		return
	}
	p[key] = value
}

// Encode renders p as url.Values and then writes the credentials, so that a
// caller can never replace them.
func (p Params) Encode(login, key string) url.Values {
	values := make(url.Values, len(p)+2)
	for k, v := range p {
		s, ok := formatValue(v)
		if !ok {
			continue
		}
		values.Set(k, s)
	}
	values.Set(ParamLogin, login)
	values.Set(ParamKey, key)
	return values
}

func formatValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	case bool:
		return strconv.FormatBool(val), true
	case *bool:
		if val == nil {
			return "", false
		}
		return strconv.FormatBool(*val), true
	case int:
		return strconv.Itoa(val), true
	case *int:
		if val == nil {
			return "", false
		}
		return strconv.Itoa(*val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
