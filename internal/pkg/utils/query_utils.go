package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"
)

// ErrUnsupportedQueryValue is returned for nested query values (maps, slices, structs).
var ErrUnsupportedQueryValue = errors.New("unsupported query value")

// QueryParams is a flat set of query parameters with string, bool or numeric values.
type QueryParams map[string]any

// BuildQuery encodes params as "?k=v&..." sorted by key. Nil or empty params give "".
func BuildQuery(params QueryParams) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	for k, v := range params {
		s, err := queryValueString(v)
		if err != nil {
			return "", fmt.Errorf("query parameter %q: %w", k, err)
		}
		args.Add(k, s)
	}
	args.Sort(bytes.Compare)

	return "?" + string(args.QueryString()), nil
}

func queryValueString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedQueryValue, v)
	}
}
