package enhance

// Parameter bags arrive as map[string]interface{} from hosts and from
// YAML pipeline files, so numeric values may be any of Go's common
// numeric types. These lookups coerce them to the type a stage needs.

func floatParam(op string, params map[string]interface{}, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, &InvalidParameterError{Op: op, Param: key, Reason: "is required"}
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, &InvalidParameterError{Op: op, Param: key, Reason: "must be a number"}
	}
}

func intParam(op string, params map[string]interface{}, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, &InvalidParameterError{Op: op, Param: key, Reason: "is required"}
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, &InvalidParameterError{Op: op, Param: key, Reason: "must be an integer"}
		}
		return int(v), nil
	default:
		return 0, &InvalidParameterError{Op: op, Param: key, Reason: "must be an integer"}
	}
}

// boolParam is for optional flags; absence yields the fallback.
func boolParam(op string, params map[string]interface{}, key string, fallback bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return fallback, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, &InvalidParameterError{Op: op, Param: key, Reason: "must be a boolean"}
	}
	return v, nil
}
