package allele

// numericBounds converts lo/hi/increment (of the set's element type) to
// float64 for interval arithmetic, reporting ok=false for element types
// that aren't one of the numeric kinds a Bounded/Discrete set can
// sensibly use (those sets only make sense over numeric T; Enumerated
// sets work for any comparable T and never call this).
func numericBounds[T allowed](lo, hi, inc T) (float64, float64, float64, bool) {
	loF, ok1 := toFloat(lo)
	hiF, ok2 := toFloat(hi)
	incF, ok3 := toFloat(inc)
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return loF, hiF, incF, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// fromFloat converts a float64 back to T for the numeric kinds toFloat
// accepts. Called only after numericBounds has confirmed T is numeric,
// so the default branch is unreachable in practice.
func fromFloat[T allowed](v float64) T {
	var zero T
	switch any(zero).(type) {
	case int:
		return any(int(v)).(T)
	case int8:
		return any(int8(v)).(T)
	case int16:
		return any(int16(v)).(T)
	case int32:
		return any(int32(v)).(T)
	case int64:
		return any(int64(v)).(T)
	case uint:
		return any(uint(v)).(T)
	case uint8:
		return any(uint8(v)).(T)
	case uint16:
		return any(uint16(v)).(T)
	case uint32:
		return any(uint32(v)).(T)
	case uint64:
		return any(uint64(v)).(T)
	case float32:
		return any(float32(v)).(T)
	case float64:
		return any(v).(T)
	default:
		return zero
	}
}
