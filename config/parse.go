package config

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Range bounds a numeric field, inclusive.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) String() string {
	return fmt.Sprintf("%v - %v", r.Min, r.Max)
}

// Parse converts command line values into the type of the field's default
// and rejects values outside its range or choices.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: no value given", f.Key)
	}

	raw := values[0]
	switch f.Value.(type) {
	case string:
		if len(f.Choices) > 0 && !lo.Contains(f.Choices, raw) {
			return nil, fmt.Errorf("%s: %q is not one of %v", f.Key, raw, f.Choices)
		}
		return raw, nil
	case int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer value %q", f.Key, raw)
		}
		if err := f.check(float64(parsed)); err != nil {
			return nil, err
		}
		return parsed, nil
	case float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number value %q", f.Key, raw)
		}
		if err := f.check(parsed); err != nil {
			return nil, err
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean value %q", f.Key, raw)
		}
		return parsed, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %s", f.Key, f.typeName())
	}
}

func (f *Field) check(v float64) error {
	r, ok := f.Range.Get()
	if !ok || (v >= r.Min && v <= r.Max) {
		return nil
	}
	return fmt.Errorf("%s: %v is out of range %s", f.Key, v, r)
}

func bounded(from, to float64) mo.Option[Range] {
	return mo.Some(Range{Min: from, Max: to})
}
