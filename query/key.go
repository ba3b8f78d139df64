package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nineteendo/json0/ir"
)

// Key addresses one entry of a container: a field name of an object, or an
// index or slice of an array. Exactly one of the three is set.
type Key struct {
	Name  *string
	Index *int64
	Slice *Slice
}

func NameKey(name string) Key {
	return Key{Name: &name}
}

func IndexKey(i int64) Key {
	return Key{Index: &i}
}

func SliceKey(s Slice) Key {
	return Key{Slice: &s}
}

func (k Key) String() string {
	switch {
	case k.Name != nil:
		return *k.Name
	case k.Index != nil:
		return "[" + strconv.FormatInt(*k.Index, 10) + "]"
	case k.Slice != nil:
		return "[" + k.Slice.String() + "]"
	}
	return "<empty key>"
}

// kindName names the key kind for type errors.
func (k Key) kindName() string {
	switch {
	case k.Name != nil:
		return "a string"
	case k.Index != nil:
		return "an integer"
	case k.Slice != nil:
		return "a slice"
	}
	return "an empty key"
}

// Slice selects a range of array indices. Nil bounds take their defaults
// from the step direction; out-of-range bounds
// are clamped, so the start and end sentinels parse to the extreme int64
// values.
type Slice struct {
	Start *int64
	Stop  *int64
	Step  *int64
}

func (s *Slice) String() string {
	parts := make([]string, 0, 3)
	for _, b := range []*int64{s.Start, s.Stop, s.Step} {
		if b == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, strconv.FormatInt(*b, 10))
	}
	if s.Step == nil {
		parts = parts[:2]
	}
	return strings.Join(parts, ":")
}

// indices normalizes the slice against a container of length n: negative
// bounds count from the end, then everything clamps to [0, n].
func (s *Slice) indices(n int64) (start, stop, step int64, err error) {
	step = 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("%w: slice step can not be zero", ir.ErrValue)
	}
	var lower, upper int64
	if step < 0 {
		lower, upper = -1, n-1
	} else {
		lower, upper = 0, n
	}
	if s.Start == nil {
		start = lower
		if step < 0 {
			start = upper
		}
	} else {
		start = clampBound(*s.Start, n, lower, upper)
	}
	if s.Stop == nil {
		stop = upper
		if step < 0 {
			stop = lower
		}
	} else {
		stop = clampBound(*s.Stop, n, lower, upper)
	}
	return start, stop, step, nil
}

func clampBound(b, n, lower, upper int64) int64 {
	if b < 0 {
		// guard against overflow from the start sentinel
		if b < -n {
			return lower
		}
		b += n
		if b < lower {
			return lower
		}
		return b
	}
	if b > upper {
		return upper
	}
	return b
}

// elems lists the selected indices in slice order.
func (s *Slice) elems(n int64) ([]int, error) {
	start, stop, step, err := s.indices(n)
	if err != nil {
		return nil, err
	}
	var res []int
	if step > 0 {
		for i := start; i < stop; i += step {
			res = append(res, int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			res = append(res, int(i))
		}
	}
	return res, nil
}

// checkKey enforces the key/container kind invariant: names only address
// objects, integers (and, under allowSlice, slices) only address arrays.
func checkKey(target *ir.Node, key Key, allowSlice bool) error {
	switch target.Type {
	case ir.ObjectType:
		if key.Name == nil {
			return fmt.Errorf("%w: object key must be a string, not %s", ir.ErrType, key.kindName())
		}
	case ir.ArrayType:
		if allowSlice {
			if key.Name != nil {
				return fmt.Errorf("%w: array index must be an integer or slice, not %s", ir.ErrType, key.kindName())
			}
		} else if key.Index == nil {
			return fmt.Errorf("%w: array index must be an integer, not %s", ir.ErrType, key.kindName())
		}
	}
	return nil
}
