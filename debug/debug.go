package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Select bool
	Filter bool
	Patch  bool
	Parse  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Select = boolEnv("JSON0_DEBUG_SELECT")
	d.Filter = boolEnv("JSON0_DEBUG_FILTER")
	d.Patch = boolEnv("JSON0_DEBUG_PATCH")
	d.Parse = boolEnv("JSON0_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Select() bool {
	return d.Select
}
func Filter() bool {
	return d.Filter
}
func Patch() bool {
	return d.Patch
}
func Parse() bool {
	return d.Parse
}
