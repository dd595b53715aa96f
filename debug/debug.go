package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Scan  bool
	Parse bool
	Load  bool
	Emit  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("YAMLCORE_DEBUG_SCAN")
	d.Parse = boolEnv("YAMLCORE_DEBUG_PARSE")
	d.Load = boolEnv("YAMLCORE_DEBUG_LOAD")
	d.Emit = boolEnv("YAMLCORE_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Parse() bool {
	return d.Parse
}
func Load() bool {
	return d.Load
}
func Emit() bool {
	return d.Emit
}
