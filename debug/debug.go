package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Encode  bool
	Prune   bool
	Build   bool
	Parse   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("SEEDGEN_DEBUG_RESOLVE")
	d.Encode = boolEnv("SEEDGEN_DEBUG_ENCODE")
	d.Prune = boolEnv("SEEDGEN_DEBUG_PRUNE")
	d.Build = boolEnv("SEEDGEN_DEBUG_BUILD")
	d.Parse = boolEnv("SEEDGEN_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Encode() bool {
	return d.Encode
}
func Prune() bool {
	return d.Prune
}
func Build() bool {
	return d.Build
}
func Parse() bool {
	return d.Parse
}

type JSON any
