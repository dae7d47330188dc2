package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Txn   bool
	Store bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("CFGED_DEBUG_PARSE")
	d.Txn = boolEnv("CFGED_DEBUG_TXN")
	d.Store = boolEnv("CFGED_DEBUG_STORE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Txn() bool {
	return d.Txn
}
func Store() bool {
	return d.Store
}
