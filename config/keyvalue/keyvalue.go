// Package keyvalue converts go-simpler/env struct tagged configuration structures into a sorted
// slice of key/values, and renders them as a shell script that reproduces the configuration.
package keyvalue

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// EnvKV turns a struct with `env` keys into key/value pairs. Note you must dereference a
// pointer type to use this. Fields without an `env` tag are skipped.
func EnvKV(cfg any) (m KVSlice) {
	t := reflect.TypeOf(cfg)
	v := reflect.ValueOf(cfg)
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		if k == "" {
			continue
		}
		var val string
		switch x := v.Field(i).Interface().(type) {
		case string:
			val = x
		case int, int64, int32, uint64, uint32, bool, time.Duration:
			val = fmt.Sprint(x)
		case []string:
			val = strings.Join(x, ",")
		}
		m = append(m, KV{k, val})
	}
	return
}

// PrintEnv renders the key/values of a config struct to a provided io.Writer as a bash script.
// Values are quoted so that blank or space-containing values survive being sourced.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, strconv.Quote(v.Value))
	}
}
