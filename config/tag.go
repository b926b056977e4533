package config

import (
	"reflect"
	"strconv"
)

// TagString holds driver specific parameters in struct tag syntax.
// Example: baud:"115200"
type TagString reflect.StructTag

func (d TagString) GetInt(key string, defaultValue int) (int, error) {
	value := reflect.StructTag(d).Get(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func (d TagString) Get(key string) string {
	return reflect.StructTag(d).Get(key)
}

func (d TagString) GetBaud(defaultValue int) (int, error) {
	return d.GetInt("baud", defaultValue)
}
