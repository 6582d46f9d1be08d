// Package env fills config structs from CAL_* environment variables.
//
//	type StorageConfig struct {
//		Type string `env:"CAL_STORAGE_TYPE" default:"postgres"`
//	}
//
// A variable that is set, even to "", wins over its default. Struct fields are
// descended into; a group implementing Validator is checked once it is filled.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// Validator is implemented by config groups that check themselves after loading.
type Validator interface {
	Validate() error
}

// ErrInvalidValue reports a variable whose text does not parse into its field.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("%s=%q does not fit %s: %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error {
	return e.Err
}

// ErrNotStructPointer is returned when Load gets anything but a struct pointer.
type ErrNotStructPointer struct {
	Type string
}

func (e ErrNotStructPointer) Error() string {
	return fmt.Sprintf("env.Load needs a pointer to a struct, got %s", e.Type)
}

// ErrUnsupportedType is returned for a tagged field of a kind Load cannot fill.
type ErrUnsupportedType struct {
	Kind string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("cannot load env into %s field", e.Kind)
}

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// Load fills cfg, which must be a pointer to a struct, then validates it.
// Tagged fields may be strings, bools, signed integers or time.Duration.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer{Type: fmt.Sprintf("%T", cfg)}
	}

	if err := fill(v.Elem()); err != nil {
		return err
	}
	return validate(v)
}

func fill(group reflect.Value) error {
	for i := range group.NumField() {
		sf := group.Type().Field(i)
		field := group.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := fill(field); err != nil {
				return err
			}
			if err := validate(field.Addr()); err != nil {
				return err
			}
			continue
		}

		key, ok := sf.Tag.Lookup("env")
		if !ok || key == "" {
			continue
		}
		raw, ok := lookup(key, sf.Tag)
		if !ok {
			continue
		}
		if err := assign(field, raw); err != nil {
			return ErrInvalidValue{Field: sf.Name, EnvVar: key, Value: raw, Err: err}
		}
	}
	return nil
}

// lookup returns the variable's value, else the field's default.
func lookup(key string, tag reflect.StructTag) (string, bool) {
	if raw, ok := os.LookupEnv(key); ok {
		return raw, true
	}
	return tag.Lookup("default")
}

func validate(ptr reflect.Value) error {
	if v, ok := ptr.Interface().(Validator); ok {
		return v.Validate()
	}
	return nil
}

func assign(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return ErrUnsupportedType{Kind: field.Kind().String()}
	}
	return nil
}
