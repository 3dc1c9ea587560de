package telemetry

import (
	"fmt"
	"reflect"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ApplyTraceAttributes 依 `trace:"key[,omitempty]"` tag 把欄位寫成 span attribute；巢狀 struct 遞迴展開
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj any) {
	if span == nil || obj == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("ApplyTraceAttributes panic: %v", r))
		}
	}()
	if attrs := traceAttributes(reflect.ValueOf(obj)); len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func traceAttributes(val reflect.Value) []attribute.KeyValue {
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	var attrs []attribute.KeyValue
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		if !typ.Field(i).IsExported() {
			continue
		}
		key, omitEmpty := parseTraceTag(typ.Field(i).Tag.Get("trace"))
		if omitEmpty && field.IsZero() {
			continue
		}
		switch {
		case field.Kind() == reflect.Struct, field.Kind() == reflect.Ptr:
			attrs = append(attrs, traceAttributes(field)...)
		case key == "":
		case field.Kind() == reflect.Map:
			if field.Type().Key().Kind() != reflect.String {
				continue
			}
			iter := field.MapRange()
			for iter.Next() {
				if kv, ok := scalarAttribute(key+"."+iter.Key().String(), iter.Value()); ok {
					attrs = append(attrs, kv)
				}
			}
		default:
			if kv, ok := scalarAttribute(key, field); ok {
				attrs = append(attrs, kv)
			}
		}
	}
	return attrs
}

func scalarAttribute(key string, v reflect.Value) (attribute.KeyValue, bool) {
	switch v.Kind() {
	case reflect.String:
		return attribute.String(key, v.String()), true
	case reflect.Bool:
		return attribute.Bool(key, v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return attribute.Int64(key, v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return attribute.Int64(key, int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return attribute.Float64(key, v.Float()), true
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.String {
			return attribute.KeyValue{}, false
		}
		values := make([]string, v.Len())
		for i := range values {
			values[i] = v.Index(i).String()
		}
		return attribute.StringSlice(key, values), true
	}
	return attribute.KeyValue{}, false
}

func parseTraceTag(tag string) (key string, omitEmpty bool) {
	key, options, _ := strings.Cut(tag, ",")
	return key, options == "omitempty"
}
