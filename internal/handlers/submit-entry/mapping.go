// internal/handlers/submit-entry/mapping.go
package submitentry

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// leadingFloat matches the numeric prefix of strings like "1250.5 INR".
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// BuildRow maps a payload onto the fixed A..M column layout.
func BuildRow(p Payload, now time.Time) Row {
	return Row{
		now.UTC().Format(TimestampLayout),
		p.String(FieldDescription, ""),
		p.String(FieldUser, ""),
		p.String(FieldDept, ""),
		p.String(FieldFunction, ""),
		p.String(FieldCostCentre, ""),
		p.Float(FieldMPRValue),
		p.Float(FieldPOValue),
		p.YesNo(FieldIsPOReleased),
		p.YesNo(FieldIsMaterialReceived),
		p.String(FieldMaterialDate, ""),
		p.String(FieldRemarks, ""),
		p.String(FieldAddedBy, DefaultAddedBy),
	}
}

// String returns the field as text. Absent, null, false, zero and empty values
// yield fallback, as do objects and arrays.
func (p Payload) String(key, fallback string) string {
	v, ok := p[key]
	if !ok || isEmptyValue(v) {
		return fallback
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return fallback
	}
	return s
}

// Float parses the field as a number. Strings are read up to the first
// non-numeric character. Anything unparseable or non-finite is 0.
func (p Payload) Float(key string) float64 {
	v, ok := p[key]
	if !ok || v == nil {
		return 0
	}

	var f float64
	switch t := v.(type) {
	case string:
		match := leadingFloat.FindString(strings.TrimSpace(t))
		if match == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		return 0
	default:
		parsed, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		f = parsed
	}

	// -0 collapses to 0 along with the non-finite values.
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// YesNo renders a flag as "Yes" or "No" using loose truthiness: any non-empty
// string, non-zero number, object or array is "Yes".
func (p Payload) YesNo(key string) string {
	if p.Bool(key) {
		return "Yes"
	}
	return "No"
}

func (p Payload) Bool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case map[string]interface{}, []interface{}:
		return true
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0 || math.IsNaN(t)
	case int:
		return t == 0
	case int64:
		return t == 0
	}
	return false
}
