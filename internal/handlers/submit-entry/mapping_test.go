// internal/handlers/submit-entry/mapping_test.go
package submitentry

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 123_000_000, time.UTC)

func TestBuildRow_EmptyPayload(t *testing.T) {
	row := BuildRow(Payload{}, fixedNow)

	require.Len(t, row, 13)
	assert.Equal(t, Row{
		"2024-03-15T09:30:00.123Z",
		"", "", "", "", "",
		0.0, 0.0,
		"No", "No",
		"", "",
		"Unknown",
	}, row)
}

func TestBuildRow_FullPayload(t *testing.T) {
	p := Payload{
		"description":        "Laptop",
		"user":               "A",
		"dept":               "IT",
		"function":           "Ops",
		"costCentre":         "CC1",
		"mprValue":           "1000",
		"poValue":            950.0,
		"isPoReleased":       true,
		"isMaterialReceived": false,
		"materialDate":       "2024-03-01",
		"remarks":            "ok",
		"addedBy":            "bob",
	}

	row := BuildRow(p, fixedNow)

	assert.Equal(t, Row{
		"2024-03-15T09:30:00.123Z",
		"Laptop", "A", "IT", "Ops", "CC1",
		1000.0, 950.0,
		"Yes", "No",
		"2024-03-01", "ok",
		"bob",
	}, row)
}

func TestBuildRow_TimestampIsUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	row := BuildRow(Payload{}, time.Date(2024, 3, 15, 15, 0, 0, 0, ist))
	assert.Equal(t, "2024-03-15T09:30:00.000Z", row[0])
}

func TestPayload_Float(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"absent", nil, 0},
		{"number", 950.0, 950},
		{"integer string", "1000", 1000},
		{"decimal string", "1250.5", 1250.5},
		{"leading numeric prefix", "1250.5 INR", 1250.5},
		{"padded", "  42 ", 42},
		{"negative", "-3.5", -3.5},
		{"negative zero", "-0", 0},
		{"exponent", "1e3", 1000},
		{"leading dot", ".5", 0.5},
		{"non numeric", "abc", 0},
		{"empty string", "", 0},
		{"boolean", true, 0},
		{"infinity text", "Infinity", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"object", map[string]interface{}{"a": 1.0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payload{}
			if tt.value != nil {
				p[FieldMPRValue] = tt.value
			}
			assert.Equal(t, tt.want, p.Float(FieldMPRValue))
		})
	}
}

func TestPayload_Float_NegativeZero(t *testing.T) {
	for _, v := range []interface{}{"-0", "-0.0", math.Copysign(0, -1)} {
		f := Payload{FieldPOValue: v}.Float(FieldPOValue)
		assert.Zero(t, f)
		assert.False(t, math.Signbit(f), "value %v", v)
	}
}

func TestPayload_YesNo(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"absent", nil, "No"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"string true", "true", "Yes"},
		{"string false", "false", "Yes"},
		{"string yes", "Yes", "Yes"},
		{"string zero", "0", "Yes"},
		{"string no", "no", "Yes"},
		{"arbitrary text", "abc", "Yes"},
		{"empty string", "", "No"},
		{"non-zero number", 1.0, "Yes"},
		{"negative number", -2.5, "Yes"},
		{"zero", 0.0, "No"},
		{"nan", math.NaN(), "No"},
		{"empty object", map[string]interface{}{}, "Yes"},
		{"empty array", []interface{}{}, "Yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payload{}
			if tt.value != nil {
				p[FieldIsPOReleased] = tt.value
			}
			assert.Equal(t, tt.want, p.YesNo(FieldIsPOReleased))
		})
	}
}

func TestPayload_String(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		fallback string
		want     string
	}{
		{"absent", nil, "", ""},
		{"absent with fallback", nil, "Unknown", "Unknown"},
		{"empty string falls back", "", "Unknown", "Unknown"},
		{"false falls back", false, "Unknown", "Unknown"},
		{"zero falls back", 0.0, "Unknown", "Unknown"},
		{"text", "bob", "Unknown", "bob"},
		{"number", 12.5, "", "12.5"},
		{"true", true, "", "true"},
		{"object falls back", map[string]interface{}{"a": "b"}, "x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payload{}
			if tt.value != nil {
				p[FieldAddedBy] = tt.value
			}
			assert.Equal(t, tt.want, p.String(FieldAddedBy, tt.fallback))
		})
	}
}

func TestCheckPayload(t *testing.T) {
	assert.Empty(t, checkPayload(Payload{}))
	assert.Empty(t, checkPayload(Payload{"mprValue": "12", "isPoReleased": true, "extra": 1.0}))

	problems := checkPayload(Payload{"description": []interface{}{"a"}, "mprValue": true})
	assert.Len(t, problems, 2)
}
