package triage

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carecompass/carecompass-api/schema"
)

func validReply() map[string]interface{} {
	return map[string]interface{}{
		"urgency_level":            "urgent_care",
		"urgency_color":            "yellow",
		"recommended_care_type":    "Urgent Care Center",
		"reasoning_summary":        "Needs prompt attention.",
		"doctor_summary":           "Patient reports ongoing fever.",
		"red_flags":                []string{"fever beyond 3 days"},
		"financial_category":       "medium",
		"financial_explanation":    "Urgent care is cheaper than the ER.",
		"suggested_search_queries": []string{"urgent care center"},
	}
}

func marshalReply(t *testing.T, reply map[string]interface{}) string {
	raw, err := json.Marshal(reply)
	assert.Nil(t, err, "wrong test fixture marshal")
	return string(raw)
}

func TestParseResultAcceptsValidReply(t *testing.T) {
	result, err := ParseResult(marshalReply(t, validReply()))

	assert.Nil(t, err, "wrong rejection of valid reply")
	assert.Equal(t, schema.UrgencyUrgentCare, result.UrgencyLevel, "wrong urgency level")
	assert.Equal(t, []string{"fever beyond 3 days"}, result.RedFlags, "wrong red flags")
}

func TestParseResultStripsCodeFences(t *testing.T) {
	raw := marshalReply(t, validReply())
	fenced := fmt.Sprintf("```json\n%s\n```", raw)

	plain, err := ParseResult(raw)
	assert.Nil(t, err, "wrong rejection of plain reply")

	wrapped, err := ParseResult(fenced)
	assert.Nil(t, err, "wrong rejection of fenced reply")

	assert.Equal(t, plain, wrapped, "wrong fence stripping")
}

func TestParseResultRejectsNonJSON(t *testing.T) {
	_, err := ParseResult("I recommend you visit an urgent care center.")

	schemaErr, ok := err.(*SchemaError)
	assert.True(t, ok, "wrong error type")
	assert.Equal(t, SchemaReasonParse, schemaErr.Reason, "wrong schema reason")
}

func TestParseResultRejectsMissingField(t *testing.T) {
	for _, name := range requiredFields {
		reply := validReply()
		delete(reply, name)

		_, err := ParseResult(marshalReply(t, reply))

		schemaErr, ok := err.(*SchemaError)
		assert.True(t, ok, "wrong error type dropping %s", name)
		assert.Equal(t, SchemaReasonMissingFields, schemaErr.Reason, "wrong schema reason dropping %s", name)
		assert.Equal(t, []string{name}, schemaErr.Fields, "wrong missing field names dropping %s", name)
	}
}

func TestParseResultRejectsInvalidEnum(t *testing.T) {
	reply := validReply()
	reply["urgency_level"] = "urgent"

	_, err := ParseResult(marshalReply(t, reply))

	schemaErr, ok := err.(*SchemaError)
	assert.True(t, ok, "wrong error type")
	assert.Equal(t, SchemaReasonInvalidEnum, schemaErr.Reason, "wrong schema reason")
	assert.Equal(t, "urgency_level", schemaErr.Field, "wrong rejected field")
	assert.Equal(t, "urgent", schemaErr.Value, "wrong rejected value")

	reply["urgency_level"] = "urgent_care"
	_, err = ParseResult(marshalReply(t, reply))
	assert.Nil(t, err, "wrong rejection of valid enum member")
}

func TestParseResultRejectsScalarArrayField(t *testing.T) {
	for _, name := range []string{"red_flags", "suggested_search_queries"} {
		for _, value := range []interface{}{"not an array", nil} {
			reply := validReply()
			reply[name] = value

			_, err := ParseResult(marshalReply(t, reply))

			schemaErr, ok := err.(*SchemaError)
			assert.True(t, ok, "wrong error type for %s=%v", name, value)
			assert.Equal(t, SchemaReasonInvalidType, schemaErr.Reason, "wrong schema reason for %s=%v", name, value)
			assert.Equal(t, name, schemaErr.Field, "wrong rejected field for %s=%v", name, value)
		}
	}
}

func TestParseResultRejectsNullStringField(t *testing.T) {
	for _, name := range stringFields {
		reply := validReply()
		reply[name] = nil

		_, err := ParseResult(marshalReply(t, reply))

		schemaErr, ok := err.(*SchemaError)
		assert.True(t, ok, "wrong error type for null %s", name)
		assert.Equal(t, SchemaReasonInvalidType, schemaErr.Reason, "wrong schema reason for null %s", name)
		assert.Equal(t, name, schemaErr.Field, "wrong rejected field for null %s", name)
	}
}

func TestParseResultIsDeterministic(t *testing.T) {
	raw := marshalReply(t, validReply())

	first, err1 := ParseResult(raw)
	second, err2 := ParseResult(raw)

	assert.Nil(t, err1, "wrong first validation")
	assert.Nil(t, err2, "wrong second validation")
	assert.Equal(t, first, second, "wrong non-deterministic validation")
}
