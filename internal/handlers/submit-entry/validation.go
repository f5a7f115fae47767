// internal/handlers/submit-entry/validation.go
package submitentry

import "capex-entry/internal/common/validation"

// payloadSchema describes the expected shape of a submission. Violations are
// logged, never rejected: the mapping step coerces whatever arrives.
var payloadSchema = validation.MustCompile(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		FieldDescription:        textProperty(),
		FieldUser:               textProperty(),
		FieldDept:               textProperty(),
		FieldFunction:           textProperty(),
		FieldCostCentre:         textProperty(),
		FieldMPRValue:           amountProperty(),
		FieldPOValue:            amountProperty(),
		FieldIsPOReleased:       flagProperty(),
		FieldIsMaterialReceived: flagProperty(),
		FieldMaterialDate:       textProperty(),
		FieldRemarks:            textProperty(),
		FieldAddedBy:            textProperty(),
	},
	"additionalProperties": true,
})

func textProperty() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"string", "null"}}
}

func amountProperty() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"number", "string", "null"}}
}

func flagProperty() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"boolean", "string", "number", "null"}}
}

// checkPayload returns human-readable shape problems, or nil.
func checkPayload(p Payload) []string {
	result, err := payloadSchema.Validate(map[string]interface{}(p))
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid {
		return nil
	}
	return result.GetErrorMessages()
}
