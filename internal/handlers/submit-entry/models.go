// internal/handlers/submit-entry/models.go
package submitentry

// Payload is the loosely typed submission body. Every field is optional.
type Payload map[string]interface{}

// Row is the 13-value record appended to the sheet, in column order A..M.
type Row []interface{}

const (
	FieldDescription        = "description"
	FieldUser               = "user"
	FieldDept               = "dept"
	FieldFunction           = "function"
	FieldCostCentre         = "costCentre"
	FieldMPRValue           = "mprValue"
	FieldPOValue            = "poValue"
	FieldIsPOReleased       = "isPoReleased"
	FieldIsMaterialReceived = "isMaterialReceived"
	FieldMaterialDate       = "materialDate"
	FieldRemarks            = "remarks"
	FieldAddedBy            = "addedBy"
)

const (
	SuccessMessage = "Entry saved to Google Sheets"
	DefaultAddedBy = "Unknown"
)

type SuccessResponse struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	RowNumber *string `json:"rowNumber"`
}

type MethodNotAllowedResponse struct {
	Error string `json:"error"`
}
