package model

// JSON field names of the monetary step data fields. The step catalog and the
// validator refer to fields by these names so that adding a step stays a
// catalog edit rather than new control flow.
const (
	FieldPIAmount          = "piAmount"
	FieldAirFreightCost    = "airFreightCost"
	FieldSeaFreightCost    = "seaFreightCost"
	FieldCustomsDutyAmount = "customsDutyAmount"
	FieldQuoteAmount       = "quoteAmount"
	FieldQuantity          = "quantity"
	FieldProductName       = "productName"
	FieldSupplierName      = "supplierName"
	FieldBranchChoice      = "branchChoice"
)

// Amount returns the monetary field with the given JSON name, or nil when the
// field is unknown or not yet recorded.
func (d StepData) Amount(field string) *float64 {
	switch field {
	case FieldPIAmount:
		return d.PIAmount
	case FieldAirFreightCost:
		return d.AirFreightCost
	case FieldSeaFreightCost:
		return d.SeaFreightCost
	case FieldCustomsDutyAmount:
		return d.CustomsDutyAmount
	case FieldQuoteAmount:
		return d.QuoteAmount
	default:
		return nil
	}
}

// Apply merges a patch into the step data. Set fields are overwritten with the
// incoming value, unset fields are left alone; nothing is ever cleared. The
// note, when present, is attached to the given step.
func (d *StepData) Apply(patch *StepDataPatchDTO, stepID StepID) {
	if patch == nil {
		return
	}
	if patch.PIAmount != nil {
		d.PIAmount = patch.PIAmount
	}
	if patch.AirFreightCost != nil {
		d.AirFreightCost = patch.AirFreightCost
	}
	if patch.SeaFreightCost != nil {
		d.SeaFreightCost = patch.SeaFreightCost
	}
	if patch.CustomsDutyAmount != nil {
		d.CustomsDutyAmount = patch.CustomsDutyAmount
	}
	if patch.QuoteAmount != nil {
		d.QuoteAmount = patch.QuoteAmount
	}
	if patch.Note != nil && *patch.Note != "" {
		if d.Notes == nil {
			d.Notes = make(map[StepID]string)
		}
		d.Notes[stepID] = *patch.Note
	}
}
