package domain

// Renter is the subset of a renter profile used to start an inspection.
type Renter struct {
	Name string `json:"name"`
	RG   string `json:"rg"`
}

// Motorcycle is the subset of a fleet entry used to start an inspection.
type Motorcycle struct {
	Model         string `json:"model"`
	Plate         string `json:"plate"`
	Color         string `json:"color"`
	Odometer      string `json:"odometer"`
	ChassisNumber string `json:"chassis_number"`
	EngineNumber  string `json:"engine_number"`
}

// Prefill carries identity values selected from a rental.
type Prefill struct {
	Renter     Renter     `json:"renter"`
	Motorcycle Motorcycle `json:"motorcycle"`
}

// Apply copies non-empty values into the record. Empty values leave the
// current field untouched. Linked checklist answers follow the identity.
func (p Prefill) Apply(in *Inspection) {
	values := map[IdentityField]string{
		FieldClientName:    p.Renter.Name,
		FieldRenterRG:      p.Renter.RG,
		FieldVehicleModel:  p.Motorcycle.Model,
		FieldPlate:         p.Motorcycle.Plate,
		FieldColor:         p.Motorcycle.Color,
		FieldOdometer:      p.Motorcycle.Odometer,
		FieldChassisNumber: p.Motorcycle.ChassisNumber,
		FieldEngineNumber:  p.Motorcycle.EngineNumber,
	}
	for _, f := range IdentityFields() {
		if v := values[f]; v != "" {
			_ = in.SetIdentity(f, v)
		}
	}
}
