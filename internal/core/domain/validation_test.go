package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeInspection returns a record that passes every validation rule.
func completeInspection(t *testing.T) *Inspection {
	t.Helper()
	schema := DefaultSchema()
	in := NewInspection("complete", mustDate(t, "2025-03-10"))
	Prefill{
		Renter: Renter{Name: "Maria Souza", RG: "12.345.678-9"},
		Motorcycle: Motorcycle{
			Model: "CG 160", Plate: "ABC-1234", Color: "Red", Odometer: "15200",
			ChassisNumber: "9C2KC1", EngineNumber: "MTR-77",
		},
	}.Apply(in)
	for _, item := range schema.Items() {
		if item.Kind == ItemKindRated {
			require.NoError(t, in.SetAnswer(schema, item.ID, RatedAnswer(ConditionGood)))
		}
	}
	for _, id := range schema.MandatoryPhotoItems() {
		_, err := in.AddPhotos(schema, id, []EncodedImage{testPhoto(1)})
		require.NoError(t, err)
	}
	sig := EncodeImage("image/png", []byte{1})
	require.NoError(t, in.SetSignature(SignatureInspector, sig))
	require.NoError(t, in.SetSignature(SignatureRenter, sig))
	return in
}

func TestValidate_Complete(t *testing.T) {
	res := Validate(completeInspection(t), DefaultSchema())

	assert.True(t, res.OK)
	assert.NoError(t, res.Err())
}

func TestValidate_RequiredFieldOrder(t *testing.T) {
	tests := []struct {
		name  string
		clear []IdentityField
		focus string
	}{
		{"client first", []IdentityField{FieldClientName, FieldPlate}, "client_name"},
		{"model before plate", []IdentityField{FieldPlate, FieldVehicleModel}, "vehicle_model"},
		{"odometer before rg", []IdentityField{FieldRenterRG, FieldOdometer}, "odometer"},
		{"rg last", []IdentityField{FieldRenterRG}, "renter_rg"},
		{"whitespace is empty", []IdentityField{FieldColor}, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := completeInspection(t)
			for _, f := range tt.clear {
				value := ""
				if tt.name == "whitespace is empty" {
					value = "   "
				}
				require.NoError(t, in.SetIdentity(f, value))
			}

			res := Validate(in, DefaultSchema())

			assert.False(t, res.OK)
			assert.Equal(t, ValidationMissingField, res.Code)
			assert.Equal(t, tt.focus, res.Focus)
		})
	}
}

func TestValidate_MissingDate(t *testing.T) {
	in := completeInspection(t)
	in.Date = Date{}
	require.NoError(t, in.SetIdentity(FieldRenterRG, ""))

	res := Validate(in, DefaultSchema())

	assert.Equal(t, "date", res.Focus)
}

func TestValidate_FieldsBeforePhotos(t *testing.T) {
	in := NewInspection("empty", Today())

	res := Validate(in, DefaultSchema())

	assert.Equal(t, ValidationMissingField, res.Code)
	assert.Equal(t, "client_name", res.Focus)
}

func TestValidate_MissingPhoto(t *testing.T) {
	in := completeInspection(t)
	require.NoError(t, in.RemovePhoto(ItemPhotoLeftSide, 0))
	require.NoError(t, in.SetSignature(SignatureRenter, ""))

	res := Validate(in, DefaultSchema())

	assert.Equal(t, ValidationMissingPhoto, res.Code)
	assert.Equal(t, ItemPhotoLeftSide, res.Focus)
	assert.Contains(t, res.Reason, "Left Side Photo")
}

func TestValidate_IncompleteChecklist(t *testing.T) {
	in := completeInspection(t)
	delete(in.Answers, ItemTransmission)
	require.NoError(t, in.SetSignature(SignatureInspector, ""))

	res := Validate(in, DefaultSchema())

	assert.Equal(t, ValidationIncompleteItems, res.Code)
	assert.Equal(t, ItemTransmission, res.Focus)
}

func TestValidate_OptionalItemsNeverRequired(t *testing.T) {
	in := completeInspection(t)
	in.FinalNotes = ""
	delete(in.Photos, ItemFinalNotes)

	assert.True(t, Validate(in, DefaultSchema()).OK)
}

func TestValidate_MissingSignature(t *testing.T) {
	in := completeInspection(t)
	require.NoError(t, in.SetSignature(SignatureRenter, ""))

	res := Validate(in, DefaultSchema())

	assert.Equal(t, ValidationMissingSignatures, res.Code)
	assert.Equal(t, "renter", res.Focus)
	err := res.Err()
	assert.True(t, errors.Is(err, ErrValidation))
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, res, vErr.Result)
}
