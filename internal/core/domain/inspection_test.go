package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhoto(b byte) EncodedImage {
	return EncodeImage("image/jpeg", []byte{b})
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDate_Formats(t *testing.T) {
	d := mustDate(t, "2025-03-10")

	assert.Equal(t, "2025-03-10", d.String())
	assert.Equal(t, "10/03/2025", d.Display())
	assert.Equal(t, "20250310", d.Compact())
	assert.False(t, d.IsZero())

	var zero Date
	assert.Equal(t, "", zero.String())
	assert.Equal(t, "", zero.Display())
}

func TestDate_ParseRejectsGarbage(t *testing.T) {
	_, err := ParseDate("10/03/2025")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	d, err := ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 10, 23, 59, 0, 0, time.Local))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-10"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestInspection_SetIdentity_MirrorsLinkedItems(t *testing.T) {
	in := NewInspection("id", Today())

	require.NoError(t, in.SetIdentity(FieldChassisNumber, "9C2KC1"))
	require.NoError(t, in.SetIdentity(FieldOdometer, "12000"))
	require.NoError(t, in.SetIdentity(FieldPlate, "ABC-1234"))

	assert.Equal(t, "9C2KC1", in.Answers[ItemChassisNumber].Text)
	assert.Equal(t, "12000", in.Answers[ItemInstrumentPanel].Text)
	_, hasPlateItem := in.Answers["plate"]
	assert.False(t, hasPlateItem)

	err := in.SetIdentity(IdentityField("vin"), "x")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestInspection_SetAnswer(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())

	require.NoError(t, in.SetAnswer(schema, ItemFrontTire, RatedAnswer(ConditionFair)))
	assert.Equal(t, ConditionFair, in.Answers[ItemFrontTire].Condition)

	require.NoError(t, in.SetAnswer(schema, ItemEngineNumber, TextAnswer("MTR-77")))
	assert.Equal(t, "MTR-77", in.Identity.EngineNumber)

	require.NoError(t, in.SetAnswer(schema, ItemFinalNotes, TextAnswer("scratch on tank")))
	assert.Equal(t, "scratch on tank", in.FinalNotes)
	_, stored := in.Answers[ItemFinalNotes]
	assert.False(t, stored)

	err := in.SetAnswer(schema, "wheelie_bar", RatedAnswer(ConditionGood))
	assert.True(t, errors.Is(err, ErrUnknownItem))

	err = in.SetAnswer(schema, ItemFrontTire, TextAnswer("ok"))
	assert.True(t, errors.Is(err, ErrWrongAnswerKind))

	err = in.SetAnswer(schema, ItemPhotoFront, TextAnswer("ok"))
	assert.True(t, errors.Is(err, ErrWrongAnswerKind))
}

func TestInspection_AddPhotos_CapsAtFive(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())

	added, err := in.AddPhotos(schema, ItemPhotoFront, []EncodedImage{testPhoto(1), testPhoto(2), testPhoto(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = in.AddPhotos(schema, ItemPhotoFront, []EncodedImage{testPhoto(4), testPhoto(5), testPhoto(6)})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	require.Len(t, in.Photos[ItemPhotoFront], MaxPhotosPerItem)
	assert.Equal(t, testPhoto(1), in.Photos[ItemPhotoFront][0])
	assert.Equal(t, testPhoto(5), in.Photos[ItemPhotoFront][4])
}

func TestInspection_AddPhotos_Rejects(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())

	_, err := in.AddPhotos(schema, "mirror", []EncodedImage{testPhoto(1)})
	assert.True(t, errors.Is(err, ErrUnknownItem))

	_, err = in.AddPhotos(schema, ItemPhotoRear, []EncodedImage{"data:text/plain;base64,aGk="})
	assert.True(t, errors.Is(err, ErrInvalidPayload))
	assert.Empty(t, in.Photos[ItemPhotoRear])
}

func TestInspection_RemovePhoto(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())
	_, err := in.AddPhotos(schema, ItemBattery, []EncodedImage{testPhoto(1), testPhoto(2), testPhoto(3)})
	require.NoError(t, err)

	require.NoError(t, in.RemovePhoto(ItemBattery, 1))
	assert.Equal(t, []EncodedImage{testPhoto(1), testPhoto(3)}, in.Photos[ItemBattery])

	err = in.RemovePhoto(ItemBattery, 2)
	assert.True(t, errors.Is(err, ErrPhotoIndexOutOfRange))
	err = in.RemovePhoto(ItemEngine, 0)
	assert.True(t, errors.Is(err, ErrPhotoIndexOutOfRange))
}

func TestInspection_Signatures(t *testing.T) {
	in := NewInspection("id", Today())
	sig := EncodeImage("image/png", []byte{1, 2})

	require.NoError(t, in.SetSignature(SignatureInspector, sig))
	assert.False(t, in.IsSignableComplete())
	require.NoError(t, in.SetSignature(SignatureRenter, sig))
	assert.True(t, in.IsSignableComplete())

	require.NoError(t, in.SetSignature(SignatureRenter, ""))
	assert.True(t, in.Signature(SignatureRenter).IsAbsent())
	assert.Equal(t, sig, in.Signature(SignatureInspector))

	err := in.SetSignature(SignatureRole("witness"), sig)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	err = in.SetSignature(SignatureRenter, "not-a-data-url")
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestInspection_Clone_IsDeep(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())
	_, err := in.AddPhotos(schema, ItemPhotoFront, []EncodedImage{testPhoto(1)})
	require.NoError(t, err)
	require.NoError(t, in.SetAnswer(schema, ItemBattery, RatedAnswer(ConditionGood)))

	c := in.Clone()
	_, err = c.AddPhotos(schema, ItemPhotoFront, []EncodedImage{testPhoto(2)})
	require.NoError(t, err)
	require.NoError(t, c.SetAnswer(schema, ItemBattery, RatedAnswer(ConditionFair)))

	assert.Len(t, in.Photos[ItemPhotoFront], 1)
	assert.Equal(t, ConditionGood, in.Answers[ItemBattery].Condition)
}

func TestInspection_Normalize(t *testing.T) {
	in := &Inspection{
		Photos: map[string][]EncodedImage{
			ItemPhotoFront: {testPhoto(1), testPhoto(2), testPhoto(3), testPhoto(4), testPhoto(5), testPhoto(6), testPhoto(7)},
		},
	}

	in.Normalize()

	assert.NotNil(t, in.Answers)
	require.Len(t, in.Photos[ItemPhotoFront], MaxPhotosPerItem)
	assert.Equal(t, testPhoto(1), in.Photos[ItemPhotoFront][0])
}

func TestInspection_JSONRoundTrip(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("abc", mustDate(t, "2025-03-10"))
	require.NoError(t, in.SetIdentity(FieldPlate, "ABC-1234"))
	require.NoError(t, in.SetAnswer(schema, ItemRearTire, RatedAnswer(ConditionNeedsReplacement)))
	_, err := in.AddPhotos(schema, ItemPhotoRear, []EncodedImage{testPhoto(9)})
	require.NoError(t, err)

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var back Inspection
	require.NoError(t, json.Unmarshal(b, &back))
	back.Normalize()

	assert.Equal(t, in.Identity, back.Identity)
	assert.Equal(t, in.Date, back.Date)
	assert.Equal(t, in.Answers, back.Answers)
	assert.Equal(t, in.Photos, back.Photos)
}

func TestInspection_Completion(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("id", Today())
	require.NoError(t, in.SetIdentity(FieldOdometer, "100"))
	require.NoError(t, in.SetAnswer(schema, ItemBattery, RatedAnswer(ConditionGood)))
	_, err := in.AddPhotos(schema, ItemPhotoFront, []EncodedImage{testPhoto(1)})
	require.NoError(t, err)

	c := in.Completion(schema)

	assert.Equal(t, 15, c.Required)
	assert.Equal(t, 2, c.Answered)
	assert.Equal(t, 1, c.PhotoCount)
	assert.False(t, c.PhotoComplete)
	assert.False(t, c.Signed)
}

func TestPrefill_Apply(t *testing.T) {
	in := NewInspection("id", Today())
	require.NoError(t, in.SetIdentity(FieldColor, "Red"))

	Prefill{
		Renter:     Renter{Name: "Maria Souza", RG: "12.345.678-9"},
		Motorcycle: Motorcycle{Model: "CG 160", Plate: "ABC-1234", Odometer: "15200", ChassisNumber: "9C2KC"},
	}.Apply(in)

	assert.Equal(t, "Maria Souza", in.Identity.ClientName)
	assert.Equal(t, "Red", in.Identity.Color)
	assert.Equal(t, "15200", in.Answers[ItemInstrumentPanel].Text)
	assert.Equal(t, "9C2KC", in.Answers[ItemChassisNumber].Text)
	_, hasEngine := in.Answers[ItemEngineNumber]
	assert.False(t, hasEngine)
}

func TestReportFileName(t *testing.T) {
	date := mustDate(t, "2025-03-10")

	assert.Equal(t, "Inspection_LocAuto_ABC-1234_20250310.pdf",
		ReportFileName("LocAuto", "ABC-1234", date, ReportFormatPDF))
	assert.Equal(t, "Inspection_LocAuto_NO_PLATE_20250310.pdf",
		ReportFileName("LocAuto", "  ", date, ReportFormatPDF))
	assert.Equal(t, "Inspection_Loc_Auto_AB_12_20250310.xlsx",
		ReportFileName("Loc Auto", "AB/12", date, ReportFormatXLSX))
}
