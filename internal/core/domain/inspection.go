package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MaxPhotosPerItem is the photo cap for a single checklist item.
const MaxPhotosPerItem = 5

// KeyPrefix namespaces every key motocheck writes to the key-value store.
const KeyPrefix = "motocheck."

// InspectionKey is the storage key of the current inspection record.
const InspectionKey = KeyPrefix + "inspection"

// Date is a calendar date without time of day.
// The zero value means "not set".
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local date.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date must be YYYY-MM-DD: %q", ErrInvalidInput, s)
	}
	return Date{t: t}, nil
}

// IsZero returns true if the date is not set.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String returns YYYY-MM-DD, or "" when not set.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Display returns DD/MM/YYYY, or "" when not set.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("02/01/2006")
}

// Compact returns YYYYMMDD, or "" when not set.
func (d Date) Compact() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("20060102")
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD" or "".
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText lets YAML and TOML encoders print the date.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IdentityField names one identity field of an inspection.
type IdentityField string

// Identity fields, in report order.
const (
	FieldClientName    IdentityField = "client_name"
	FieldRenterRG      IdentityField = "renter_rg"
	FieldVehicleModel  IdentityField = "vehicle_model"
	FieldPlate         IdentityField = "plate"
	FieldColor         IdentityField = "color"
	FieldOdometer      IdentityField = "odometer"
	FieldChassisNumber IdentityField = "chassis_number"
	FieldEngineNumber  IdentityField = "engine_number"
)

// FieldDate is the focus target reported when the inspection date is missing.
const FieldDate IdentityField = "date"

// IdentityFields returns the identity fields in report order.
func IdentityFields() []IdentityField {
	return []IdentityField{
		FieldClientName, FieldRenterRG, FieldVehicleModel, FieldPlate,
		FieldColor, FieldOdometer, FieldChassisNumber, FieldEngineNumber,
	}
}

// IsValid returns true if the field is recognised.
func (f IdentityField) IsValid() bool {
	switch f {
	case FieldClientName, FieldRenterRG, FieldVehicleModel, FieldPlate,
		FieldColor, FieldOdometer, FieldChassisNumber, FieldEngineNumber:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f IdentityField) String() string {
	return string(f)
}

// Label returns the human-readable field label.
func (f IdentityField) Label() string {
	switch f {
	case FieldClientName:
		return "Client"
	case FieldRenterRG:
		return "Renter RG"
	case FieldVehicleModel:
		return "Model"
	case FieldPlate:
		return "Plate"
	case FieldColor:
		return "Color"
	case FieldOdometer:
		return "Odometer"
	case FieldChassisNumber:
		return "Chassis"
	case FieldEngineNumber:
		return "Engine"
	case FieldDate:
		return "Date"
	default:
		return unknownDescription
	}
}

// Identity holds who and what is being inspected.
type Identity struct {
	ClientName    string `json:"client_name" yaml:"client_name"`
	RenterRG      string `json:"renter_rg" yaml:"renter_rg"`
	VehicleModel  string `json:"vehicle_model" yaml:"vehicle_model"`
	Plate         string `json:"plate" yaml:"plate"`
	Color         string `json:"color" yaml:"color"`
	Odometer      string `json:"odometer" yaml:"odometer"`
	ChassisNumber string `json:"chassis_number" yaml:"chassis_number"`
	EngineNumber  string `json:"engine_number" yaml:"engine_number"`
}

// Get returns the value of one field.
func (id *Identity) Get(f IdentityField) string {
	switch f {
	case FieldClientName:
		return id.ClientName
	case FieldRenterRG:
		return id.RenterRG
	case FieldVehicleModel:
		return id.VehicleModel
	case FieldPlate:
		return id.Plate
	case FieldColor:
		return id.Color
	case FieldOdometer:
		return id.Odometer
	case FieldChassisNumber:
		return id.ChassisNumber
	case FieldEngineNumber:
		return id.EngineNumber
	default:
		return ""
	}
}

func (id *Identity) set(f IdentityField, v string) {
	switch f {
	case FieldClientName:
		id.ClientName = v
	case FieldRenterRG:
		id.RenterRG = v
	case FieldVehicleModel:
		id.VehicleModel = v
	case FieldPlate:
		id.Plate = v
	case FieldColor:
		id.Color = v
	case FieldOdometer:
		id.Odometer = v
	case FieldChassisNumber:
		id.ChassisNumber = v
	case FieldEngineNumber:
		id.EngineNumber = v
	}
}

// LinkedItems maps identity fields to the checklist items that mirror them.
// Writing either side of a pair writes both.
var LinkedItems = map[IdentityField]string{
	FieldChassisNumber: ItemChassisNumber,
	FieldEngineNumber:  ItemEngineNumber,
	FieldOdometer:      ItemInstrumentPanel,
}

func linkedField(itemID string) (IdentityField, bool) {
	for f, id := range LinkedItems {
		if id == itemID {
			return f, true
		}
	}
	return "", false
}

// SignatureRole identifies who signed.
type SignatureRole string

// Signature roles.
const (
	SignatureInspector SignatureRole = "inspector"
	SignatureRenter    SignatureRole = "renter"
)

// IsValid returns true if the role is recognised.
func (r SignatureRole) IsValid() bool {
	return r == SignatureInspector || r == SignatureRenter
}

// String returns the string representation.
func (r SignatureRole) String() string {
	return string(r)
}

// Inspection is one vehicle inspection record.
type Inspection struct {
	ID                 string                    `json:"id" yaml:"id"`
	Identity           Identity                  `json:"identity" yaml:"identity"`
	Date               Date                      `json:"date" yaml:"date"`
	Answers            map[string]Answer         `json:"answers" yaml:"answers"`
	FinalNotes         string                    `json:"final_notes" yaml:"final_notes"`
	Photos             map[string][]EncodedImage `json:"photos" yaml:"-"`
	InspectorSignature EncodedImage              `json:"inspector_signature,omitempty" yaml:"-"`
	RenterSignature    EncodedImage              `json:"renter_signature,omitempty" yaml:"-"`
	UpdatedAt          time.Time                 `json:"updated_at" yaml:"updated_at"`
}

// NewInspection returns an empty record dated today.
func NewInspection(id string, today Date) *Inspection {
	return &Inspection{
		ID:      id,
		Date:    today,
		Answers: make(map[string]Answer),
		Photos:  make(map[string][]EncodedImage),
	}
}

// Clone returns a deep copy.
func (in *Inspection) Clone() *Inspection {
	out := *in
	out.Answers = make(map[string]Answer, len(in.Answers))
	for k, v := range in.Answers {
		out.Answers[k] = v
	}
	out.Photos = make(map[string][]EncodedImage, len(in.Photos))
	for k, v := range in.Photos {
		out.Photos[k] = append([]EncodedImage(nil), v...)
	}
	return &out
}

// Normalize repairs a record read from storage: nil maps are
// allocated and photo lists over the cap keep their first entries.
func (in *Inspection) Normalize() {
	if in.Answers == nil {
		in.Answers = make(map[string]Answer)
	}
	if in.Photos == nil {
		in.Photos = make(map[string][]EncodedImage)
	}
	for id, photos := range in.Photos {
		if len(photos) > MaxPhotosPerItem {
			in.Photos[id] = photos[:MaxPhotosPerItem]
		}
	}
}

// SetIdentity writes an identity field and its linked checklist answer.
func (in *Inspection) SetIdentity(f IdentityField, value string) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	in.Identity.set(f, value)
	if itemID, ok := LinkedItems[f]; ok {
		in.Answers[itemID] = TextAnswer(value)
	}
	return nil
}

// SetAnswer records the answer for an item and mirrors linked identity fields.
// The notes item writes the shared FinalNotes slot.
func (in *Inspection) SetAnswer(schema *Schema, itemID string, answer Answer) error {
	item, ok := schema.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	if !answer.Fits(item.Kind) {
		return fmt.Errorf("%w: %s is %s", ErrWrongAnswerKind, itemID, item.Kind.Description())
	}
	if item.Kind == ItemKindTextAndPhotoOptional {
		in.FinalNotes = answer.Text
		return nil
	}
	in.Answers[itemID] = answer
	if f, linked := linkedField(itemID); linked {
		in.Identity.set(f, answer.Text)
	}
	return nil
}

// AnswerFor returns the answer recorded for an item.
func (in *Inspection) AnswerFor(item ChecklistItem) Answer {
	if item.Kind == ItemKindTextAndPhotoOptional {
		return TextAnswer(in.FinalNotes)
	}
	if f, linked := linkedField(item.ID); linked {
		if v := in.Identity.Get(f); v != "" {
			return TextAnswer(v)
		}
	}
	return in.Answers[item.ID]
}

// AddPhotos appends photos to an item, keeping the oldest entries when the
// result would exceed MaxPhotosPerItem. It returns how many were kept.
func (in *Inspection) AddPhotos(schema *Schema, itemID string, photos []EncodedImage) (int, error) {
	if _, ok := schema.Item(itemID); !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	for _, p := range photos {
		if !p.IsValid() {
			return 0, fmt.Errorf("%w: photo for %s", ErrInvalidPayload, itemID)
		}
	}
	existing := in.Photos[itemID]
	merged := append(append([]EncodedImage(nil), existing...), photos...)
	if len(merged) > MaxPhotosPerItem {
		merged = merged[:MaxPhotosPerItem]
	}
	in.Photos[itemID] = merged
	return len(merged) - len(existing), nil
}

// RemovePhoto deletes the photo at index from an item.
func (in *Inspection) RemovePhoto(itemID string, index int) error {
	photos := in.Photos[itemID]
	if index < 0 || index >= len(photos) {
		return fmt.Errorf("%w: %s has %d photos, index %d", ErrPhotoIndexOutOfRange, itemID, len(photos), index)
	}
	updated := make([]EncodedImage, 0, len(photos)-1)
	updated = append(updated, photos[:index]...)
	updated = append(updated, photos[index+1:]...)
	in.Photos[itemID] = updated
	return nil
}

// Signature returns the signature for a role.
func (in *Inspection) Signature(role SignatureRole) EncodedImage {
	if role == SignatureRenter {
		return in.RenterSignature
	}
	return in.InspectorSignature
}

// SetSignature stores a signature; an empty payload clears it.
func (in *Inspection) SetSignature(role SignatureRole, sig EncodedImage) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: signature role %q", ErrInvalidInput, role)
	}
	if !sig.IsAbsent() && !sig.IsValid() {
		return fmt.Errorf("%w: %s signature", ErrInvalidPayload, role)
	}
	if role == SignatureRenter {
		in.RenterSignature = sig
	} else {
		in.InspectorSignature = sig
	}
	return nil
}

// IsPhotoComplete returns true if every mandatory photo item has a photo.
func (in *Inspection) IsPhotoComplete(schema *Schema) bool {
	for _, id := range schema.MandatoryPhotoItems() {
		if len(in.Photos[id]) == 0 {
			return false
		}
	}
	return true
}

// IsSignableComplete returns true if both signatures are present.
func (in *Inspection) IsSignableComplete() bool {
	return !in.InspectorSignature.IsAbsent() && !in.RenterSignature.IsAbsent()
}

// Completion summarises how far an inspection is from being reportable.
type Completion struct {
	Answered      int  `json:"answered"`
	Required      int  `json:"required"`
	PhotoComplete bool `json:"photo_complete"`
	Signed        bool `json:"signed"`
	PhotoCount    int  `json:"photo_count"`
}

// Completion computes the current progress against a schema.
func (in *Inspection) Completion(schema *Schema) Completion {
	c := Completion{
		PhotoComplete: in.IsPhotoComplete(schema),
		Signed:        in.IsSignableComplete(),
	}
	for _, item := range schema.Items() {
		c.PhotoCount += len(in.Photos[item.ID])
		if !item.Kind.RequiresAnswer() {
			continue
		}
		c.Required++
		if !in.AnswerFor(item).IsEmpty() {
			c.Answered++
		}
	}
	return c
}
