package domain

// ItemKind determines how a checklist item is answered.
type ItemKind string

// Available item kinds.
const (
	// ItemKindRated is answered with a Condition.
	ItemKindRated ItemKind = "rated"

	// ItemKindTextEntry is answered with free text.
	ItemKindTextEntry ItemKind = "text_entry"

	// ItemKindNumericWithLabel is answered with a numeric reading such as the odometer.
	ItemKindNumericWithLabel ItemKind = "numeric_with_label"

	// ItemKindPhotoOnly carries photos and no answer.
	ItemKindPhotoOnly ItemKind = "photo_only"

	// ItemKindTextAndPhotoOptional carries optional notes and optional photos.
	ItemKindTextAndPhotoOptional ItemKind = "text_and_photo_optional"
)

// IsValid returns true if the item kind is recognised.
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindRated, ItemKindTextEntry, ItemKindNumericWithLabel,
		ItemKindPhotoOnly, ItemKindTextAndPhotoOptional:
		return true
	default:
		return false
	}
}

// RequiresAnswer returns true if an item of this kind must be answered
// before a report can be generated.
func (k ItemKind) RequiresAnswer() bool {
	switch k {
	case ItemKindRated, ItemKindTextEntry, ItemKindNumericWithLabel:
		return true
	default:
		return false
	}
}

// IsTextual returns true if the answer is stored as text.
func (k ItemKind) IsTextual() bool {
	return k == ItemKindTextEntry || k == ItemKindNumericWithLabel
}

// String returns the string representation.
func (k ItemKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k ItemKind) Description() string {
	switch k {
	case ItemKindRated:
		return "Condition rating"
	case ItemKindTextEntry:
		return "Text entry"
	case ItemKindNumericWithLabel:
		return "Numeric reading"
	case ItemKindPhotoOnly:
		return "Photos only"
	case ItemKindTextAndPhotoOptional:
		return "Optional notes and photos"
	default:
		return unknownDescription
	}
}

// Category groups checklist items under a report heading.
type Category string

// Categories in report order.
const (
	CategoryInitialInformation    Category = "Initial Information"
	CategoryVehicleIdentification Category = "Vehicle Identification"
	CategoryGeneralPhotos         Category = "General Vehicle Photos"
	CategoryTires                 Category = "Tires"
	CategoryBrakes                Category = "Brake System"
	CategoryElectrical            Category = "Electrical System"
	CategoryMechanical            Category = "Mechanical"
	CategorySuspension            Category = "Suspension"
	CategoryBodywork              Category = "Bodywork & Accessories"
	CategoryNotes                 Category = "Notes"
)

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Checklist item identifiers.
const (
	ItemInstrumentPanel = "instrument_panel"
	ItemChassisNumber   = "chassis_number"
	ItemEngineNumber    = "engine_number"
	ItemPhotoFront      = "photo_front"
	ItemPhotoRear       = "photo_rear"
	ItemPhotoLeftSide   = "photo_left_side"
	ItemPhotoRightSide  = "photo_right_side"
	ItemFrontTire       = "front_tire"
	ItemRearTire        = "rear_tire"
	ItemBrakeSystem     = "brake_system"
	ItemHeadlight       = "headlight"
	ItemTailLight       = "tail_light"
	ItemTurnSignals     = "turn_signals"
	ItemBattery         = "battery"
	ItemEngine          = "engine"
	ItemTransmission    = "transmission"
	ItemFrontSuspension = "front_suspension"
	ItemRearSuspension  = "rear_suspension"
	ItemTankAndSeat     = "tank_and_seat"
	ItemFinalNotes      = "final_notes"
)

// ChecklistItem is one entry of the inspection checklist.
type ChecklistItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Kind     ItemKind `json:"kind"`
}

// Schema is an ordered, immutable checklist definition.
type Schema struct {
	items      []ChecklistItem
	categories []Category
	index      map[string]int
	mandatory  []string
}

// NewSchema builds a schema from items and the fixed category order.
// Items keep their relative order within each category.
func NewSchema(categories []Category, items []ChecklistItem, mandatoryPhotos []string) *Schema {
	s := &Schema{
		items:      append([]ChecklistItem(nil), items...),
		categories: append([]Category(nil), categories...),
		index:      make(map[string]int, len(items)),
		mandatory:  append([]string(nil), mandatoryPhotos...),
	}
	for i, item := range s.items {
		s.index[item.ID] = i
	}
	return s
}

// Items returns all checklist items in definition order.
func (s *Schema) Items() []ChecklistItem {
	return append([]ChecklistItem(nil), s.items...)
}

// Categories returns the categories in report order.
func (s *Schema) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

// ItemsIn returns the items of one category in definition order.
func (s *Schema) ItemsIn(category Category) []ChecklistItem {
	var result []ChecklistItem
	for _, item := range s.items {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result
}

// Item looks up an item by id.
func (s *Schema) Item(id string) (ChecklistItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return ChecklistItem{}, false
	}
	return s.items[i], true
}

// MandatoryPhotoItems returns the ids of the items that need at least one photo.
func (s *Schema) MandatoryPhotoItems() []string {
	return append([]string(nil), s.mandatory...)
}

// Len returns the number of items.
func (s *Schema) Len() int {
	return len(s.items)
}

var defaultSchema = NewSchema(
	[]Category{
		CategoryInitialInformation,
		CategoryVehicleIdentification,
		CategoryGeneralPhotos,
		CategoryTires,
		CategoryBrakes,
		CategoryElectrical,
		CategoryMechanical,
		CategorySuspension,
		CategoryBodywork,
		CategoryNotes,
	},
	[]ChecklistItem{
		{ID: ItemInstrumentPanel, Name: "Instrument Panel", Category: CategoryInitialInformation, Kind: ItemKindNumericWithLabel},
		{ID: ItemChassisNumber, Name: "Chassis Number", Category: CategoryVehicleIdentification, Kind: ItemKindTextEntry},
		{ID: ItemEngineNumber, Name: "Engine Number", Category: CategoryVehicleIdentification, Kind: ItemKindTextEntry},
		{ID: ItemPhotoFront, Name: "Front Photo", Category: CategoryGeneralPhotos, Kind: ItemKindPhotoOnly},
		{ID: ItemPhotoRear, Name: "Rear Photo", Category: CategoryGeneralPhotos, Kind: ItemKindPhotoOnly},
		{ID: ItemPhotoLeftSide, Name: "Left Side Photo", Category: CategoryGeneralPhotos, Kind: ItemKindPhotoOnly},
		{ID: ItemPhotoRightSide, Name: "Right Side Photo", Category: CategoryGeneralPhotos, Kind: ItemKindPhotoOnly},
		{ID: ItemFrontTire, Name: "Front Tire", Category: CategoryTires, Kind: ItemKindRated},
		{ID: ItemRearTire, Name: "Rear Tire", Category: CategoryTires, Kind: ItemKindRated},
		{ID: ItemBrakeSystem, Name: "Front/Rear Brake System", Category: CategoryBrakes, Kind: ItemKindRated},
		{ID: ItemHeadlight, Name: "Headlight", Category: CategoryElectrical, Kind: ItemKindRated},
		{ID: ItemTailLight, Name: "Tail Light", Category: CategoryElectrical, Kind: ItemKindRated},
		{ID: ItemTurnSignals, Name: "Turn Signals (Front/Rear)", Category: CategoryElectrical, Kind: ItemKindRated},
		{ID: ItemBattery, Name: "Battery", Category: CategoryElectrical, Kind: ItemKindRated},
		{ID: ItemEngine, Name: "Engine", Category: CategoryMechanical, Kind: ItemKindRated},
		{ID: ItemTransmission, Name: "Transmission", Category: CategoryMechanical, Kind: ItemKindRated},
		{ID: ItemFrontSuspension, Name: "Front Suspension", Category: CategorySuspension, Kind: ItemKindRated},
		{ID: ItemRearSuspension, Name: "Rear Suspension", Category: CategorySuspension, Kind: ItemKindRated},
		{ID: ItemTankAndSeat, Name: "Tank and Seat", Category: CategoryBodywork, Kind: ItemKindRated},
		{ID: ItemFinalNotes, Name: "Final Notes (Optional)", Category: CategoryNotes, Kind: ItemKindTextAndPhotoOptional},
	},
	[]string{ItemPhotoFront, ItemPhotoRear, ItemPhotoLeftSide, ItemPhotoRightSide},
)

// DefaultSchema returns the motorcycle inspection checklist.
func DefaultSchema() *Schema {
	return defaultSchema
}
