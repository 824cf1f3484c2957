package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_Shape(t *testing.T) {
	s := DefaultSchema()

	assert.Equal(t, 20, s.Len())
	assert.Len(t, s.Categories(), 10)
	assert.Equal(t, CategoryInitialInformation, s.Categories()[0])
	assert.Equal(t, CategoryNotes, s.Categories()[9])
}

func TestDefaultSchema_UniqueIDsAndKnownCategories(t *testing.T) {
	s := DefaultSchema()
	cats := make(map[Category]bool)
	for _, c := range s.Categories() {
		cats[c] = true
	}

	seen := make(map[string]bool)
	for _, item := range s.Items() {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
		assert.True(t, cats[item.Category], "item %s has unknown category", item.ID)
		assert.True(t, item.Kind.IsValid(), "item %s has invalid kind", item.ID)
	}
}

func TestDefaultSchema_ItemsIn(t *testing.T) {
	s := DefaultSchema()

	electrical := s.ItemsIn(CategoryElectrical)
	require.Len(t, electrical, 4)
	assert.Equal(t, ItemHeadlight, electrical[0].ID)
	assert.Equal(t, ItemBattery, electrical[3].ID)

	photos := s.ItemsIn(CategoryGeneralPhotos)
	require.Len(t, photos, 4)
	for _, p := range photos {
		assert.Equal(t, ItemKindPhotoOnly, p.Kind)
	}

	assert.Empty(t, s.ItemsIn(Category("Paint")))
}

func TestDefaultSchema_Item(t *testing.T) {
	s := DefaultSchema()

	item, ok := s.Item(ItemInstrumentPanel)
	require.True(t, ok)
	assert.Equal(t, ItemKindNumericWithLabel, item.Kind)

	_, ok = s.Item("wheelie_bar")
	assert.False(t, ok)
}

func TestDefaultSchema_MandatoryPhotos(t *testing.T) {
	assert.Equal(t,
		[]string{ItemPhotoFront, ItemPhotoRear, ItemPhotoLeftSide, ItemPhotoRightSide},
		DefaultSchema().MandatoryPhotoItems())
}

func TestSchema_ReturnsCopies(t *testing.T) {
	s := DefaultSchema()
	items := s.Items()
	items[0].Name = "changed"

	item, _ := s.Item(ItemInstrumentPanel)
	assert.Equal(t, "Instrument Panel", item.Name)
}

func TestItemKind_RequiresAnswer(t *testing.T) {
	tests := []struct {
		kind     ItemKind
		expected bool
	}{
		{ItemKindRated, true},
		{ItemKindTextEntry, true},
		{ItemKindNumericWithLabel, true},
		{ItemKindPhotoOnly, false},
		{ItemKindTextAndPhotoOptional, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.RequiresAnswer())
			assert.NotEqual(t, unknownDescription, tt.kind.Description())
		})
	}

	assert.False(t, ItemKind("slider").IsValid())
	assert.Equal(t, unknownDescription, ItemKind("slider").Description())
}

func TestCondition(t *testing.T) {
	assert.Equal(t, "GOOD", ConditionGood.Label())
	assert.Equal(t, "FAIR", ConditionFair.Label())
	assert.Equal(t, "NEEDS REPLACEMENT", ConditionNeedsReplacement.Label())
	assert.Equal(t, "NOT EVALUATED", Condition("").Label())
	assert.Len(t, AllConditions(), 3)

	c, ok := ParseCondition(" Replace ")
	assert.True(t, ok)
	assert.Equal(t, ConditionNeedsReplacement, c)

	_, ok = ParseCondition("excellent")
	assert.False(t, ok)
}

func TestAnswer_Fits(t *testing.T) {
	assert.True(t, RatedAnswer(ConditionGood).Fits(ItemKindRated))
	assert.False(t, RatedAnswer(Condition("shiny")).Fits(ItemKindRated))
	assert.False(t, TextAnswer("x").Fits(ItemKindRated))
	assert.True(t, TextAnswer("12000").Fits(ItemKindNumericWithLabel))
	assert.False(t, RatedAnswer(ConditionGood).Fits(ItemKindTextEntry))
	assert.False(t, TextAnswer("x").Fits(ItemKindPhotoOnly))
}

func TestAnswer_IsEmpty(t *testing.T) {
	assert.True(t, Answer{}.IsEmpty())
	assert.True(t, TextAnswer("   ").IsEmpty())
	assert.False(t, TextAnswer("0").IsEmpty())
	assert.False(t, RatedAnswer(ConditionFair).IsEmpty())
}

func TestParseAnswer(t *testing.T) {
	schema := DefaultSchema()
	item := func(id string) ChecklistItem {
		it, ok := schema.Item(id)
		require.True(t, ok)
		return it
	}

	tests := []struct {
		name    string
		item    string
		input   string
		want    Answer
		wantErr error
	}{
		{"rated alias", ItemFrontTire, "ok", RatedAnswer(ConditionGood), nil},
		{"rated clear", ItemFrontTire, "  ", Answer{}, nil},
		{"rated unknown", ItemFrontTire, "excellent", Answer{}, ErrInvalidInput},
		{"numeric", ItemInstrumentPanel, " 15200 ", TextAnswer("15200"), nil},
		{"notes", ItemFinalNotes, "scratch on tank", TextAnswer("scratch on tank"), nil},
		{"photo only", ItemPhotoFront, "good", Answer{}, ErrWrongAnswerKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswer(item(tt.item), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
