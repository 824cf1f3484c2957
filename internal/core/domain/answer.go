package domain

import (
	"fmt"
	"strings"
)

// Condition is the rating given to a rated checklist item.
type Condition string

// Available conditions.
const (
	ConditionGood             Condition = "good"
	ConditionFair             Condition = "fair"
	ConditionNeedsReplacement Condition = "needs_replacement"
)

// AllConditions returns the conditions in display order.
func AllConditions() []Condition {
	return []Condition{ConditionGood, ConditionFair, ConditionNeedsReplacement}
}

// IsValid returns true if the condition is recognised.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionNeedsReplacement:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Condition) String() string {
	return string(c)
}

// Label returns the upper-case label printed on reports.
func (c Condition) Label() string {
	switch c {
	case ConditionGood:
		return "GOOD"
	case ConditionFair:
		return "FAIR"
	case ConditionNeedsReplacement:
		return "NEEDS REPLACEMENT"
	default:
		return "NOT EVALUATED"
	}
}

// Description returns a human-readable description of the condition.
func (c Condition) Description() string {
	switch c {
	case ConditionGood:
		return "Good"
	case ConditionFair:
		return "Fair"
	case ConditionNeedsReplacement:
		return "Needs replacement"
	default:
		return unknownDescription
	}
}

// ParseCondition accepts the canonical value or a common alias.
func ParseCondition(s string) (Condition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good", "ok", "g":
		return ConditionGood, true
	case "fair", "regular", "f":
		return ConditionFair, true
	case "needs_replacement", "needs-replacement", "replace", "bad", "r":
		return ConditionNeedsReplacement, true
	default:
		return "", false
	}
}

// Answer is the response recorded for one checklist item.
// Rated items use Condition, text and numeric items use Text.
type Answer struct {
	Condition Condition `json:"condition,omitempty"`
	Text      string    `json:"text,omitempty"`
}

// RatedAnswer builds an answer for a rated item.
func RatedAnswer(c Condition) Answer {
	return Answer{Condition: c}
}

// TextAnswer builds an answer for a text or numeric item.
func TextAnswer(text string) Answer {
	return Answer{Text: text}
}

// IsEmpty returns true if the answer carries no value.
func (a Answer) IsEmpty() bool {
	return a.Condition == "" && strings.TrimSpace(a.Text) == ""
}

// Fits returns true if the answer shape matches the item kind.
func (a Answer) Fits(kind ItemKind) bool {
	switch kind {
	case ItemKindRated:
		return a.Text == "" && (a.Condition == "" || a.Condition.IsValid())
	case ItemKindTextEntry, ItemKindNumericWithLabel, ItemKindTextAndPhotoOptional:
		return a.Condition == ""
	default:
		return false
	}
}

// Value returns the answer as display text.
func (a Answer) Value() string {
	if a.Condition != "" {
		return a.Condition.String()
	}
	return a.Text
}

// ParseAnswer builds the answer for item from user text. Rated items
// accept a condition or one of its aliases. An empty string clears the
// answer. Photo-only items take no answer.
func ParseAnswer(item ChecklistItem, s string) (Answer, error) {
	s = strings.TrimSpace(s)
	switch item.Kind {
	case ItemKindRated:
		if s == "" {
			return Answer{}, nil
		}
		c, ok := ParseCondition(s)
		if !ok {
			return Answer{}, fmt.Errorf("%w: %q is not a condition (good, fair, needs_replacement)", ErrInvalidInput, s)
		}
		return RatedAnswer(c), nil
	case ItemKindTextEntry, ItemKindNumericWithLabel, ItemKindTextAndPhotoOptional:
		return TextAnswer(s), nil
	default:
		return Answer{}, fmt.Errorf("%w: %s takes photos only", ErrWrongAnswerKind, item.Name)
	}
}
