// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// BinaryAnswer is the answer to a swipe-style policy statement.
type BinaryAnswer string

const (
	AnswerAgree    BinaryAnswer = "agree"
	AnswerDisagree BinaryAnswer = "disagree"
	AnswerUnsure   BinaryAnswer = "unsure"
)

// Likert and slider bounds.
const (
	LikertMin = 1
	LikertMax = 5
	LikertMid = 3
	SliderMin = 0
	SliderMax = 10
	SliderMid = 5
)

// ResponseValue is a tagged variant with one case per assessment modality.
// Kind selects which of the remaining fields is meaningful. Build values with
// Binary, Likert, Slider or Vignette.
type ResponseValue struct {
	Kind ItemKind `json:"kind" yaml:"kind"`

	Answer BinaryAnswer `json:"answer,omitempty" yaml:"answer,omitempty"`
	Likert int          `json:"likert,omitempty" yaml:"likert,omitempty"`
	Tick   int          `json:"tick,omitempty" yaml:"tick,omitempty"`

	VignetteID string `json:"vignette_id,omitempty" yaml:"vignette_id,omitempty"`
	OptionID   string `json:"option_id,omitempty" yaml:"option_id,omitempty"`
}

// Binary returns a binary response value.
func Binary(a BinaryAnswer) ResponseValue {
	return ResponseValue{Kind: ItemBinary, Answer: a}
}

// Likert returns a 1-5 Likert response value.
func Likert(v int) ResponseValue {
	return ResponseValue{Kind: ItemLikert, Likert: v}
}

// Slider returns a 0-10 slider tick response value.
func Slider(tick int) ResponseValue {
	return ResponseValue{Kind: ItemSlider, Tick: tick}
}

// Vignette returns a forced-choice vignette selection.
func Vignette(vignetteID, optionID string) ResponseValue {
	return ResponseValue{Kind: ItemVignette, VignetteID: vignetteID, OptionID: optionID}
}

// Validate checks that the value is within its modality's valid range.
func (v ResponseValue) Validate() error {
	switch v.Kind {
	case ItemBinary:
		switch v.Answer {
		case AnswerAgree, AnswerDisagree, AnswerUnsure:
			return nil
		}
		return fmt.Errorf("binary answer %q: must be agree, disagree or unsure", v.Answer)
	case ItemLikert:
		if v.Likert < LikertMin || v.Likert > LikertMax {
			return fmt.Errorf("likert value %d out of range %d-%d", v.Likert, LikertMin, LikertMax)
		}
		return nil
	case ItemSlider:
		if v.Tick < SliderMin || v.Tick > SliderMax {
			return fmt.Errorf("slider tick %d out of range %d-%d", v.Tick, SliderMin, SliderMax)
		}
		return nil
	case ItemVignette:
		if v.OptionID == "" {
			return fmt.Errorf("vignette selection has no option")
		}
		return nil
	default:
		return fmt.Errorf("unknown response kind %q", v.Kind)
	}
}

// IsUnsure reports whether the value is a binary "unsure".
func (v ResponseValue) IsUnsure() bool {
	return v.Kind == ItemBinary && v.Answer == AnswerUnsure
}

// String renders the value compactly for tables and logs.
func (v ResponseValue) String() string {
	switch v.Kind {
	case ItemBinary:
		return string(v.Answer)
	case ItemLikert:
		return fmt.Sprintf("likert:%d", v.Likert)
	case ItemSlider:
		return fmt.Sprintf("slider:%d", v.Tick)
	case ItemVignette:
		return fmt.Sprintf("vignette:%s/%s", v.VignetteID, v.OptionID)
	default:
		return string(v.Kind)
	}
}

// ResponseEvent is one answer to one item. Events are immutable; a later event
// for the same item supersedes an earlier one.
type ResponseEvent struct {
	// ID is assigned by the response repository when the event is stored.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	ItemID     string        `json:"item_id" yaml:"item_id"`
	Value      ResponseValue `json:"value" yaml:"value"`
	AnsweredAt time.Time     `json:"answered_at" yaml:"answered_at"`
}

// ResponseSet is the on-disk form of a user's responses (import files, fixtures).
type ResponseSet struct {
	UserID    string          `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Responses []ResponseEvent `json:"responses" yaml:"responses"`
}
