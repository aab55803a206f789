package types

import (
	"fmt"
	"time"
)

// HSMCurrencyScale is the fixed-point scale of HSMCurrency.Amount: the wire
// value is the target currency amount multiplied by 1000, so 12.99 travels
// as 12990.
const HSMCurrencyScale = 1000

// HSMLanguagePolicy selects how the template language code is resolved
type HSMLanguagePolicy string

const (
	HSMLanguagePolicyFallback      HSMLanguagePolicy = "fallback"
	HSMLanguagePolicyDeterministic HSMLanguagePolicy = "deterministic"
)

// HSMLanguage specifies the language a template is rendered in
type HSMLanguage struct {
	Policy HSMLanguagePolicy `json:"policy,omitempty"`
	Code   string            `json:"code"`
}

// HSMCurrency is a pre-scaled currency amount for template substitution
type HSMCurrency struct {
	CurrencyCode string `json:"currencyCode"`
	Amount       int64  `json:"amount"`
}

// Units returns the amount in major currency units (12990 -> 12.99)
func (c HSMCurrency) Units() float64 {
	return float64(c.Amount) / HSMCurrencyScale
}

// HSMLocalizableParameter substitutes one placeholder of a flat-parameter
// template. Default is always required; currency or dateTime refine how the
// value is localized.
type HSMLocalizableParameter struct {
	Default  string       `json:"default"`
	Currency *HSMCurrency `json:"currency,omitempty"`
	DateTime *time.Time   `json:"dateTime,omitempty"`
}

// HSMComponentType identifies which template slot a component fills
type HSMComponentType string

const (
	HSMComponentTypeHeader HSMComponentType = "header"
	HSMComponentTypeBody   HSMComponentType = "body"
	HSMComponentTypeButton HSMComponentType = "button"
)

// HSMComponentParameterType tags the variant of a component parameter
type HSMComponentParameterType string

const (
	HSMParameterTypeText     HSMComponentParameterType = "text"
	HSMParameterTypeCurrency HSMComponentParameterType = "currency"
	HSMParameterTypeDateTime HSMComponentParameterType = "date_time"
	HSMParameterTypeDocument HSMComponentParameterType = "document"
	HSMParameterTypeImage    HSMComponentParameterType = "image"
	HSMParameterTypeVideo    HSMComponentParameterType = "video"
	HSMParameterTypePayload  HSMComponentParameterType = "payload"
)

// HSMComponentParameter fills a single placeholder of a component-based
// template. Type names the populated field explicitly.
type HSMComponentParameter struct {
	Type     HSMComponentParameterType `json:"type"`
	Text     string                    `json:"text,omitempty"`
	Currency *HSMCurrency              `json:"currency,omitempty"`
	DateTime *time.Time                `json:"date_time,omitempty"`
	Document *Media                    `json:"document,omitempty"`
	Image    *Media                    `json:"image,omitempty"`
	Video    *Media                    `json:"video,omitempty"`
	Payload  string                    `json:"payload,omitempty"`
}

// NewTextParameter substitutes a plain text value
func NewTextParameter(text string) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypeText, Text: text}
}

// NewCurrencyParameter substitutes a currency amount; amount is pre-scaled
// by HSMCurrencyScale
func NewCurrencyParameter(currencyCode string, amount int64) HSMComponentParameter {
	return HSMComponentParameter{
		Type:     HSMParameterTypeCurrency,
		Currency: &HSMCurrency{CurrencyCode: currencyCode, Amount: amount},
	}
}

// NewDateTimeParameter substitutes a localizable timestamp
func NewDateTimeParameter(ts time.Time) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypeDateTime, DateTime: &ts}
}

// NewDocumentParameter substitutes a document header slot
func NewDocumentParameter(url, caption string) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypeDocument, Document: &Media{URL: url, Caption: caption}}
}

// NewImageParameter substitutes an image header slot
func NewImageParameter(url string) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypeImage, Image: &Media{URL: url}}
}

// NewVideoParameter substitutes a video header slot
func NewVideoParameter(url string) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypeVideo, Video: &Media{URL: url}}
}

// NewPayloadParameter substitutes a quick-reply button payload
func NewPayloadParameter(payload string) HSMComponentParameter {
	return HSMComponentParameter{Type: HSMParameterTypePayload, Payload: payload}
}

// HSMComponent fills one slot of a component-based template
type HSMComponent struct {
	Type       HSMComponentType        `json:"type"`
	SubType    string                  `json:"sub_type,omitempty"`
	Index      *int                    `json:"index,omitempty"`
	Parameters []HSMComponentParameter `json:"parameters,omitempty"`
}

// HSMContent is a WhatsApp template message. Two historical parameter shapes
// exist: the flat Params list and the Components list. A valid message uses
// exactly one of them.
type HSMContent struct {
	Namespace    string                    `json:"namespace"`
	TemplateName string                    `json:"templateName"`
	Language     HSMLanguage               `json:"language"`
	Params       []HSMLocalizableParameter `json:"params,omitempty"`
	Components   []HSMComponent            `json:"components,omitempty"`
}

// Validate enforces that exactly one of the two parameter shapes is used
func (h *HSMContent) Validate() error {
	if h.Namespace == "" || h.TemplateName == "" {
		return fmt.Errorf("hsm content requires namespace and templateName")
	}
	if h.Language.Code == "" {
		return fmt.Errorf("hsm content requires a language code")
	}
	if len(h.Params) > 0 && len(h.Components) > 0 {
		return fmt.Errorf("hsm content cannot mix params and components")
	}
	if len(h.Params) == 0 && len(h.Components) == 0 {
		return fmt.Errorf("hsm content requires either params or components")
	}
	return nil
}
