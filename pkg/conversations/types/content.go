package types

import (
	"fmt"
)

// ContentType names the variant populated inside a MessageContent
type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeImage    ContentType = "image"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeVideo    ContentType = "video"
	ContentTypeFile     ContentType = "file"
	ContentTypeLocation ContentType = "location"
	ContentTypeEmail    ContentType = "email"
	ContentTypeHSM      ContentType = "hsm"
)

// Media represents a remote file reference with an optional caption
type Media struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Location represents a geographic coordinate pair
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MessageContent is the payload of a single message. The variant is
// discriminated by which single field is present on the wire, not by a
// separate type tag; use the New*Content constructors so only one field is
// ever set.
type MessageContent struct {
	Text     *string       `json:"text,omitempty"`
	Image    *Media        `json:"image,omitempty"`
	Audio    *Media        `json:"audio,omitempty"`
	Video    *Media        `json:"video,omitempty"`
	File     *Media        `json:"file,omitempty"`
	Location *Location     `json:"location,omitempty"`
	Email    *EmailContent `json:"email,omitempty"`
	HSM      *HSMContent   `json:"hsm,omitempty"`
}

// NewTextContent returns content carrying a plain text message
func NewTextContent(text string) MessageContent {
	return MessageContent{Text: &text}
}

// NewImageContent returns content carrying an image by URL
func NewImageContent(url, caption string) MessageContent {
	return MessageContent{Image: &Media{URL: url, Caption: caption}}
}

// NewAudioContent returns content carrying an audio clip by URL
func NewAudioContent(url string) MessageContent {
	return MessageContent{Audio: &Media{URL: url}}
}

// NewVideoContent returns content carrying a video by URL
func NewVideoContent(url, caption string) MessageContent {
	return MessageContent{Video: &Media{URL: url, Caption: caption}}
}

// NewFileContent returns content carrying an arbitrary file by URL
func NewFileContent(url, caption string) MessageContent {
	return MessageContent{File: &Media{URL: url, Caption: caption}}
}

// NewLocationContent returns content carrying a geographic location
func NewLocationContent(latitude, longitude float64) MessageContent {
	return MessageContent{Location: &Location{Latitude: latitude, Longitude: longitude}}
}

// NewEmailContent returns content carrying a full email composition
func NewEmailContent(email *EmailContent) MessageContent {
	return MessageContent{Email: email}
}

// NewHSMContent returns content carrying a WhatsApp template message
func NewHSMContent(hsm *HSMContent) MessageContent {
	return MessageContent{HSM: hsm}
}

// Type returns the populated variant, or an empty string when the content is
// empty or ambiguous
func (c *MessageContent) Type() ContentType {
	var found ContentType
	count := 0
	for t, set := range map[ContentType]bool{
		ContentTypeText:     c.Text != nil,
		ContentTypeImage:    c.Image != nil,
		ContentTypeAudio:    c.Audio != nil,
		ContentTypeVideo:    c.Video != nil,
		ContentTypeFile:     c.File != nil,
		ContentTypeLocation: c.Location != nil,
		ContentTypeEmail:    c.Email != nil,
		ContentTypeHSM:      c.HSM != nil,
	} {
		if set {
			found = t
			count++
		}
	}
	if count != 1 {
		return ""
	}
	return found
}

// Validate checks that exactly one content variant is populated, and that the
// variant itself is well formed
func (c *MessageContent) Validate() error {
	count := 0
	for _, set := range []bool{
		c.Text != nil, c.Image != nil, c.Audio != nil, c.Video != nil,
		c.File != nil, c.Location != nil, c.Email != nil, c.HSM != nil,
	} {
		if set {
			count++
		}
	}

	if count == 0 {
		return fmt.Errorf("message content is empty")
	}
	if count > 1 {
		return fmt.Errorf("message content has %d variants set, expected exactly one", count)
	}

	if c.HSM != nil {
		return c.HSM.Validate()
	}
	return nil
}
