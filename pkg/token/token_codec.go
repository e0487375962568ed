// Package token encodes an item descriptor into the plain-text claim token carried
// by the emailed QR code, and recovers the item identifier from a scanned token.
package token

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/entities"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	Header  = "Item Information"
	Divider = "------------------------"

	LabelID           = "Item ID"
	LabelTitle        = "Title"
	LabelCategory     = "Category"
	LabelDescription  = "Description"
	LabelLocation     = "Location"
	LabelDate         = "Date"
	LabelStatus       = "Status"
	LabelVerification = "Verification"

	NotAvailable = "N/A"
	DateLayout   = "1/2/2006"

	separator = ": "
)

type (
	Codec interface {
		Encode(item *entities.Item) string
		Decode(text string) (string, error)
	}

	plainTextCodec struct {
		secret []byte
	}
)

// NewCodec returns the plain-text codec. When secret is non-empty every token
// carries a Verification line (HMAC-SHA256 over the item id) and Decode
// rejects tokens whose tag is missing or wrong.
func NewCodec(secret string) Codec {
	c := &plainTextCodec{}
	if secret != "" {
		c.secret = []byte(secret)
	}
	return c
}

func (c *plainTextCodec) Encode(item *entities.Item) string {
	date := NotAvailable
	if !item.Date.IsZero() {
		date = item.Date.UTC().Format(DateLayout)
	}

	var b strings.Builder
	b.WriteString(Header + "\n")
	b.WriteString(Divider + "\n")
	// the id is written verbatim so Decode returns it byte for byte.
	b.WriteString(LabelID + separator + item.ID + "\n")
	writeField(&b, LabelTitle, item.Title)
	writeField(&b, LabelCategory, item.Category)
	writeField(&b, LabelDescription, item.Description)
	writeField(&b, LabelLocation, item.Location)
	writeField(&b, LabelDate, date)
	writeField(&b, LabelStatus, string(item.Status))
	if c.secret != nil {
		writeField(&b, LabelVerification, c.sign(item.ID))
	}
	b.WriteString(Divider)
	return b.String()
}

func (c *plainTextCodec) Decode(text string) (string, error) {
	id, ok := lookup(text, LabelID)
	if !ok || id == "" {
		return "", domain.ErrMalformedToken
	}

	if c.secret != nil {
		tag, ok := lookup(text, LabelVerification)
		if !ok {
			return "", fmt.Errorf("%w: missing verification tag", domain.ErrTokenSignature)
		}
		if !hmac.Equal([]byte(tag), []byte(c.sign(id))) {
			return "", domain.ErrTokenSignature
		}
	}

	return id, nil
}

func (c *plainTextCodec) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}

// writeField renders one labeled line. Line breaks inside a value would start a
// new line in the token, so they are folded into spaces.
func writeField(b *strings.Builder, label, value string) {
	value = strings.Join(strings.Fields(strings.ReplaceAll(value, "\r", " ")), " ")
	if value == "" {
		value = NotAvailable
	}
	b.WriteString(label + separator + value + "\n")
}

// lookup returns the value of the first line starting with "<label>: ".
// Only a trailing carriage return is stripped; the value is otherwise untouched.
func lookup(text, label string) (string, bool) {
	prefix := label + separator
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		_, value, _ := strings.Cut(line, separator)
		return value, true
	}
	return "", false
}
