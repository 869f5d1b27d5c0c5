// internal/outreach/whatsapp.go

// Package outreach turns saved leads into contact actions: WhatsApp deep
// links for one-tap messaging and email/SMS notifications through AWS.
package outreach

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidPhone = errors.New("INVALID_PHONE_NUMBER")

// WhatsAppLink builds a wa.me deep link for a lead's phone number. The
// number is reduced to its digits; formatting characters and a leading plus
// are all provider noise that wa.me rejects. An optional message is carried
// in the text parameter.
func WhatsAppLink(phone, message string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", ErrInvalidPhone
	}

	link := "https://wa.me/" + digits.String()
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}
