// Package whatsapp builds wa.me deep links for order notifications.
// Link generation is pure string formatting: no network calls and no
// delivery guarantees.
package whatsapp

import (
	"net/url"
	"strings"
)

// GenerateLink returns a wa.me link that opens a WhatsApp chat with the
// given phone number and the message pre-filled. Everything except digits
// is stripped from the phone number, so "+62 812-3456" and "628123456"
// produce the same link.
func GenerateLink(phone, message string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return "https://wa.me/" + b.String() + "?text=" + url.QueryEscape(message)
}
