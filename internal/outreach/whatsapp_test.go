// internal/outreach/whatsapp_test.go
package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		message  string
		expected string
	}{
		{
			name:     "formatted international number",
			phone:    "+961 6 123 456",
			message:  "",
			expected: "https://wa.me/9616123456",
		},
		{
			name:     "punctuation stripped",
			phone:    "(06) 123-456",
			message:  "",
			expected: "https://wa.me/06123456",
		},
		{
			name:     "message is query escaped",
			phone:    "9616123456",
			message:  "Hello! Interested in your services & pricing?",
			expected: "https://wa.me/9616123456?text=Hello%21+Interested+in+your+services+%26+pricing%3F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := WhatsAppLink(tt.phone, tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, link)
		})
	}
}

func TestWhatsAppLink_NoDigits(t *testing.T) {
	for _, phone := range []string{"", "call us", "+()- "} {
		_, err := WhatsAppLink(phone, "hi")
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", phone)
	}
}
