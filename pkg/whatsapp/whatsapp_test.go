package whatsapp_test

import (
	"net/url"
	"strings"
	"testing"

	"kedai/pkg/whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLink(t *testing.T) {
	link := whatsapp.GenerateLink("+91 98765-43210", "New Order:\n\nTotal: Rs.100.00")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)

	// The message round-trips through URL decoding.
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "New Order:\n\nTotal: Rs.100.00", parsed.Query().Get("text"))
}

func TestGenerateLink_PhoneNormalization(t *testing.T) {
	// Formatting variants of the same number produce the same link.
	a := whatsapp.GenerateLink("+62 812-3456-789", "hi")
	b := whatsapp.GenerateLink("628123456789", "hi")
	assert.Equal(t, a, b)
}
