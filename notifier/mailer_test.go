package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLEscapesStaffInput(t *testing.T) {
	alert := Alert{
		Kind:    KindOutOfStock,
		Subject: `City <b>General</b>: out of stock`,
		Body:    `<script>alert("x")</script> & Paracetamol`,
	}

	out, err := renderHTML(alert)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>General</b>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "City &lt;b&gt;General&lt;/b&gt;: out of stock")
	assert.Contains(t, out, "&amp; Paracetamol")
}

func TestRenderHTMLKeepsPlainText(t *testing.T) {
	out, err := renderHTML(Alert{Subject: "Sunrise: high load", Body: "Bed occupancy at Sunrise is 85%"})
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Sunrise: high load</h1>")
	assert.Contains(t, out, `<p class="alert">Bed occupancy at Sunrise is 85%</p>`)
}
