package colors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	assert.Equal(t, Green(200), HTTPStatus(200))
	assert.Equal(t, Yellow(303), HTTPStatus(303))
	assert.Equal(t, Red(400), HTTPStatus(400))
	assert.Equal(t, Red(503), HTTPStatus(503))
}
