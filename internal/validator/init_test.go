package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartSymbol(t *testing.T) {
	type settings struct {
		Starting string `validate:"start_symbol"`
	}

	for _, s := range []string{"X", "O", "random"} {
		assert.NoError(t, Struct(settings{Starting: s}), s)
	}
	for _, s := range []string{"", "x", "Z", "Random"} {
		assert.Error(t, Struct(settings{Starting: s}), s)
	}
}

func TestGetValidator(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
	assert.Error(t, GetValidator().Var(0, "min=1"))
}
