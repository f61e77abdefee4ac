package ports_test

import (
	"testing"

	"github.com/aretw0/turnstile/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"a", "1dpeg", "peg.v2", "even_ones-3"} {
		assert.NoError(t, ports.ValidateName(ok), ok)
	}
	for _, bad := range []string{"", ".hidden", "a/b", "../x", "with space", "-dash"} {
		assert.ErrorIs(t, ports.ValidateName(bad), ports.ErrInvalidName, bad)
	}
}
