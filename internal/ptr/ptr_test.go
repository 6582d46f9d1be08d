package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	s := "2025-12-31"
	p := To(s)
	s = "changed"

	assert.Equal(t, "2025-12-31", *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "grp-1", Deref(To("grp-1"), ""))
	assert.Equal(t, "", Deref[string](nil, ""))
	assert.Equal(t, 1, Deref[int](nil, 1))
}
