package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgresql://yard:xxxxx@db:5432/containeryard",
		maskPassword("postgresql://yard:secret@db:5432/containeryard"))
	assert.Equal(t, "postgresql://db:5432/containeryard", maskPassword("postgresql://db:5432/containeryard"))
	assert.Equal(t, "not a url\x7f", maskPassword("not a url\x7f"))
}
