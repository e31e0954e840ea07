package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateWorkOrderID(t *testing.T) {
	id := GenerateWorkOrderID(" mscu 123-4567 ")

	assert.Regexp(t, regexp.MustCompile(`^wo-MSCU1234567-[0-9a-f]{8}$`), id)
}

func TestGenerateWorkOrderID_EmptyContainerNumber(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^wo-[0-9a-f]{8}$`), GenerateWorkOrderID(""))
}

func TestGenerateStayID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateStayID("TGHU7654321")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
