package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCleanCatalog(t *testing.T) {
	cat := catalogWith(map[string]string{
		"1_1": "{1,2}",
		"1_2": "Plain text",
	})

	report := cat.Check()
	assert.Empty(t, report.Cycles)
	assert.Empty(t, report.Missing)
}

func TestCheckCycles(t *testing.T) {
	cat := catalogWith(map[string]string{
		"1_1": "{1,2}",
		"1_2": "{1,1}",
		"1_3": "{1,3}",
		"1_4": "{1,1}",
	})

	report := cat.Check()
	require.Len(t, report.Cycles, 2)
	assert.Equal(t, []string{"1_1", "1_2"}, report.Cycles[0])
	assert.Equal(t, []string{"1_3"}, report.Cycles[1])
}

func TestCheckMissingRefs(t *testing.T) {
	cat := catalogWith(map[string]string{
		"1_1": "{9,9} and {8,8}",
		"1_2": "fine",
	})

	report := cat.Check()
	assert.Empty(t, report.Cycles)
	require.Contains(t, report.Missing, "1_1")
	assert.Equal(t, []string{"8_8", "9_9"}, report.Missing["1_1"])
}
