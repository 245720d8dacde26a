package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorseDisposition(t *testing.T) {
	tests := []struct {
		a, b, want Disposition
	}{
		{DispositionClear, DispositionClear, DispositionClear},
		{DispositionClear, DispositionProcessing, DispositionProcessing},
		{DispositionProcessing, DispositionClear, DispositionProcessing},
		{DispositionProcessing, DispositionFlagged, DispositionFlagged},
		{DispositionFlagged, DispositionClear, DispositionFlagged},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WorseDisposition(tt.a, tt.b))
	}
}

func TestStatusApplyRespectsManualOverride(t *testing.T) {
	auto := Status{Disposition: DispositionClear}

	updated := auto.Apply(DispositionProcessing)
	assert.Equal(t, DispositionProcessing, updated.Disposition)
	assert.False(t, updated.Manual)

	manual := updated.Override(DispositionFlagged)
	assert.True(t, manual.Manual)
	assert.Equal(t, DispositionFlagged, manual.Disposition)

	// A later automatic pass must not move a manually set status.
	assert.Equal(t, manual, manual.Apply(DispositionClear))

	reset := manual.Reset(DispositionClear)
	assert.False(t, reset.Manual)
	assert.Equal(t, DispositionClear, reset.Disposition)
}
