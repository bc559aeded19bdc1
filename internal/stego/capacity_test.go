package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalCapacity(t *testing.T) {
	c := NewCarrier(4, 5, 3)
	assert.Equal(t, uint64(60), TotalCapacity(c, false))
	assert.Equal(t, uint64(480), TotalCapacity(c, true))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(0, 0))
	assert.NoError(t, Validate(72, 72))
	assert.ErrorIs(t, Validate(73, 72), ErrPayloadTooLarge)
}

func TestRequiredBits(t *testing.T) {
	assert.Equal(t, uint64(24), RequiredBits(ModeText, 1))
	assert.Equal(t, uint64(16), RequiredBits(ModeText, 0))
	assert.Equal(t, uint64(64+8*10), RequiredBits(ModeBinary, 10))
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name           string
		h, w, ch       int
		wantPlane      uint64
		wantText       int
		wantTextPlane0 int
		wantBinary     uint64
	}{
		{"tiny", 2, 2, 3, 12, 10, 0, 0},
		{"concrete", 4, 4, 3, 48, 46, 4, 0},
		{"rgba", 10, 10, 4, 400, 398, 48, 42},
		{"text capped", 512, 512, 3, 786432, MaxTextLength, MaxTextLength, 98296},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Plan(NewCarrier(tt.h, tt.w, tt.ch))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlane, report.PlaneBits)
			assert.Equal(t, tt.wantPlane*8, report.EscalatedBits)
			assert.Equal(t, tt.wantText, report.MaxTextChars)
			assert.Equal(t, tt.wantTextPlane0, report.MaxTextCharsPlane0)
			assert.Equal(t, tt.wantBinary, report.MaxBinaryBytes)
			assert.True(t, report.TextFrameFits)
			assert.Equal(t, tt.wantPlane >= 64, report.BinaryFrameFits)
		})
	}
}

func TestPlan_MatchesEncoders(t *testing.T) {
	c := NewCarrier(4, 7, 3)
	report, err := Plan(c)
	require.NoError(t, err)
	require.Equal(t, uint64(2), report.MaxBinaryBytes)

	data := make([]byte, report.MaxBinaryBytes)
	_, err = EncodeBinary(c.Clone(), data)
	assert.NoError(t, err)
	_, err = EncodeBinary(c.Clone(), append(data, 0))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	text := make([]byte, report.MaxTextChars)
	for i := range text {
		text[i] = 'z'
	}
	_, err = EncodeText(c.Clone(), string(text))
	assert.NoError(t, err)
	_, err = EncodeText(c.Clone(), string(text)+"z")
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestPlan_InvalidCarrier(t *testing.T) {
	_, err := Plan(&Carrier{Height: 1, Width: 1, Channels: 0})
	assert.ErrorIs(t, err, ErrInvalidCarrier)
}
