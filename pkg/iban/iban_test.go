package iban

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ProducesValidIBANs(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := Generate(r)
		require.Len(t, got, Length)
		assert.Equal(t, "FR", got[:2])
		assert.True(t, Validate(got), "generated IBAN should validate: %s", got)
		seen[got] = true
	}
	// 11 random account digits make collisions across 1000 draws vanishingly rare.
	assert.Greater(t, len(seen), 990)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(7)))
	b := Generate(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestValidate_RejectsMalformedInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	valid := Generate(r)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", valid[:26]},
		{"too long", valid + "1"},
		{"lowercase country", "fr" + valid[2:]},
		{"digit country", "12" + valid[2:]},
		{"letter in bban", valid[:10] + "X" + valid[11:]},
		{"space in bban", valid[:10] + " " + valid[11:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Validate(tt.input))
		})
	}
}

func TestValidate_CatchesSingleDigitMutations(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		valid := Generate(r)
		// Mutate each BBAN digit in turn; mod-97 catches every single-digit error.
		for pos := 4; pos < Length; pos++ {
			mutated := []byte(valid)
			mutated[pos] = '0' + (mutated[pos]-'0'+1)%10
			assert.False(t, Validate(string(mutated)),
				"mutation at %d should invalidate %s", pos, valid)
		}
	}
}

func TestValidate_WrongCheckDigits(t *testing.T) {
	valid := Generate(rand.New(rand.NewSource(3)))
	flipped := valid[:2] + string('0'+(valid[2]-'0'+1)%10) + valid[3:]
	assert.False(t, Validate(flipped))
}
