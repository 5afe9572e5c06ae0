package commands

import (
	"testing"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    Range
		wantErr bool
	}{
		{input: "1", want: Range{First: 1, Last: 1}},
		{input: "12", want: Range{First: 12, Last: 12}},
		{input: "3-7", want: Range{First: 3, Last: 7}},
		{input: "4-4", want: Range{First: 4, Last: 4}},
		{input: "5-", want: Range{First: 5, Last: OpenEnd}},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "7-3", wantErr: true},
		{input: "1-2-3", wantErr: true},
		{input: "a", wantErr: true},
		{input: "+1", wantErr: true},
		{input: "1-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{First: 3, Last: 5}
	assert.False(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))

	open := Range{First: 3, Last: OpenEnd}
	assert.True(t, open.Contains(1000))
	assert.False(t, open.Contains(1))
}

func TestRange_StringParses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		first := rapid.IntRange(1, 10000).Draw(t, "first")
		last := rapid.SampledFrom([]int{first, OpenEnd, first + rapid.IntRange(1, 100).Draw(t, "span")}).Draw(t, "last")
		r := Range{First: first, Last: last}

		got, err := ParseRange(r.String())
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", r.String(), err)
		}
		if got != r {
			t.Fatalf("ParseRange(%q) = %+v, want %+v", r.String(), got, r)
		}
	})
}
