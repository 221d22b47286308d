package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "PT9H10M", want: 550},
		{input: "PT0H45M", want: 45},
		{input: "PT2H", want: 120},
		{input: "PT45M", want: 45},
		{input: "P1DT2H30M", want: 1590},
		{input: "PT1H5M30S", want: 65},
		{input: "P1D", want: 1440},
		{input: "", wantErr: true},
		{input: "PT", wantErr: true},
		{input: "9h10m", wantErr: true},
		{input: "PT-1H", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
