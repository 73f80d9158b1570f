package dataprocessing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tmanalyzer/internal/errors"
)

func TestCountryResolver_Resolve(t *testing.T) {
	resolver := NewCountryResolver(map[string]string{"KR": "한국", "us": "미국"})

	tests := []struct {
		file    string
		want    string
		wantErr bool
	}{
		{file: "KR_DATA.xlsx", want: "한국"},
		{file: "US_DATA.xlsx", want: "미국", wantErr: false},
		{file: "kr_2024.xlsx", want: "한국"},
		{file: "한국_DATA.xlsx", want: "한국"},
		{file: "중국DATA.xlsx", want: "중국"},
		{file: "Japan.xlsx", want: "Japan"},
		{file: "/abs/path/EU_DATA.xlsx", want: "EU"},
		{file: "DATA.xlsx", wantErr: true},
		{file: "_DATA.xlsx", wantErr: true},
		{file: strings.Repeat("X", 70) + "_DATA.xlsx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := resolver.Resolve(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrUnknownCountry))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilePrefix(t *testing.T) {
	assert.Equal(t, "KR", FilePrefix("KR_DATA.xlsx"))
	assert.Equal(t, "미국", FilePrefix("미국DATA.xlsx"))
	assert.Equal(t, "report", FilePrefix("report.xlsx"))
	assert.Equal(t, "", FilePrefix("DATA.xlsx"))
}
