package genes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoverage(t *testing.T) {
	tests := []struct {
		in   string
		want CoverageRange
	}{
		{"10-490/500", CoverageRange{Start: 10, End: 490, Length: 500}},
		{"1-801/801", CoverageRange{Start: 1, End: 801, Length: 801}},
		{" 5-600/610 ", CoverageRange{Start: 5, End: 600, Length: 610}},
		// No range validation in the parser
		{"600-5/10", CoverageRange{Start: 600, End: 5, Length: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoverage(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoverage_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"10-490",
		"10-490-500",
		"10/500",
		"a-490/500",
		"10-b/500",
		"10-490/c",
		"10-490/500/600",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCoverage(in)
			require.Error(t, err)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
		})
	}
}

func TestCoverageRange_Validate(t *testing.T) {
	assert.NoError(t, CoverageRange{Start: 1, End: 10, Length: 10}.Validate())
	assert.Error(t, CoverageRange{Start: 0, End: 10, Length: 10}.Validate())
	assert.Error(t, CoverageRange{Start: 5, End: 4, Length: 10}.Validate())
	assert.Error(t, CoverageRange{Start: 1, End: 11, Length: 10}.Validate())
}

func TestCoverageRange_Flanks(t *testing.T) {
	c := CoverageRange{Start: 10, End: 490, Length: 500}
	assert.True(t, c.HasUpstreamFlank())
	assert.True(t, c.HasDownstreamFlank())
	assert.Equal(t, "10-490/500", c.String())

	full := CoverageRange{Start: 1, End: 500, Length: 500}
	assert.False(t, full.HasUpstreamFlank())
	assert.False(t, full.HasDownstreamFlank())
}
