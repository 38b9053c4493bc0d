package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

func TestProjectTurnaround(t *testing.T) {
	tests := []struct {
		name string
		in   screening.WhatIfInput
		want screening.WhatIfOutput
	}{
		{
			name: "known region",
			in:   screening.WhatIfInput{Region: "US-East", OrderVolume: 120, SubmitsPerWeek: 40},
			want: screening.WhatIfOutput{
				ProjectedDays: 5.4,
				Confidence:    0.75,
				Drivers:       []string{"Historical SLA in US-East averaging 1.8 days."},
				Narrative:     "Expect 5.4 days to close 120 candidates in US-East. Plan recruiter staffing in 3 shifts.",
			},
		},
		{
			name: "unknown region with rush and high volume",
			in:   screening.WhatIfInput{Region: "Nepal", OrderVolume: 400, SubmitsPerWeek: 200, Rush: true},
			want: screening.WhatIfOutput{
				ProjectedDays: 3.7,
				Confidence:    0.6,
				Drivers: []string{
					"High volume: allocate additional verification specialists.",
					"Region uses global SLA baseline of 2.3 days.",
					"Rush handling activated: leveraging premium vendor lanes.",
				},
				Narrative: "Expect 3.7 days to close 400 candidates in Nepal. Plan recruiter staffing in 2 shifts.",
			},
		},
		{
			name: "fractional submits clamp to one",
			in:   screening.WhatIfInput{Region: "EMEA", OrderVolume: 10, SubmitsPerWeek: 0.5},
			want: screening.WhatIfOutput{
				ProjectedDays: 21,
				Confidence:    0.75,
				Drivers:       []string{"Historical SLA in EMEA averaging 2.1 days."},
				Narrative:     "Expect 21 days to close 10 candidates in EMEA. Plan recruiter staffing in 11 shifts.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectTurnaround(tt.in))
		})
	}
}

func TestService_WhatIfValidation(t *testing.T) {
	svc := &Service{}
	_, err := svc.WhatIf(context.Background(), screening.WhatIfInput{Region: "US-East"})

	var verr *screening.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"orderVolume", "submitsPerWeek"}, verr.Fields)
}
