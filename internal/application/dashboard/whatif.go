package dashboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

const (
	globalBaselineDays = 2.3
	rushFactor         = 0.8
	highVolumeOrders   = 300
)

// regionBaselineDays is the historical SLA per region.
var regionBaselineDays = map[string]float64{
	"US-East":     1.8,
	"US-West":     2.2,
	"US-South":    2.0,
	"India-North": 2.6,
	"APAC":        2.4,
	"EMEA":        2.1,
}

// WhatIf projects turnaround for a hypothetical order volume.
func (s *Service) WhatIf(_ context.Context, in screening.WhatIfInput) (screening.WhatIfOutput, error) {
	var missing []string
	if strings.TrimSpace(in.Region) == "" {
		missing = append(missing, "region")
	}
	if in.OrderVolume == 0 {
		missing = append(missing, "orderVolume")
	}
	if in.SubmitsPerWeek == 0 {
		missing = append(missing, "submitsPerWeek")
	}
	if len(missing) > 0 {
		return screening.WhatIfOutput{}, &screening.ValidationError{Fields: missing}
	}
	return ProjectTurnaround(in), nil
}

// ProjectTurnaround is the pure projection behind WhatIf.
func ProjectTurnaround(in screening.WhatIfInput) screening.WhatIfOutput {
	base := in.OrderVolume / math.Max(in.SubmitsPerWeek, 1)
	baseDays, known := regionBaselineDays[in.Region]
	if !known {
		baseDays = globalBaselineDays
	}
	factor := 1.0
	if in.Rush {
		factor = rushFactor
	}
	projected := math.Floor(baseDays*base*factor*10+0.5) / 10

	drivers := []string{}
	if in.OrderVolume > highVolumeOrders {
		drivers = append(drivers, "High volume: allocate additional verification specialists.")
	}
	if known {
		drivers = append(drivers, fmt.Sprintf("Historical SLA in %s averaging %.1f days.", in.Region, baseDays))
	} else {
		drivers = append(drivers, "Region uses global SLA baseline of 2.3 days.")
	}
	if in.Rush {
		drivers = append(drivers, "Rush handling activated: leveraging premium vendor lanes.")
	}

	confidence := 0.75
	if in.Rush {
		confidence = 0.6
	}

	return screening.WhatIfOutput{
		ProjectedDays: projected,
		Confidence:    confidence,
		Drivers:       drivers,
		Narrative: fmt.Sprintf("Expect %s days to close %s candidates in %s. Plan recruiter staffing in %d shifts.",
			num(projected), num(in.OrderVolume), in.Region, int(math.Ceil(projected/2))),
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
