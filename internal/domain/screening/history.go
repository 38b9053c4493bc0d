package screening

import "time"

// HistoryEntry is one recorded console query.
type HistoryEntry struct {
	HistoryID   string         `json:"historyId"`
	UserID      string         `json:"userId"`
	SearchQuery string         `json:"searchQuery"`
	Intent      string         `json:"intent"`
	Entities    map[string]any `json:"entities"`
	Timestamp   time.Time      `json:"timestamp"`
}

// RecommendationType enum
type RecommendationType string

const (
	RecommendationPersonal RecommendationType = "personal"
	RecommendationGlobal   RecommendationType = "global"
)

type Recommendation struct {
	Type           RecommendationType `json:"type"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	SuggestedQuery string             `json:"suggestedQuery"`
}

// WhatIfInput drives the turnaround projection.
type WhatIfInput struct {
	Region         string  `json:"region"`
	OrderVolume    float64 `json:"orderVolume"`
	SubmitsPerWeek float64 `json:"submitsPerWeek"`
	Rush           bool    `json:"rush,omitempty"`
}

type WhatIfOutput struct {
	ProjectedDays float64  `json:"projectedDays"`
	Confidence    float64  `json:"confidence"`
	Drivers       []string `json:"drivers"`
	Narrative     string   `json:"narrative"`
}

// Attachment describes a file stored through the upload passthrough.
type Attachment struct {
	URL              string `json:"url"`
	Key              string `json:"key"`
	Bytes            int64  `json:"bytes"`
	ContentType      string `json:"contentType,omitempty"`
	OriginalFilename string `json:"originalFilename"`
}
