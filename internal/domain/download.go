package domain

import (
	"strings"
	"time"
)

// DownloadFile is a downloadable resource (course PDF, PSR style pack, tone
// bank) uploaded by an admin.
type DownloadFile struct {
	ID           string
	Name         string
	Category     string
	StorageKey   string
	MIME         string
	SizeBytes    int64
	RequiredPlan Plan
	CreatedAt    time.Time
}

// PlanRequired returns the plan gating this file. Files uploaded before the
// required_plan column existed fall back to name/category sniffing.
func (f *DownloadFile) PlanRequired() Plan {
	if f.RequiredPlan != "" {
		return f.RequiredPlan.Canonical()
	}
	return ClassifyDownload(f.Name, f.Category)
}

// ClassifyDownload infers the plan a file belongs to from its name and
// category. This reproduces the historical substring heuristic, including
// its check order: style/tone wins over advanced, so "advanced_styles.zip"
// classifies as styles-tones. New uploads should set RequiredPlan instead of
// relying on this.
func ClassifyDownload(name, category string) Plan {
	s := strings.ToLower(name + " " + category)
	switch {
	case strings.Contains(s, "style") || strings.Contains(s, "tone"):
		return PlanStylesTones
	case strings.Contains(s, "advanced"):
		return PlanAdvanced
	case strings.Contains(s, ".pdf"):
		return PlanIntermediate
	}
	return PlanBasic
}
