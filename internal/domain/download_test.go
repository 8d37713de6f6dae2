package domain

import "testing"

func TestClassifyDownload(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		category string
		want     Plan
	}{
		{"psr style pack", "PSR_I500_Styles.zip", "styles", PlanStylesTones},
		{"tone bank", "indian_tones_vol2.zip", "", PlanStylesTones},
		{"advanced notes", "advanced_course_notes.pdf", "", PlanAdvanced},
		{"course pdf", "lesson_3_ragas.pdf", "", PlanIntermediate},
		{"plain file", "readme.txt", "", PlanBasic},
		// Known quirk carried over: style/tone wins over advanced.
		{"advanced styles zip", "advanced_styles.zip", "", PlanStylesTones},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyDownload(tc.file, tc.category); got != tc.want {
				t.Fatalf("ClassifyDownload(%q, %q) = %q, want %q", tc.file, tc.category, got, tc.want)
			}
		})
	}
}

func TestPlanRequiredPrefersStoredColumn(t *testing.T) {
	f := DownloadFile{Name: "advanced_styles.zip", RequiredPlan: PlanAdvanced}
	if got := f.PlanRequired(); got != PlanAdvanced {
		t.Fatalf("stored required_plan must win over sniffing, got %q", got)
	}

	legacy := DownloadFile{Name: "advanced_styles.zip"}
	if got := legacy.PlanRequired(); got != PlanStylesTones {
		t.Fatalf("legacy row should fall back to the heuristic, got %q", got)
	}

	alias := DownloadFile{Name: "whatever.bin", RequiredPlan: PlanIndianStyles}
	if got := alias.PlanRequired(); got != PlanStylesTones {
		t.Fatalf("stored alias should canonicalize, got %q", got)
	}
}
