package domain

import "testing"

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in      string
		want    Plan
		wantErr bool
	}{
		{"basic", PlanBasic, false},
		{"intermediate", PlanIntermediate, false},
		{"advanced", PlanAdvanced, false},
		{"styles-tones", PlanStylesTones, false},
		{"indian-styles", PlanStylesTones, false},
		{" Advanced ", PlanAdvanced, false},
		{"pro", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePlan(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePlan(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePlan(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePlan(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlanImplied(t *testing.T) {
	if got := PlanAdvanced.Implied(); len(got) != 1 || got[0] != PlanIntermediate {
		t.Fatalf("advanced should imply intermediate, got %v", got)
	}
	if got := PlanIntermediate.Implied(); len(got) != 0 {
		t.Fatalf("intermediate should imply nothing, got %v", got)
	}
	if got := PlanStylesTones.Implied(); len(got) != 0 {
		t.Fatalf("styles-tones should imply nothing, got %v", got)
	}
}

func TestPlanPaid(t *testing.T) {
	if PlanBasic.Paid() {
		t.Fatal("basic must be free")
	}
	for _, p := range []Plan{PlanIntermediate, PlanAdvanced, PlanStylesTones, PlanIndianStyles} {
		if !p.Paid() {
			t.Fatalf("%s must be a paid tier", p)
		}
	}
}
