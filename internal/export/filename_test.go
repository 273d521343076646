package export

import (
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		brand   string
		toolkit string
		suffix  Suffix
		want    string
	}{
		{
			name:    "plain",
			brand:   "filingdesk",
			toolkit: "Compliance Toolkit",
			suffix:  SuffixReport,
			want:    "2026-02-14_filingdesk_Compliance_Toolkit_Report.pdf",
		},
		{
			name:    "latest_result",
			brand:   "filingdesk",
			toolkit: "Compliance Toolkit",
			suffix:  SuffixLatestResult,
			want:    "2026-02-14_filingdesk_Compliance_Toolkit_Latest_Result.pdf",
		},
		{
			name:    "unsafe_characters_collapse",
			brand:   "filing/desk",
			toolkit: "Töolkit: v2 (beta)",
			suffix:  SuffixAllResults,
			want:    "2026-02-14_filing_desk_T_olkit_v2_beta_All_Results.pdf",
		},
		{
			name:    "surrounding_noise_trimmed",
			brand:   "  filingdesk  ",
			toolkit: "--Toolkit--",
			suffix:  SuffixReport,
			want:    "2026-02-14_filingdesk_--Toolkit--_Report.pdf",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Filename(date, tc.brand, tc.toolkit, tc.suffix); got != tc.want {
				t.Errorf("Filename() = %q, want %q", got, tc.want)
			}
		})
	}
}
