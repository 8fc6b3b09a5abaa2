package controllers

import "testing"

func TestAttachmentFilename(t *testing.T) {
	cases := []struct {
		employeeID string
		original   string
		want       string
	}{
		{"E100", "crates.pdf", "E100_crates.pdf"},
		{"E100", "cost saving plan.xlsx", "E100_cost_saving_plan.xlsx"},
		{"E100", "a \t b.png", "E100_a_b.png"},
		{"E100", "../secret.txt", "E100_secret.txt"},
	}
	for _, tc := range cases {
		if got := attachmentFilename(tc.employeeID, tc.original); got != tc.want {
			t.Errorf("attachmentFilename(%q, %q) = %q, want %q", tc.employeeID, tc.original, got, tc.want)
		}
	}
}
