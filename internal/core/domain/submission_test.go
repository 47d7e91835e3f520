package domain

import "testing"

func TestSubmissionAmount(t *testing.T) {
	cases := []struct {
		name       string
		workType   string
		quantity   int
		employment string
		want       int
	}{
		{"freelancer poster", "Poster", 3, EmploymentFreelancer, 900},
		{"freelancer reel", "Reel", 2, EmploymentFreelancer, 1200},
		{"freelancer video", "Video", 1, EmploymentFreelancer, 600},
		{"freelancer other type", "Design", 5, EmploymentFreelancer, 0},
		{"freelancer negative quantity", "Poster", -2, EmploymentFreelancer, 0},
		{"in-house accrues nothing", "Poster", 3, EmploymentInHouse, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SubmissionAmount(tc.workType, tc.quantity, tc.employment); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestHasAttachment(t *testing.T) {
	s := &Submission{}
	if s.HasAttachment() {
		t.Fatalf("expected no attachment")
	}
	s.FilePath = "/uploads/x.pdf"
	if !s.HasAttachment() {
		t.Fatalf("expected attachment")
	}
}
