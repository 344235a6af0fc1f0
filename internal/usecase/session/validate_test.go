package session

import (
	"testing"

	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
)

func TestValidateSessionRequest(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*dto.SessionRequest)
		wantReason string
	}{
		{
			name:       "valid request",
			mutate:     func(*dto.SessionRequest) {},
			wantReason: "",
		},
		{
			name:       "missing session id",
			mutate:     func(r *dto.SessionRequest) { r.Session.SessionID = "" },
			wantReason: "Session ID is required",
		},
		{
			name:       "missing candidate id",
			mutate:     func(r *dto.SessionRequest) { r.Candidate.CandidateID = "" },
			wantReason: "Candidate information is incomplete",
		},
		{
			name:       "missing candidate name",
			mutate:     func(r *dto.SessionRequest) { r.Candidate.Name = "" },
			wantReason: "Candidate information is incomplete",
		},
		{
			name:       "missing candidate email",
			mutate:     func(r *dto.SessionRequest) { r.Candidate.Email = "" },
			wantReason: "Candidate information is incomplete",
		},
		{
			name:       "missing job id",
			mutate:     func(r *dto.SessionRequest) { r.Job.JobID = "" },
			wantReason: "Job information is incomplete",
		},
		{
			name:       "missing company id",
			mutate:     func(r *dto.SessionRequest) { r.Job.CompanyID = "" },
			wantReason: "Job information is incomplete",
		},
		{
			name:       "missing job title",
			mutate:     func(r *dto.SessionRequest) { r.Job.Title = "" },
			wantReason: "Job information is incomplete",
		},
		{
			// Session identity is checked before candidate fields
			name: "session id failure wins over candidate failure",
			mutate: func(r *dto.SessionRequest) {
				r.Session.SessionID = ""
				r.Candidate.Name = ""
			},
			wantReason: "Session ID is required",
		},
		{
			name: "candidate failure wins over job failure",
			mutate: func(r *dto.SessionRequest) {
				r.Candidate.Email = ""
				r.Job.Title = ""
			},
			wantReason: "Candidate information is incomplete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := promptRequest()
			tt.mutate(req)

			reason, ok := ValidateSessionRequest(req)
			if tt.wantReason == "" {
				if !ok {
					t.Fatalf("expected valid request, got reason %q", reason)
				}
				return
			}
			if ok {
				t.Fatal("expected validation failure")
			}
			if reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, reason)
			}
		})
	}
}
