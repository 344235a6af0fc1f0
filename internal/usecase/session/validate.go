package session

import (
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
)

// ValidateSessionRequest checks the identifying fields of a session-creation
// payload. Checks run in a fixed order and the first failure wins; field
// formats (email syntax, array contents) are deliberately not checked here.
func ValidateSessionRequest(req *dto.SessionRequest) (string, bool) {
	if req.Session.SessionID == "" {
		return "Session ID is required", false
	}

	if req.Candidate.CandidateID == "" || req.Candidate.Name == "" || req.Candidate.Email == "" {
		return "Candidate information is incomplete", false
	}

	if req.Job.JobID == "" || req.Job.CompanyID == "" || req.Job.Title == "" {
		return "Job information is incomplete", false
	}

	return "", true
}
