package session

import (
	"fmt"
	"strings"

	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
)

// promptTemplate is the fixed system-prompt layout handed to the AI
// interviewer. Section order and separators are part of the contract:
// downstream tooling diffs prompts between runs, so identical input must
// produce identical text.
const promptTemplate = `
# INTERVIEW CONTEXT
You are conducting a technical interview for %s position at a company.

## CANDIDATE INFORMATION
- Name: %s
- Position applying for: %s
- Experience level: %s

## JOB DETAILS
- Title: %s
- Department: %s
- Description: %s
- Requirements: %s
- Responsibilities: %s

## INTERVIEW CONFIGURATION
- Difficulty level: %s
- Style: %s
- Duration: %d minutes
- Focus areas: %s
- Areas to avoid: %s

## CANDIDATE BACKGROUND
%s

## INTERVIEW INSTRUCTIONS
1. Begin by introducing yourself and making the candidate comfortable
2. Ask questions related to the candidate's experience and the job requirements
3. Focus on the specified topics: %s
4. Avoid discussing: %s
5. Include these specific questions: %s
6. Assess technical skills, problem-solving abilities, and communication
7. Provide a comprehensive evaluation at the end of the interview

## EVALUATION CRITERIA
- Technical knowledge relevant to the position
- Problem-solving approach and critical thinking
- Communication skills and clarity of expression
- Cultural fit and alignment with company values
- Overall suitability for the role

Remember to maintain a professional and supportive tone throughout the interview.
`

// BuildSystemPrompt renders the interviewer instructions for a session.
// Pure and deterministic; list fields keep their input order.
func BuildSystemPrompt(req *dto.SessionRequest) string {
	candidate := req.Candidate
	job := req.Job
	interview := req.Interview

	focus := strings.Join(interview.TopicsToFocus, ", ")
	avoid := strings.Join(interview.TopicsToAvoid, ", ")

	return fmt.Sprintf(promptTemplate,
		job.Title,
		candidate.Name,
		job.Title,
		job.ExperienceLevel,
		job.Title,
		job.Department,
		job.Description,
		strings.Join(job.Requirements, ", "),
		strings.Join(job.Responsibilities, ", "),
		interview.DifficultyLevel,
		interview.InterviewStyle,
		interview.Duration,
		focus,
		avoid,
		candidate.ResumeData.RawText,
		focus,
		avoid,
		strings.Join(interview.CustomQuestions, "; "),
	)
}
