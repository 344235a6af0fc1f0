package session

import "time"

// SessionResponse is returned after a successful session creation
type SessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	JoinURL   string `json:"joinUrl"`
	Expiry    string `json:"expiry"`
	Status    string `json:"status"`
}

// SessionStatusResponse reports the live lifecycle state of a session
type SessionStatusResponse struct {
	SessionID      string     `json:"sessionId"`
	Status         string     `json:"status"`
	CandidateID    string     `json:"candidateId"`
	JobID          string     `json:"jobId"`
	StartTime      *time.Time `json:"startTime"`
	EndTime        *time.Time `json:"endTime"`
	Duration       int        `json:"duration"` // seconds
	Progress       int        `json:"progress"` // percentage
	QuestionsAsked int        `json:"questionsAsked"`
}

// EndSessionResponse confirms termination of a session
type EndSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Duration  int    `json:"duration"` // seconds
}

// InterviewResultsResponse carries the post-interview evaluation payload
type InterviewResultsResponse struct {
	SessionID    string           `json:"sessionId"`
	CandidateID  string           `json:"candidateId"`
	JobID        string           `json:"jobId"`
	CompanyID    string           `json:"companyId"`
	OverallScore int              `json:"overallScore"`
	Feedback     Feedback         `json:"feedback"`
	Questions    []QuestionResult `json:"questions"`
	Transcript   TranscriptInfo   `json:"transcript"`
	Audio        AudioInfo        `json:"audio"`
}

// Feedback is the summary evaluation block
type Feedback struct {
	Summary                 string   `json:"summary"`
	Strengths               []string `json:"strengths"`
	AreasForImprovement     []string `json:"areasForImprovement"`
	TechnicalAssessment     string   `json:"technicalAssessment"`
	CommunicationAssessment string   `json:"communicationAssessment"`
	FitScore                int      `json:"fitScore"`
	Recommendation          string   `json:"recommendation"`
}

// QuestionResult pairs one interviewer question with the candidate's answer
type QuestionResult struct {
	QuestionID       string     `json:"questionId"`
	Question         string     `json:"question"`
	Timestamp        time.Time  `json:"timestamp"`
	AnswerTranscript string     `json:"answerTranscript"`
	AnswerDuration   int        `json:"answerDuration"` // seconds
	Evaluation       Evaluation `json:"evaluation"`
}

// Evaluation scores a single answer
type Evaluation struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	KeyInsights []string `json:"keyInsights"`
}

// TranscriptInfo exposes the assembled transcript
type TranscriptInfo struct {
	Full string `json:"full"`
	URL  string `json:"url"`
}

// AudioInfo exposes the call recording
type AudioInfo struct {
	URL      string `json:"url"`
	Duration int    `json:"duration"` // seconds
}
