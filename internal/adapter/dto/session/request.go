package session

// SessionRequest is the inbound interview-session creation payload from the
// Tezhire platform
type SessionRequest struct {
	Session       SessionInfo   `json:"session"`
	Candidate     Candidate     `json:"candidate"`
	Job           Job           `json:"job"`
	Interview     Interview     `json:"interview"`
	Configuration Configuration `json:"configuration"`
}

// SessionInfo identifies the requested session
type SessionInfo struct {
	SessionID   string `json:"sessionId"`
	CallbackURL string `json:"callbackUrl"`
}

// Candidate describes who is being interviewed
type Candidate struct {
	CandidateID string     `json:"candidateId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	ResumeData  ResumeData `json:"resumeData"`
}

// ResumeData is the structured resume supplied by the platform
type ResumeData struct {
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Projects   []ProjectEntry    `json:"projects"`
	RawText    string            `json:"rawText"`
}

// ExperienceEntry is one prior role on the resume
type ExperienceEntry struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is one education record on the resume
type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	Year         int    `json:"year"`
}

// ProjectEntry is one project on the resume
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Job describes the position being interviewed for
type Job struct {
	JobID            string       `json:"jobId"`
	CompanyID        string       `json:"companyId"`
	RecruiterUserID  string       `json:"recruiterUserId"`
	Title            string       `json:"title"`
	Department       string       `json:"department"`
	Description      string       `json:"description"`
	Requirements     []string     `json:"requirements"`
	Responsibilities []string     `json:"responsibilities"`
	Location         string       `json:"location"`
	EmploymentType   string       `json:"employmentType"`
	ExperienceLevel  string       `json:"experienceLevel"`
	SalaryRange      *SalaryRange `json:"salaryRange,omitempty"`
}

// SalaryRange is the optional advertised salary band
type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Interview configures how the AI interviewer should run the session
type Interview struct {
	Duration        int      `json:"duration"` // minutes
	DifficultyLevel string   `json:"difficultyLevel"`
	TopicsToFocus   []string `json:"topicsToFocus"`
	TopicsToAvoid   []string `json:"topicsToAvoid"`
	CustomQuestions []string `json:"customQuestions"`
	InterviewStyle  string   `json:"interviewStyle"`
	FeedbackDetail  string   `json:"feedbackDetail"`
}

// Configuration holds call-level settings
type Configuration struct {
	Language            string `json:"language"`
	VoiceID             string `json:"voiceId,omitempty"`
	EnableTranscription bool   `json:"enableTranscription"`
	AudioQuality        string `json:"audioQuality"`
	TimeZone            string `json:"timeZone"`
}

// EndSessionRequest is the optional end-session body. A missing or malformed
// body degrades to the zero value; reason is never required.
type EndSessionRequest struct {
	Reason string `json:"reason,omitempty"`
}
