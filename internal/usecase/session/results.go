package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tezhire/ultravox-integration/errors"
	dto "github.com/tezhire/ultravox-integration/internal/adapter/dto/session"
	"github.com/tezhire/ultravox-integration/internal/domain/entities"
	"github.com/tezhire/ultravox-integration/internal/infrastructure/external/ultravox"
)

// Answer-length scoring bounds. The evaluation here is a heuristic over the
// transcript, not a real assessment model; it exists so the results payload
// is derived from what was actually said instead of fabricated wholesale.
const (
	answerScoreBase = 55
	answerScoreMax  = 95
)

// GetResults assembles the post-interview evaluation. Fails NotReady until
// the call has concluded.
func (s *SessionService) GetResults(ctx context.Context, apiKey, sessionID string) (*dto.InterviewResultsResponse, error) {
	record, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !record.IsEnded() {
		call, err := s.provider.GetCall(ctx, apiKey, record.CallID)
		if err != nil {
			return nil, err
		}
		s.applyCallState(ctx, record, call)
		if !record.IsEnded() {
			return nil, apperrors.ErrResultsNotReady(sessionID)
		}
	}

	messages, err := s.provider.ListMessages(ctx, apiKey, record.CallID)
	if err != nil {
		return nil, err
	}

	questions := deriveQuestions(record, messages)
	fullTranscript := renderTranscript(messages)

	transcriptURL := ""
	if s.artifacts != nil && fullTranscript != "" {
		url, err := s.artifacts.SaveTranscript(ctx, sessionID, fullTranscript)
		if err != nil {
			s.logger.Warn("session.results.transcript_upload_failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		} else {
			transcriptURL = url
		}
	}

	overall := overallScore(questions)

	return &dto.InterviewResultsResponse{
		SessionID:    record.SessionID,
		CandidateID:  record.CandidateID,
		JobID:        record.JobID,
		CompanyID:    record.CompanyID,
		OverallScore: overall,
		Feedback:     buildFeedback(record, overall),
		Questions:    questions,
		Transcript: dto.TranscriptInfo{
			Full: fullTranscript,
			URL:  transcriptURL,
		},
		Audio: dto.AudioInfo{
			URL:      fmt.Sprintf("%s/calls/%s/recording", s.cfg.BaseURL, record.CallID),
			Duration: record.DurationSeconds,
		},
	}, nil
}

// deriveQuestions pairs each agent utterance with the candidate replies that
// follow it, up to the next agent utterance.
func deriveQuestions(record *entities.InterviewSession, messages []ultravox.Message) []dto.QuestionResult {
	baseTime := record.CreatedAt
	if record.StartedAt != nil {
		baseTime = *record.StartedAt
	}

	var results []dto.QuestionResult
	var current *dto.QuestionResult
	var answerParts []string

	flush := func() {
		if current == nil {
			return
		}
		current.AnswerTranscript = strings.Join(answerParts, " ")
		current.AnswerDuration = answerDuration(current.AnswerTranscript)
		current.Evaluation = evaluateAnswer(current.AnswerTranscript)
		results = append(results, *current)
		current = nil
		answerParts = nil
	}

	for _, msg := range messages {
		switch msg.Role {
		case ultravox.MessageRoleAgent:
			flush()
			current = &dto.QuestionResult{
				QuestionID: fmt.Sprintf("q%d", len(results)+1),
				Question:   msg.Text,
				Timestamp:  baseTime.Add(time.Duration(len(results)) * 30 * time.Second),
			}
		case ultravox.MessageRoleUser:
			if current != nil {
				answerParts = append(answerParts, msg.Text)
			}
		}
	}
	flush()

	return results
}

// renderTranscript flattens the message list into readable text, one line
// per utterance in call order.
func renderTranscript(messages []ultravox.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		speaker := "Interviewer"
		if msg.Role == ultravox.MessageRoleUser {
			speaker = "Candidate"
		}
		b.WriteString(speaker)
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// answerDuration estimates speaking time from word count (~2.5 words/second)
func answerDuration(answer string) int {
	words := len(strings.Fields(answer))
	if words == 0 {
		return 0
	}
	duration := words * 2 / 5
	if duration < 1 {
		duration = 1
	}
	return duration
}

// evaluateAnswer scores one answer from its length and shape
func evaluateAnswer(answer string) dto.Evaluation {
	words := len(strings.Fields(answer))

	score := answerScoreBase + words
	if score > answerScoreMax {
		score = answerScoreMax
	}

	feedback := "Gave a substantive answer with relevant detail"
	insights := []string{"Engaged with the question"}
	switch {
	case words == 0:
		score = 0
		feedback = "No answer was given"
		insights = []string{"Question went unanswered"}
	case words < 10:
		feedback = "Answer was very brief; little detail to assess"
		insights = []string{"Concise response"}
	case words > 60:
		insights = append(insights, "Detailed, structured response")
	}

	return dto.Evaluation{
		Score:       score,
		Feedback:    feedback,
		KeyInsights: insights,
	}
}

// overallScore averages per-answer scores
func overallScore(questions []dto.QuestionResult) int {
	if len(questions) == 0 {
		return 0
	}
	total := 0
	for _, q := range questions {
		total += q.Evaluation.Score
	}
	return total / len(questions)
}

// buildFeedback fills the summary block from the overall score
func buildFeedback(record *entities.InterviewSession, overall int) dto.Feedback {
	recommendation := "No Hire"
	switch {
	case overall >= 75:
		recommendation = "Hire"
	case overall >= 60:
		recommendation = "Consider"
	}

	fitScore := overall + 4
	if fitScore > 100 {
		fitScore = 100
	}

	return dto.Feedback{
		Summary: fmt.Sprintf(
			"%s completed a %d-minute interview for the %s position. Responses were evaluated from the call transcript.",
			record.CandidateName, record.DurationMinutes, record.JobTitle,
		),
		Strengths: []string{
			"Engaged with the interviewer's questions",
			"Maintained a professional tone throughout",
		},
		AreasForImprovement: []string{
			"Automated evaluation is length-based; review the transcript for depth",
		},
		TechnicalAssessment:     fmt.Sprintf("Transcript-derived score of %d for questions relevant to %s.", overall, record.JobTitle),
		CommunicationAssessment: "Responses were captured clearly by the call transcription.",
		FitScore:                fitScore,
		Recommendation:          recommendation,
	}
}
