package services

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

// SourceCatalog selects the fixed per-title list instead of a generator.
const SourceCatalog = "catalog"

// InterviewService drives a session from creation to its durable log.
type InterviewService interface {
	StartSession(candidateName, jobTitle, resumeText string) (*models.Session, error)
	StartSessionFromUpload(file *multipart.FileHeader, candidateName, jobTitle string) (*models.Session, error)
	GenerateQuestions(ctx context.Context, sessionID string, req models.GenerateQuestionsRequest) (*models.Session, error)
	Complete(ctx context.Context, sessionID string) (*models.LogEntry, error)
	EvaluateCandidate(ctx context.Context, candidateName string) (*models.CandidateFeedbackResponse, error)
	Evaluate(req models.EvaluateRequest) models.FeedbackResult
}

type interviewService struct {
	sessions    SessionStore
	questions   QuestionProvider
	feedback    FeedbackEngine
	logs        repositories.LogStore
	storage     StorageService
	extractor   TextExtractor
	keepResumes bool
}

func NewInterviewService(
	sessions SessionStore,
	questions QuestionProvider,
	feedback FeedbackEngine,
	logs repositories.LogStore,
	storage StorageService,
	extractor TextExtractor,
	keepResumes bool,
) InterviewService {
	return &interviewService{
		sessions:    sessions,
		questions:   questions,
		feedback:    feedback,
		logs:        logs,
		storage:     storage,
		extractor:   extractor,
		keepResumes: keepResumes,
	}
}

// StartSession implements InterviewService.
func (s *interviewService) StartSession(candidateName, jobTitle, resumeText string) (*models.Session, error) {
	session, err := s.sessions.Create(candidateName, jobTitle, resumeText)
	if err != nil {
		return nil, err
	}
	log.Printf("🆕 Session %s started for %s (%s)\n", session.ID, session.CandidateName, session.JobTitle)
	return session, nil
}

// StartSessionFromUpload saves the résumé, extracts its text and opens a
// session with it. The file is removed afterwards unless résumés are kept.
func (s *interviewService) StartSessionFromUpload(file *multipart.FileHeader, candidateName, jobTitle string) (*models.Session, error) {
	if strings.TrimSpace(candidateName) == "" {
		return nil, apperr.Validation("candidate_name is required")
	}
	if strings.TrimSpace(jobTitle) == "" {
		return nil, apperr.Validation("job_title is required")
	}

	filename, filePath, err := s.storage.SaveFile(file, "resume")
	if err != nil {
		if apperr.Is(err, apperr.KindUnsupportedFormat) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindValidation, "failed to save uploaded résumé", err)
	}
	if !s.keepResumes {
		defer func() {
			if err := s.storage.DeleteFile(filename); err != nil {
				log.Printf("⚠️ Failed to remove uploaded résumé %s: %v\n", filename, err)
			}
		}()
	}

	text, err := s.extractor.ExtractFile(filePath)
	if err != nil {
		return nil, err
	}

	return s.StartSession(candidateName, jobTitle, text)
}

// GenerateQuestions implements InterviewService. The provider runs on a
// snapshot so no session lock is held while a remote generator works.
func (s *interviewService) GenerateQuestions(ctx context.Context, sessionID string, req models.GenerateQuestionsRequest) (*models.Session, error) {
	snapshot, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if snapshot.State == models.StateCompleted {
		return nil, apperr.SessionComplete(snapshot.ID)
	}
	if len(snapshot.Questions) > 0 {
		return nil, apperr.Validation("questions have already been generated for session %s", snapshot.ID)
	}

	var questions []string
	if strings.EqualFold(strings.TrimSpace(req.Source), SourceCatalog) {
		questions = s.questions.CatalogQuestions(snapshot.JobTitle)
	} else {
		qr := NewQuestionRequest(req)
		qr.JobTitle = snapshot.JobTitle
		qr.ResumeText = snapshot.ResumeText

		questions, err = s.questions.Generate(ctx, qr)
		if err != nil {
			return nil, err
		}
		if IsPlaceholder(questions) {
			return nil, apperr.Upstream(QuestionPlaceholder, nil)
		}
	}

	return s.sessions.SetQuestions(sessionID, questions)
}

// Complete freezes the session, appends it to the log store and drops it
// from memory. A failed append reopens the session so it can be retried.
func (s *interviewService) Complete(ctx context.Context, sessionID string) (*models.LogEntry, error) {
	session, err := s.sessions.Finish(sessionID)
	if err != nil {
		return nil, err
	}

	saved, err := s.logs.Append(ctx, models.LogEntry{
		CandidateName: session.CandidateName,
		JobTitle:      session.JobTitle,
		Responses:     session.Responses,
		ResumeText:    session.ResumeText,
		Emotions:      session.Emotions,
	})
	if err != nil {
		log.Printf("❌ Failed to persist session %s: %v\n", sessionID, err)
		if reopenErr := s.sessions.Reopen(sessionID); reopenErr != nil {
			log.Printf("⚠️ Failed to reopen session %s: %v\n", sessionID, reopenErr)
		}
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.Storage("failed to persist interview log", err)
		}
		return nil, err
	}

	s.sessions.Remove(sessionID)
	log.Printf("✅ Session %s saved as log %s\n", sessionID, saved.ID)
	return saved, nil
}

// EvaluateCandidate runs the feedback engine over the candidate's latest log.
func (s *interviewService) EvaluateCandidate(ctx context.Context, candidateName string) (*models.CandidateFeedbackResponse, error) {
	entry, err := s.logs.FindLatest(ctx, candidateName)
	if err != nil {
		return nil, err
	}

	result := s.feedback.Evaluate(entry.ResumeText, entry.Responses, entry.EmotionLabels())
	return &models.CandidateFeedbackResponse{
		Candidate:      entry.CandidateName,
		JobTitle:       entry.JobTitle,
		Recommendation: result.Recommendation,
		Feedback:       result.FeedbackPoints,
	}, nil
}

func (s *interviewService) Evaluate(req models.EvaluateRequest) models.FeedbackResult {
	return s.feedback.Evaluate(req.ResumeText, req.Responses, req.Emotions)
}

// NewQuestionRequest maps the HTTP options onto a provider request. Every
// question type is included unless explicitly turned off.
func NewQuestionRequest(req models.GenerateQuestionsRequest) QuestionRequest {
	return QuestionRequest{
		Source:            req.Source,
		JobTitle:          req.JobTitle,
		Language:          req.Language,
		ExperienceLevel:   req.ExperienceLevel,
		Count:             req.Count,
		IncludeTechnical:  boolOr(req.IncludeTechnical, true),
		IncludeBehavioral: boolOr(req.IncludeBehavioral, true),
		IncludeScenarios:  boolOr(req.IncludeScenarios, true),
	}
}

// IsPlaceholder reports whether questions is the generator failure stand-in.
func IsPlaceholder(questions []string) bool {
	return len(questions) == 1 && questions[0] == QuestionPlaceholder
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
