package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/services/catalog"
)

const (
	SourceLocal  = "local"
	SourceGemini = "gemini"
	SourceBank   = "bank"

	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"

	// QuestionPlaceholder is returned in place of questions when a remote
	// generator fails.
	QuestionPlaceholder = "Error generating questions. Please try again later."
)

var entryLevelExclusions = []string{"senior", "complex", "lead"}

// QuestionRequest describes one question generation call.
type QuestionRequest struct {
	Source            string
	JobTitle          string
	ResumeText        string
	Language          string
	ExperienceLevel   string
	Count             int
	IncludeTechnical  bool
	IncludeBehavioral bool
	IncludeScenarios  bool
}

// QuestionGenerator is a pluggable source of questions. Remote
// implementations return *apperr.Error of kind upstream on failure.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) ([]string, error)
}

type QuestionProvider interface {
	// Generate never fails because of the generator: remote failures
	// become the placeholder question. It only rejects unknown sources.
	Generate(ctx context.Context, req QuestionRequest) ([]string, error)
	CatalogQuestions(jobTitle string) []string
	Fields() []catalog.FieldInfo
	HasSource(source string) bool
	DefaultCount() int
}

type questionProvider struct {
	catalog      *catalog.Catalog
	generators   map[string]QuestionGenerator
	timeout      time.Duration
	defaultCount int
}

// NewQuestionProvider wires the local generator plus any remote ones
// keyed by source name. A nil remote is skipped.
func NewQuestionProvider(
	cat *catalog.Catalog,
	genericFieldFallback bool,
	timeout time.Duration,
	defaultCount int,
	remotes map[string]QuestionGenerator,
) QuestionProvider {
	if defaultCount <= 0 {
		defaultCount = 10
	}

	generators := map[string]QuestionGenerator{
		SourceLocal: NewLocalQuestionGenerator(cat, genericFieldFallback),
	}
	for source, gen := range remotes {
		if gen != nil {
			generators[source] = gen
		}
	}

	return &questionProvider{
		catalog:      cat,
		generators:   generators,
		timeout:      timeout,
		defaultCount: defaultCount,
	}
}

func (p *questionProvider) HasSource(source string) bool {
	if source == "" {
		return true
	}
	_, ok := p.generators[source]
	return ok
}

func (p *questionProvider) DefaultCount() int {
	return p.defaultCount
}

// CatalogQuestions implements QuestionProvider.
func (p *questionProvider) CatalogQuestions(jobTitle string) []string {
	return p.catalog.ForJob(strings.TrimSpace(jobTitle))
}

// Fields implements QuestionProvider.
func (p *questionProvider) Fields() []catalog.FieldInfo {
	return p.catalog.ListFields()
}

// Generate implements QuestionProvider.
func (p *questionProvider) Generate(ctx context.Context, req QuestionRequest) ([]string, error) {
	req = p.normalize(req)

	gen, ok := p.generators[req.Source]
	if !ok {
		return nil, apperr.Validation("unknown question source %q", req.Source)
	}

	var (
		questions []string
		err       error
	)
	if req.Source == SourceLocal {
		questions, err = gen.GenerateQuestions(ctx, req)
	} else {
		questions, err = p.generateRemote(ctx, gen, req)
	}

	if err != nil {
		log.Printf("⚠️ %s question generation failed for %q: %v\n", req.Source, req.JobTitle, err)
		return []string{QuestionPlaceholder}, nil
	}
	if req.Source != SourceLocal && len(questions) == 0 {
		log.Printf("⚠️ %s question generation returned no questions for %q\n", req.Source, req.JobTitle)
		return []string{QuestionPlaceholder}, nil
	}

	return truncate(dedupe(questions), req.Count), nil
}

func (p *questionProvider) generateRemote(ctx context.Context, gen QuestionGenerator, req QuestionRequest) ([]string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	return gen.GenerateQuestions(ctx, req)
}

func (p *questionProvider) normalize(req QuestionRequest) QuestionRequest {
	req.Source = strings.ToLower(strings.TrimSpace(req.Source))
	if req.Source == "" {
		req.Source = SourceLocal
	}
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))
	if req.Language == "" {
		req.Language = "en"
	}
	req.ExperienceLevel = strings.ToLower(strings.TrimSpace(req.ExperienceLevel))
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = LevelMid
	}
	if req.Count <= 0 {
		req.Count = p.defaultCount
	}
	return req
}

type localQuestionGenerator struct {
	catalog         *catalog.Catalog
	genericFallback bool
}

// NewLocalQuestionGenerator builds questions from the résumé and the
// static catalog without any network call.
func NewLocalQuestionGenerator(cat *catalog.Catalog, genericFallback bool) QuestionGenerator {
	return &localQuestionGenerator{catalog: cat, genericFallback: genericFallback}
}

// GenerateQuestions implements QuestionGenerator. Order: résumé questions,
// field questions, common questions. The level filter does not touch the
// résumé questions.
func (g *localQuestionGenerator) GenerateQuestions(_ context.Context, req QuestionRequest) ([]string, error) {
	var questions []string
	if strings.TrimSpace(req.ResumeText) != "" {
		questions = append(questions, ResumeQuestions(req.ResumeText, req.Language)...)
	}

	fq, ok := g.catalog.Field(req.JobTitle)
	if !ok && g.genericFallback {
		fq, ok = g.catalog.GenericFieldQuestions, true
	}

	var pool []string
	if ok {
		pool = fq.Select(req.IncludeTechnical, req.IncludeBehavioral, req.IncludeScenarios)
	}
	pool = append(pool, g.catalog.Common(req.Language)...)

	return append(questions, FilterByLevel(pool, req.ExperienceLevel)...), nil
}

// ResumeQuestions templates up to four questions from the parsed résumé.
func ResumeQuestions(resumeText, language string) []string {
	parsed := ParseResume(resumeText)
	hasName := parsed.Name != "" && parsed.Name != "Name Not Found"

	var questions []string
	if language == "ur" {
		if hasName {
			questions = append(questions, fmt.Sprintf("آپ کا نام %s ہے؟ براہ کرم اپنا تعارف کروائیں۔", parsed.Name))
		}
		if len(parsed.Skills) > 0 {
			questions = append(questions, fmt.Sprintf("آپ کی مہارتیں: %s. ان میں سے سب سے اہم کون سی ہے؟", strings.Join(parsed.Skills, ", ")))
		}
		if len(parsed.Projects) > 0 {
			questions = append(questions, fmt.Sprintf("اپنے پراجیکٹ '%s' کے بارے میں بتائیں۔", parsed.Projects[0]))
		}
		return append(questions, "آپ اس جاب میں کیوں دلچسپی رکھتے ہیں؟")
	}

	if hasName {
		questions = append(questions, fmt.Sprintf("Is your name %s? Please introduce yourself.", parsed.Name))
	}
	if len(parsed.Skills) > 0 {
		questions = append(questions, fmt.Sprintf("Your skills include: %s. Which is your strongest?", strings.Join(parsed.Skills, ", ")))
	}
	if len(parsed.Projects) > 0 {
		questions = append(questions, fmt.Sprintf("Tell me about your project '%s'.", parsed.Projects[0]))
	}
	return append(questions, "Why are you interested in this job?")
}

// FilterByLevel drops senior-sounding questions for entry candidates and
// upgrades "basic" to "advanced" for senior ones. Other levels pass through.
func FilterByLevel(questions []string, level string) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		switch level {
		case LevelEntry:
			if containsAny(strings.ToLower(q), entryLevelExclusions) {
				continue
			}
		case LevelSenior:
			q = strings.ReplaceAll(q, "basic", "advanced")
		}
		out = append(out, q)
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// dedupe keeps the first occurrence of every question.
func dedupe(questions []string) []string {
	seen := make(map[string]struct{}, len(questions))
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

func truncate(questions []string, count int) []string {
	if count >= 0 && len(questions) > count {
		return questions[:count]
	}
	return questions
}
