package services

import (
	"context"
	"sort"

	"alfredoptarigan/interview-coach/internal/apperr"
)

const (
	bankChunkSize    = 800
	bankChunkOverlap = 100
	bankMaxChunks    = 3
)

type bankQuestionGenerator struct {
	gemini        GeminiService
	bank          QuestionBank
	chunker       TextChunker
	promptBuilder *PromptBuilder
}

// NewBankQuestionGenerator retrieves seeded questions from the vector
// bank that are closest to the résumé, or to the job title when there is
// no résumé.
func NewBankQuestionGenerator(gemini GeminiService, bank QuestionBank, chunker TextChunker, promptBuilder *PromptBuilder) QuestionGenerator {
	return &bankQuestionGenerator{
		gemini:        gemini,
		bank:          bank,
		chunker:       chunker,
		promptBuilder: promptBuilder,
	}
}

// GenerateQuestions implements QuestionGenerator.
func (g *bankQuestionGenerator) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]string, error) {
	queries := g.chunker.ChunkText(req.ResumeText, bankChunkSize, bankChunkOverlap)
	if len(queries) > bankMaxChunks {
		queries = queries[:bankMaxChunks]
	}
	if len(queries) == 0 {
		queries = []string{g.promptBuilder.BuildBankQuery(req.JobTitle, req.ExperienceLevel)}
	}

	best := make(map[string]BankQuestion)
	for _, query := range queries {
		embedding, err := g.gemini.GenerateEmbedding(ctx, query)
		if err != nil {
			return nil, apperr.Upstream("question bank unavailable", err)
		}

		hits, err := g.bank.SearchQuestions(ctx, embedding, req.JobTitle, req.Count)
		if err != nil {
			return nil, apperr.Upstream("question bank unavailable", err)
		}

		for _, hit := range hits {
			if hit.Language != "" && hit.Language != req.Language {
				continue
			}
			if prev, ok := best[hit.Text]; !ok || hit.Score > prev.Score {
				best[hit.Text] = hit
			}
		}
	}

	ranked := make([]BankQuestion, 0, len(best))
	for _, q := range best {
		ranked = append(ranked, q)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Text < ranked[j].Text
	})

	questions := make([]string, 0, len(ranked))
	for _, q := range ranked {
		questions = append(questions, q.Text)
	}
	return questions, nil
}
