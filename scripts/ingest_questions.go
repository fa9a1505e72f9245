package main

import (
	"context"
	"flag"
	"log"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/services"
	"alfredoptarigan/interview-coach/internal/services/catalog"
)

// Seeds the Qdrant question bank from the question catalog so the "bank"
// question source has something to retrieve.
func main() {
	reset := flag.Bool("reset", false, "delete existing questions of each job title before seeding")
	flag.Parse()

	log.Println("🚀 Starting question ingestion...")

	cfg := config.Load()
	if !cfg.Gemini.Enabled() {
		log.Fatal("❌ GEMINI_API_KEY is required to embed questions")
	}
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required")
	}

	questionCatalog, err := catalog.Load(cfg.Questions.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load question catalog: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	bank, err := services.NewQuestionBank(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	defer bank.Close()

	ctx := context.Background()
	if err := bank.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	var questions []services.BankQuestion
	for jobTitle, fq := range questionCatalog.FieldQuestions {
		for qType, list := range map[string][]string{
			catalog.TypeTechnical:  fq.Technical,
			catalog.TypeBehavioral: fq.Behavioral,
			catalog.TypeScenario:   fq.Scenario,
		} {
			for _, text := range list {
				questions = append(questions, services.BankQuestion{JobTitle: jobTitle, Type: qType, Language: "en", Text: text})
			}
		}
	}
	for jobTitle, list := range questionCatalog.JobQuestions {
		for _, text := range list {
			questions = append(questions, services.BankQuestion{JobTitle: jobTitle, Type: catalog.TypeTechnical, Language: "en", Text: text})
		}
	}

	if *reset {
		cleared := map[string]bool{}
		for _, q := range questions {
			if cleared[q.JobTitle] {
				continue
			}
			if err := bank.DeleteJobTitle(ctx, q.JobTitle); err != nil {
				log.Fatalf("❌ Failed to reset %s: %v", q.JobTitle, err)
			}
			cleared[q.JobTitle] = true
		}
		log.Printf("🗑️  Cleared %d job titles", len(cleared))
	}

	successCount := 0
	failCount := 0

	for i, q := range questions {
		embedding, err := geminiService.GenerateEmbedding(ctx, q.Text)
		if err != nil {
			log.Printf("   ❌ Failed to embed question %d: %v", i+1, err)
			failCount++
			continue
		}

		if err := bank.UpsertQuestion(ctx, q, embedding); err != nil {
			log.Printf("   ❌ Failed to store question %d: %v", i+1, err)
			failCount++
			continue
		}
		successCount++
	}

	log.Printf("\n✅ Ingestion completed: %d stored, %d failed", successCount, failCount)
}
