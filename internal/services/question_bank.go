package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// BankQuestion is one question stored in the vector question bank.
type BankQuestion struct {
	ID       string
	Text     string
	JobTitle string
	Type     string
	Language string
	Score    float32
}

type QuestionBank interface {
	InitCollection(ctx context.Context) error
	UpsertQuestion(ctx context.Context, q BankQuestion, embedding []float32) error
	SearchQuestions(ctx context.Context, queryEmbedding []float32, jobTitle string, limit int) ([]BankQuestion, error)
	DeleteJobTitle(ctx context.Context, jobTitle string) error
	Close() error
}

type questionBank struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQuestionBank(urlStr, apiKey, collectionName string) (QuestionBank, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &questionBank{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
	}, nil
}

// InitCollection implements QuestionBank.
func (q *questionBank) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Printf("✅ Qdrant collection '%s' already exists\n", q.collectionName)
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// BankPointID is stable for a given job title and question text, so
// re-seeding the bank overwrites instead of duplicating.
func BankPointID(jobTitle, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(jobTitle)+"\x00"+text)).String()
}

// UpsertQuestion implements QuestionBank.
func (q *questionBank) UpsertQuestion(ctx context.Context, bq BankQuestion, embedding []float32) error {
	id := bq.ID
	if id == "" {
		id = BankPointID(bq.JobTitle, bq.Text)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"job_title": strings.ToLower(bq.JobTitle),
			"type":      bq.Type,
			"language":  bq.Language,
			"text":      bq.Text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}
	return nil
}

// SearchQuestions implements QuestionBank. An empty jobTitle searches
// the whole bank.
func (q *questionBank) SearchQuestions(ctx context.Context, queryEmbedding []float32, jobTitle string, limit int) ([]BankQuestion, error) {
	var filter *qdrant.Filter
	if jobTitle != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_title", strings.ToLower(jobTitle)),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search question bank: %w", err)
	}

	results := make([]BankQuestion, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		results = append(results, BankQuestion{
			ID:       point.GetId().GetUuid(),
			Text:     payload["text"].GetStringValue(),
			JobTitle: payload["job_title"].GetStringValue(),
			Type:     payload["type"].GetStringValue(),
			Language: payload["language"].GetStringValue(),
			Score:    point.Score,
		})
	}
	return results, nil
}

// DeleteJobTitle implements QuestionBank.
func (q *questionBank) DeleteJobTitle(ctx context.Context, jobTitle string) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{
					Must: []*qdrant.Condition{
						qdrant.NewMatch("job_title", strings.ToLower(jobTitle)),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete questions for %s: %w", jobTitle, err)
	}
	return nil
}

func (q *questionBank) Close() error {
	return q.client.Close()
}
