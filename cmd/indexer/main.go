// The indexer rebuilds the question/answer corpus the bot serves from: it
// reads the QA CSV, embeds every question, and swaps the corpus table and
// its build stamp in one transaction. Run it whenever the CSV or the
// embedding model changes; the bot picks the new corpus up on restart.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/config"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/index"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/store"
	"golang.org/x/sync/errgroup"
)

type qaRow struct {
	question string
	answer   string
}

func main() {
	cfg := config.LoadConfig()

	ctx := context.Background()

	db, err := store.NewPg(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal(err)
	}

	embedder, err := index.NewOllamaEmbedder(cfg.Ollama.Address(), cfg.Ollama.EmbeddingModel)
	if err != nil {
		log.Fatal(err)
	}

	rows, err := readCorpusCSV(cfg.Indexer.CorpusFile)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("read qa corpus", "file", cfg.Indexer.CorpusFile, "rows", len(rows))

	entries := make([]models.QAEntry, len(rows))

	workers := cfg.Indexer.EmbedWorkers
	if workers < 1 {
		workers = 4
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, row := range rows {
		group.Go(func() error {
			vec, err := embedder.Embed(groupCtx, row.question)
			if err != nil {
				return fmt.Errorf("failed to embed %q: %w", row.question, err)
			}

			entries[i] = models.QAEntry{
				Question:  row.question,
				Answer:    row.answer,
				Embedding: pgvector.NewVector(vec),
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatal(err)
	}

	dim := len(entries[0].Embedding.Slice())
	for _, entry := range entries {
		if len(entry.Embedding.Slice()) != dim {
			log.Fatalf("embedding for %q has dimension %d, want %d", entry.Question, len(entry.Embedding.Slice()), dim)
		}
	}

	meta := models.QACorpusMeta{
		Model: cfg.Ollama.EmbeddingModel,
		Dim:   dim,
	}

	if err := db.ReplaceCorpus(ctx, meta, entries); err != nil {
		log.Fatal(err)
	}

	slog.Info("corpus indexed", "rows", len(entries), "dim", dim, "model", meta.Model)
}

func readCorpusCSV(path string) ([]qaRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("corpus file %s has no data rows", path)
	}

	header := records[0]
	questionCol, answerCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Question":
			questionCol = i
		case "Answer":
			answerCol = i
		}
	}
	if questionCol == -1 || answerCol == -1 {
		return nil, fmt.Errorf("corpus file %s is missing Question/Answer columns", path)
	}

	rows := make([]qaRow, 0, len(records)-1)
	for _, record := range records[1:] {
		question := strings.TrimSpace(record[questionCol])
		answer := record[answerCol]
		if question == "" {
			continue
		}
		rows = append(rows, qaRow{question: question, answer: answer})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus file %s has no usable rows", path)
	}

	return rows, nil
}
