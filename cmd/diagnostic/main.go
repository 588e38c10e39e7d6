// File: cmd/diagnostic/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/ai"
	"github.com/iyunix/go-medisen/internal/services/classifier"
)

func main() {
	envFile := flag.String("env", ".env", "env file to load")
	symptoms := flag.String("symptoms", "itching,skin_rash", "comma separated symptoms to classify")
	skipLLM := flag.Bool("skip-llm", false, "skip the completion check")
	flag.Parse()

	fmt.Println("🚀 medisen diagnostic")
	if err := godotenv.Load(*envFile); err != nil {
		fmt.Printf("⚠️  Could not load %s: %v\n", *envFile, err)
	}

	failed := false
	if !checkClassifier(*symptoms) {
		failed = true
	}
	if !*skipLLM && !checkCompletion() {
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}

func checkClassifier(raw string) bool {
	cfg := classifier.DefaultConfig()
	if url := os.Getenv("CLASSIFIER_URL"); url != "" {
		cfg.URL = url
	}
	var selection []domain.SymptomToken
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			selection = append(selection, domain.SymptomToken(s))
		}
	}

	fmt.Printf("🔎 Classifier %s with %v\n", cfg.URL, selection)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	results, err := classifier.NewHTTPClient(cfg).Classify(ctx, selection)
	if err != nil {
		fmt.Printf("❌ Classification failed: %v\n", err)
		return false
	}
	for i, r := range results {
		specialty := r.Specialty
		if specialty == "" {
			specialty = "-"
		}
		fmt.Printf("✅ %d. %s (%s) symptoms=%v\n", i+1, r.Disease, specialty, r.Symptoms)
	}
	return true
}

func checkCompletion() bool {
	cfg := ai.DefaultConfig()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.BaseURL = os.Getenv("OPENAI_BASE_URL")
	if model := os.Getenv("ASSISTANT_MODEL"); model != "" {
		cfg.Model = model
	}
	cfg.Timeout = 30 * time.Second

	provider, err := ai.NewOpenAIProvider(cfg)
	if err != nil {
		fmt.Printf("❌ Completion provider: %v\n", err)
		return false
	}

	fmt.Printf("💬 Completion model %s\n", cfg.Model)
	reply, err := provider.Complete(context.Background(), ai.CompletionRequest{
		Transcript: []domain.ConversationTurn{{Role: domain.RoleUser, Content: "Name one common symptom of a fungal infection."}},
	})
	if err != nil {
		fmt.Printf("❌ Chat completion failed: %v\n", err)
		return false
	}
	fmt.Printf("✅ Response: %s\n", reply)
	return true
}
