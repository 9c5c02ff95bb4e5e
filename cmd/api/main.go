package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"statement_insight/pkg/api/analyze"
	"statement_insight/pkg/api/chatapi"
	"statement_insight/pkg/api/commentary"
	apiconfig "statement_insight/pkg/api/config"
	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/calc"
	"statement_insight/pkg/core/session"
	"statement_insight/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Provider configuration
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			log.Printf("[WARNING] config/models.yaml is invalid: %v", err)
		}
	} else {
		log.Printf("[WARNING] config/models.yaml not found, using defaults")
	}
	agentMgr := agent.NewManager(agentCfg)

	// Indicator aliases; defaults cover the standard Vietnamese and English
	// statement labels.
	matcher := calc.DefaultMatcher()
	if m, err := calc.LoadMatcher("config/indicators.yaml"); err == nil {
		matcher = m
	} else {
		log.Printf("[WARNING] indicator config not loaded: %v", err)
	}

	opts := calc.Options{Matcher: matcher}
	if os.Getenv("NUMERIC_MODE") == "strict" {
		opts.Mode = calc.ModeStrict
	}

	// Optional snapshot persistence
	var repo *store.SnapshotRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			log.Printf("[WARNING] snapshot store disabled: %v", err)
		} else {
			repo = store.NewSnapshotRepo()
			fmt.Println("[STORE] snapshot persistence enabled")
		}
	}

	registry := session.NewRegistry()

	analyzeHandler := analyze.NewHandler(agentMgr, registry, opts, repo)
	http.HandleFunc("/api/analyze", analyzeHandler.HandleAnalyze)

	commentaryHandler := commentary.NewHandler(agentMgr, registry)
	http.HandleFunc("/api/commentary", commentaryHandler.HandleCommentary)

	chatHandler := chatapi.NewHandler(registry)
	http.HandleFunc("/api/chat", chatHandler.HandleAsk)
	http.HandleFunc("/api/chat/history", chatHandler.HandleHistory)

	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/analyze        (multipart statement upload)")
	fmt.Println("  - POST /api/commentary     (AI assessment)")
	fmt.Println("  - POST /api/chat           (Q&A over the analysis)")
	fmt.Println("  - GET  /api/chat/history")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
