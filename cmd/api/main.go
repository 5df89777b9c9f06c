package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"finmodeler/pkg/api/generate"
	"finmodeler/pkg/api/session"
)

func main() {
	// Load environment variables
	godotenv.Load()

	store := session.NewStore()
	generate.InitHandler(store)

	http.HandleFunc("/api/session/create", generate.HandleCreateSession)
	http.HandleFunc("/api/session/model", generate.HandleGetModel)
	http.HandleFunc("/api/session/update", generate.HandleUpdateModel)
	http.HandleFunc("/api/generate", generate.HandleGenerate)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/session/create")
	fmt.Println("  - GET  /api/session/model?session_id=...")
	fmt.Println("  - POST /api/session/update")
	fmt.Println("  - POST /api/generate  (returns .xlsx)")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
