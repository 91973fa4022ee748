package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
)

func main() {
	var (
		port = flag.String("port", "9099", "port to listen on")
		data = flag.String("data", "mock-boxoffice.json", "path to mock data file")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var payload []map[string]json.RawMessage
	if err := json.Unmarshal(file, &payload); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	// Hand-written fixtures may omit ids; the real provider never does.
	for i := range payload {
		if _, ok := payload[i]["id"]; !ok {
			id, _ := json.Marshal("mock-" + uuid.NewString())
			payload[i]["id"] = id
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/imdb/top-box-office", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-rapidapi-key") == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock imdb listening on %s with %d entries", addr, len(payload))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
