// Command fake_redcap serves a small in-memory REDCap API for trying the CLI
// without a real project.
//
//	go run ./scripts/testservers/fake_redcap -port 8080 -token SECRET
//	redcap --url http://localhost:8080/api/ --token SECRET arms list
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type store struct {
	mu   sync.Mutex
	data map[string][]map[string]any
	// key names the field that identifies an item of each content
	key map[string]string
}

func newStore() *store {
	return &store{
		data: map[string][]map[string]any{
			"arm": {{"arm_num": 1, "name": "Arm 1"}},
			"dag": {},
			"event": {{
				"event_name": "Baseline", "arm_num": 1, "unique_event_name": "baseline_arm_1",
				"custom_event_label": "", "event_id": 41,
			}},
			"instrument": {{"instrument_name": "demographics", "instrument_label": "Demographics"}},
			"user":       {{"username": "alice", "email": "alice@example.org"}},
			"userRole":   {},
		},
		key: map[string]string{
			"arm":      "arm_num",
			"dag":      "unique_group_name",
			"event":    "unique_event_name",
			"user":     "username",
			"userRole": "unique_role_name",
		},
	}
}

func main() {
	port := flag.Int("port", 8080, "Listening port")
	token := flag.String("token", "", "Accepted API token")
	version := flag.String("version", "14.5.2", "Version string to report")
	flag.Parse()

	if strings.TrimSpace(*token) == "" {
		log.Fatalf("token is required")
	}

	s := newStore()
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Post("/api/", func(w http.ResponseWriter, r *http.Request) {
		handleAPI(w, r, s, *token, *version)
	})
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]bool{"ok": true})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("fake REDCap API listening on %s/api/", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}

func handleAPI(w http.ResponseWriter, r *http.Request, s *store, token, version string) {
	if err := r.ParseMultipartForm(8 << 20); err != nil && err != http.ErrNotMultipart {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.PostForm.Get("token") != token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	content := r.PostForm.Get("content")
	action := r.PostForm.Get("action")
	log.Printf("content=%s action=%s", content, action)

	switch {
	case content == "version":
		fmt.Fprint(w, version)
	case content == "project":
		respondJSON(w, map[string]any{"project_id": 1, "project_title": "Fake project", "is_longitudinal": 0})
	case content == "generateNextRecordName":
		fmt.Fprint(w, "1")
	case action == "import":
		s.importItems(w, content, r.PostForm.Get("data"), r.PostForm.Get("override") == "1")
	case action == "delete":
		s.deleteItems(w, content, r.PostForm)
	case action == "":
		s.list(w, content)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (s *store) list(w http.ResponseWriter, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.data[content]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	respondJSON(w, items)
}

func (s *store) importItems(w http.ResponseWriter, content, data string, override bool) {
	var items []map[string]any
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		respondError(w, http.StatusBadRequest, "data is not a JSON array of objects")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.key[content]
	if !ok {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}
	if override {
		s.data[content] = nil
	}
	for _, item := range items {
		id := fmt.Sprint(item[key])
		replaced := false
		for i, existing := range s.data[content] {
			if fmt.Sprint(existing[key]) == id {
				s.data[content][i] = item
				replaced = true
			}
		}
		if !replaced {
			s.data[content] = append(s.data[content], item)
		}
	}
	fmt.Fprint(w, strconv.Itoa(len(items)))
}

func (s *store) deleteItems(w http.ResponseWriter, content string, form map[string][]string) {
	listName := map[string]string{"arm": "arms", "dag": "dags", "event": "events", "user": "users", "userRole": "roles"}[content]
	if listName == "" {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}
	doomed := map[string]bool{}
	for i := 0; ; i++ {
		v, ok := form[fmt.Sprintf("%s[%d]", listName, i)]
		if !ok {
			break
		}
		doomed[v[0]] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key[content]
	kept := s.data[content][:0]
	removed := 0
	for _, item := range s.data[content] {
		if doomed[fmt.Sprint(item[key])] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.data[content] = kept
	fmt.Fprint(w, strconv.Itoa(removed))
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
