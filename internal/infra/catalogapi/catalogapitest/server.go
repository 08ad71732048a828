// Package catalogapitest provides an in-memory catalog API for tests.
package catalogapitest

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Category ids served by the fake API.
const (
	CategoryFertilizers      = "cat-fertilizers"
	CategorySoilConditioners = "cat-soil"
	CategorySeeds            = "cat-seeds"
)

// ProductCount is the number of products the fake API serves.
const ProductCount = 45

// Server is a fake catalog API backed by httptest.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	calls     map[string]int
	failNext  map[string]int
	gate      chan struct{}
	contacts  []map[string]string
	products  []map[string]any
	articles  []map[string]any
	cats      []map[string]any
	defLimit  int
	rawBodies map[string]string
}

// NewServer starts a fake API with 45 products in three categories, the
// categories themselves and three articles.
func NewServer() *Server {
	s := &Server{
		calls:     make(map[string]int),
		failNext:  make(map[string]int),
		rawBodies: make(map[string]string),
		defLimit:  10,
	}
	s.cats = []map[string]any{
		category(CategoryFertilizers, "Fertilizers", "أسمدة", "Engrais"),
		category(CategorySoilConditioners, "Soil Conditioners", "محسنات التربة", "Amendements"),
		category(CategorySeeds, "Seeds", "بذور", "Semences"),
	}
	for i := 1; i <= ProductCount; i++ {
		cat := s.cats[(i-1)%len(s.cats)]
		s.products = append(s.products, map[string]any{
			"_id":         fmt.Sprintf("p%02d", i),
			"name":        map[string]string{"en": fmt.Sprintf("Product %d", i), "ar": fmt.Sprintf("منتج %d", i), "fr": fmt.Sprintf("Produit %d", i)},
			"description": map[string]string{"en": fmt.Sprintf("<p>Description %d</p>", i)},
			"image":       fmt.Sprintf("https://cdn.example.com/p%02d.jpg", i),
			"category":    cat,
		})
	}
	s.articles = []map[string]any{
		{
			"_id":       "a1",
			"title":     map[string]string{"en": "Healthy Soil Basics", "ar": "أساسيات التربة الصحية", "fr": "Les bases d'un sol sain"},
			"content":   map[string]string{"en": "<p>" + strings.Repeat("soil ", 450) + "</p>"},
			"excerpt":   map[string]string{"en": "Why soil health matters", "ar": "لماذا صحة التربة مهمة", "fr": "Pourquoi la santé du sol compte"},
			"category":  map[string]string{"en": "Soil", "ar": "التربة", "fr": "Sol"},
			"author":    map[string]string{"en": "Agronomy Team"},
			"imageUrl":  "https://cdn.example.com/a1.jpg",
			"createdAt": "2024-03-10T08:00:00.000Z",
			"readTime":  7,
			"featured":  true,
		},
		{
			"_id":       "a2",
			"title":     map[string]string{"en": "Choosing Fertilizer", "fr": "Choisir un engrais"},
			"content":   map[string]string{"en": "<p>Nitrogen, phosphorus and potassium are the core nutrients every crop needs through the growing season.</p>", "fr": "<p>Azote et phosphore.</p>"},
			"category":  map[string]string{"en": "Nutrition", "fr": "Nutrition"},
			"imageUrl":  "https://cdn.example.com/a2.jpg",
			"createdAt": "2024-04-02T10:30:00Z",
			"readTime":  0,
			"featured":  false,
		},
		{
			"_id":       "a3",
			"title":     map[string]string{"en": "Seed Storage"},
			"content":   map[string]string{},
			"excerpt":   map[string]string{"en": "Keep seeds dry"},
			"category":  map[string]string{"en": "Seeds"},
			"imageUrl":  "https://cdn.example.com/a3.jpg",
			"createdAt": "not a date",
			"featured":  false,
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func category(id, en, ar, fr string) map[string]any {
	return map[string]any{"_id": id, "name": map[string]string{"en": en, "ar": ar, "fr": fr}}
}

// Calls returns how many requests reached requestURI, e.g. "/product?page=2".
func (s *Server) Calls(requestURI string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[requestURI]
}

// TotalCalls returns how many requests reached the server.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// FailNext makes the next request to path (without query) answer status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[path] = status
}

// SetRawResponse makes every request to path answer 200 with body.
func (s *Server) SetRawResponse(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawBodies[path] = body
}

// Block holds every response until Release is called. Requests are still
// counted on arrival.
func (s *Server) Block() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate == nil {
		s.gate = make(chan struct{})
	}
}

// Release lets held responses proceed.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Contacts returns the contact submissions received.
func (s *Server) Contacts() []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]string(nil), s.contacts...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls[r.URL.RequestURI()]++
	gate := s.gate
	status, fail := s.failNext[r.URL.Path]
	delete(s.failNext, r.URL.Path)
	raw, hasRaw := s.rawBodies[r.URL.Path]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}
	if fail {
		writeJSON(w, status, map[string]any{"status": false, "message": http.StatusText(status)})
		return
	}
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, raw)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "product":
		s.listProducts(w, r)
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "product":
		s.getItem(w, "product", s.products, parts[1])
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "category":
		ok(w, map[string]any{"categories": s.cats})
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "category":
		s.getItem(w, "category", s.cats, parts[1])
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] == "article":
		ok(w, map[string]any{"articles": s.articles})
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "article":
		s.getItem(w, "article", s.articles, parts[1])
	case r.Method == http.MethodPost && len(parts) == 1 && parts[0] == "contact":
		s.contact(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"status": false, "message": "route not found"})
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = s.defLimit
	}
	catID := q.Get("category")

	var matched []map[string]any
	for _, p := range s.products {
		if catID == "" || p["category"].(map[string]any)["_id"] == catID {
			matched = append(matched, p)
		}
	}
	totalPages := int(math.Ceil(float64(len(matched)) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * limit
	end := start + limit
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	products := matched[start:end]
	if products == nil {
		products = []map[string]any{}
	}
	ok(w, map[string]any{
		"products": products,
		"pagination": map[string]any{
			"currentPage": page,
			"totalPages":  totalPages,
			"limit":       limit,
			"total":       len(matched),
		},
	})
}

func (s *Server) getItem(w http.ResponseWriter, key string, items []map[string]any, id string) {
	for _, it := range items {
		if it["_id"] == id {
			ok(w, map[string]any{key: it})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"status": false, "message": key + " not found"})
}

func (s *Server) contact(w http.ResponseWriter, r *http.Request) {
	var form map[string]string
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": false, "message": "invalid body"})
		return
	}
	s.mu.Lock()
	s.contacts = append(s.contacts, form)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"status": true, "message": "Message sent successfully", "data": form})
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"status": true, "message": "success", "data": data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
