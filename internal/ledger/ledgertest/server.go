// Package ledgertest runs an in-memory ledger backend for tests: REST routes plus the live websocket.
package ledgertest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"

	"github.com/GlebRadaev/billsplit/internal/domain"
	"github.com/GlebRadaev/billsplit/internal/dto"
)

type Call struct {
	Method         string
	Path           string
	Sender         string
	IdempotencyKey string
	Body           []byte
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	bills    map[string]*dto.BillDTO
	order    []string
	calls    []Call
	failures map[string]int
	subs     map[string]map[*websocket.Conn]struct{}
	nextID   int
	Now      func() time.Time
}

func New() *Server {
	s := &Server{
		bills:    make(map[string]*dto.BillDTO),
		failures: make(map[string]int),
		subs:     make(map[string]map[*websocket.Conn]struct{}),
		Now:      time.Now,
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/bills/{id}", s.getBill)
	r.Get("/bills/{id}/ws", s.subscribe)
	r.Get("/history", s.history)
	r.Head("/history", func(w http.ResponseWriter, r *http.Request) {})
	r.Post("/bills", s.createBill)
	r.Post("/bills/{id}/transactions", s.addTransaction)
	r.Post("/bills/{id}/refund", s.refund)
	r.Post("/bills/{id}/cancel", s.cancel)

	s.Server = httptest.NewServer(r)
	return s
}

// Close drops every websocket before shutting the HTTP server down.
func (s *Server) Close() {
	s.mu.Lock()
	for _, conns := range s.subs {
		for c := range conns {
			c.Close(websocket.StatusGoingAway, "server closing")
		}
	}
	s.mu.Unlock()
	s.Server.Close()
}

func (s *Server) Put(b dto.BillDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[b.ID]; !ok {
		s.order = append(s.order, b.ID)
	}
	s.bills[b.ID] = &b
}

func (s *Server) Bill(id string) (dto.BillDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok {
		return dto.BillDTO{}, false
	}
	return *b, true
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo counts requests whose method matches and whose path ends with suffix.
func (s *Server) CallsTo(method, suffix string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasSuffix(c.Path, suffix) {
			n++
		}
	}
	return n
}

// Fail makes a route answer with status until Heal is called. Route is "METHOD pattern", e.g. "POST /bills/{id}/transactions".
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

func (s *Server) Heal(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Push sends the current snapshot of a bill to its subscribers.
func (s *Server) Push(id string) error {
	s.mu.Lock()
	b, ok := s.bills[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no bill %s", id)
	}
	data, err := json.Marshal(b)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.PushRaw(id, data)
	return nil
}

func (s *Server) PushRaw(id string, data []byte) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.subs[id]))
	for c := range s.subs[id] {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = c.Write(ctx, websocket.MessageText, data)
		cancel()
	}
}

// Disconnect drops every live socket of a bill without a close handshake.
func (s *Server) Disconnect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.subs[id] {
		c.CloseNow()
	}
}

func (s *Server) Subscribers(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[id])
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := Call{
			Method:         r.Method,
			Path:           r.URL.Path,
			Sender:         r.Header.Get("Sender-Address"),
			IdempotencyKey: r.Header.Get("Idempotency-Key"),
		}
		if r.Body != nil && r.Method == http.MethodPost {
			body, err := io.ReadAll(r.Body)
			if err == nil {
				c.Body = body
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
		}
		s.mu.Lock()
		s.calls = append(s.calls, c)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failed(w http.ResponseWriter, r *http.Request) bool {
	route := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
	s.mu.Lock()
	status, ok := s.failures[route]
	s.mu.Unlock()
	if ok {
		writeJSON(w, status, map[string]string{"error": "injected failure"})
	}
	return ok
}

func (s *Server) getBill(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	s.mutate(id, s.expire)
	b, ok := s.Bill(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "bill not found"})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// expire moves an ACTIVE bill to TIMEOUT once its window is over, as the real ledger does.
func (s *Server) expire(b *dto.BillDTO) {
	if b.Status == domain.StatusActive && !b.CreatedAt.IsZero() && !s.Now().Before(b.CreatedAt.Add(domain.BillWindow)) {
		b.Status = domain.StatusTimeout
	}
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	s.mu.Lock()
	rows := make([]dto.HistoryItemDTO, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		b := s.bills[s.order[i]]
		rows = append(rows, dto.HistoryItemDTO{
			ID:                 b.ID,
			DestinationAddress: b.DestinationAddress,
			Goal:               b.Goal,
			Status:             b.Status,
			CreatedAt:          b.CreatedAt,
		})
	}
	s.mu.Unlock()

	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	var req dto.CreateBillRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Goal == 0 || req.DestinationAddress == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid bill"})
		return
	}

	s.mu.Lock()
	s.nextID++
	b := &dto.BillDTO{
		ID:                 fmt.Sprintf("bill-%d", s.nextID),
		Goal:               req.Goal,
		CreatorAddress:     req.Sender,
		DestinationAddress: req.DestinationAddress,
		ProxyWalletAddress: ProxyAddress,
		StateInitHash:      StateInit,
		CreatedAt:          dto.Timestamp{Time: s.Now().UTC()},
		Status:             domain.StatusActive,
	}
	s.bills[b.ID] = b
	s.order = append(s.order, b.ID)
	out := *b
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	var req dto.TransactionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction"})
		return
	}
	id := chi.URLParam(r, "id")
	ok := s.mutate(id, func(b *dto.BillDTO) {
		b.Transactions = append(b.Transactions, dto.TransactionDTO{
			ID:            fmt.Sprintf("%s-tx-%d", id, len(b.Transactions)+1),
			BillID:        id,
			Amount:        req.Amount,
			SenderAddress: r.Header.Get("Sender-Address"),
			CreatedAt:     dto.Timestamp{Time: s.Now().UTC()},
			OpType:        req.OpType,
		})
		if req.OpType == domain.OpContribute {
			b.Collected += req.Amount
			if b.Collected >= b.Goal {
				b.Status = domain.StatusDone
			}
		}
	})
	s.answerMutation(w, id, ok)
}

func (s *Server) refund(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	ok := s.mutate(id, func(b *dto.BillDTO) { b.Status = domain.StatusRefunded })
	s.answerMutation(w, id, ok)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	ok := s.mutate(id, func(b *dto.BillDTO) { b.Status = domain.StatusCancelled })
	s.answerMutation(w, id, ok)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	if s.failed(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	if s.subs[id] == nil {
		s.subs[id] = make(map[*websocket.Conn]struct{})
	}
	s.subs[id][conn] = struct{}{}
	s.mu.Unlock()

	ctx := conn.CloseRead(context.Background())
	<-ctx.Done()

	s.mu.Lock()
	delete(s.subs[id], conn)
	s.mu.Unlock()
	conn.CloseNow()
}

func (s *Server) mutate(id string, fn func(b *dto.BillDTO)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if ok {
		fn(b)
	}
	return ok
}

func (s *Server) answerMutation(w http.ResponseWriter, id string, ok bool) {
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "bill not found"})
		return
	}
	b, _ := s.Bill(id)
	writeJSON(w, http.StatusOK, b)
	_ = s.Push(id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
