package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/bookwise/internal/cache"
	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories/memory"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeNotifier struct {
	mu       sync.Mutex
	enabled  bool
	orders   []models.Order
	verify   []string
	approved []models.Admin
}

func (n *fakeNotifier) Enabled() bool { return n.enabled }

func (n *fakeNotifier) OrderPlaced(_ context.Context, _ string, o models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, o)
	return nil
}

func (n *fakeNotifier) AdminVerification(_ context.Context, _ models.Admin, verifyURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verify = append(n.verify, verifyURL)
	return nil
}

func (n *fakeNotifier) AdminApproved(_ context.Context, a models.Admin) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, a)
	return nil
}

type roomFixture struct {
	deps     RoomDeps
	cache    *cache.MemoryCache
	notifier *fakeNotifier
}

// newRoomFixture wires room services over memory repositories. Generated
// order ids count up: ORD-1, ORD-2, ...
func newRoomFixture() *roomFixture {
	var mu sync.Mutex
	seq := 0
	ex := extraction.New(extraction.Config{
		Now: func() time.Time { return testNow },
		NewOrderID: func(time.Time) string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("ORD-%d", seq)
		},
	})

	c := cache.NewMemoryCache()
	n := &fakeNotifier{enabled: true}
	return &roomFixture{
		cache:    c,
		notifier: n,
		deps: RoomDeps{
			Transcripts: memory.NewTranscriptRepo(),
			Orders:      memory.NewOrderRepo(),
			Events:      memory.NewOrderEventRepo(),
			Extractor:   ex,
			Notifier:    n,
			Cache:       c,
			Publisher:   c,
			Locks:       NewRoomLocks(),
			Logger:      quietLogger(),
			Now:         func() time.Time { return testNow },
		},
	}
}

var conversation = []struct {
	role models.Role
	text string
}{
	{models.RoleAssistant, "Hello! Welcome to BookWise. How can I help you today?"},
	{models.RoleCustomer, "Hi, my name is Priya Sharma."},
	{models.RoleAssistant, "Nice to meet you. Could you share your phone number?"},
	{models.RoleCustomer, "Sure, my phone number is 98765-43210."},
	{models.RoleAssistant, "Which book would you like?"},
	{models.RoleCustomer, `I'm looking for "The Midnight Library" by Matt Haig, two copies please.`},
	{models.RoleAssistant, "Great choice, a lovely fiction novel. How would you like to pay?"},
	{models.RoleCustomer, "I'll pay by UPI."},
	{models.RoleAssistant, "Should we deliver the book, or will you visit the store?"},
	{models.RoleCustomer, "Home delivery please. My address is 221B Baker Street, London."},
}

// play feeds the first n turns of conversation into room.
func play(ctx context.Context, svc TranscriptService, room string, n int) (*RoomData, error) {
	var last *RoomData
	for i, turn := range conversation[:n] {
		d, err := svc.Process(ctx, room, models.Utterance{
			UtteranceID: fmt.Sprintf("u%d", i+1),
			Role:        turn.role,
			Text:        turn.text,
			Timestamp:   float64(1000 + i),
		})
		if err != nil {
			return nil, err
		}
		last = d
	}
	return last, nil
}
