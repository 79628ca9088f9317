// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package messages implements the message board: a stored list of short
// messages plus a random phrase generator per category.
package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
)

// Categories.
const (
	CategoryGreetings    = "greetings"
	CategoryJokes        = "jokes"
	CategoryMotivational = "motivational"
	CategoryLove         = "love"

	// CategoryAll disables category filtering in List.
	CategoryAll = "all"
)

// Sort orders accepted by List.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortPopular = "popular"
)

// MaxContentLength bounds message bodies in runes.
const MaxContentLength = 500

var (
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidSort      = errors.New("unknown sort order")
	ErrContentRequired  = errors.New("content is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrContentTooLong   = errors.New("content is too long")
	ErrNotFound         = errors.New("message not found")
)

var categories = []string{CategoryGreetings, CategoryJokes, CategoryMotivational, CategoryLove}

// Categories returns the known categories in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	return lo.Contains(categories, c)
}

// User is the author attached to a message.
type User struct {
	Username     string  `json:"username"`
	ProfilePhoto *string `json:"profilePhoto"`
}

// Message is a board entry.
type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Likes     int       `json:"likes"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter narrows List results.
type Filter struct {
	Category string
	Sort     string
}

// Repository stores board messages.
type Repository interface {
	Get(ctx context.Context, id int64) (Message, error)
	List(ctx context.Context, f Filter) ([]Message, error)
	Insert(ctx context.Context, m Message) (Message, error)
}

// NewMessage is the input of Create.
type NewMessage struct {
	Content  string `json:"content"`
	Category string `json:"category"`
	User     *User  `json:"user"`
}

// Service validates requests and delegates storage to a Repository.
type Service struct {
	repo   Repository
	now    func() time.Time
	pick   func([]string) string
	logger zerolog.Logger
}

// NewService returns a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		pick:   lo.Sample[string],
		logger: cglog.WithComponent("messages"),
	}
}

// List returns stored messages. An empty or "all" category returns every
// message; an empty sort keeps insertion order.
func (s *Service) List(ctx context.Context, f Filter) ([]Message, error) {
	if f.Category == CategoryAll {
		f.Category = ""
	}
	if f.Category != "" && !ValidCategory(f.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, f.Category)
	}
	switch f.Sort {
	case "", SortNewest, SortOldest, SortPopular:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, f.Sort)
	}
	return s.repo.List(ctx, f)
}

// Random returns an unsaved message drawn from the phrase book. The default
// category is greetings.
func (s *Service) Random(category string) (Message, error) {
	if category == "" {
		category = CategoryGreetings
	}
	phrases, ok := phraseBook[category]
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	now := s.now().UTC()
	return Message{
		ID:        now.UnixMilli(),
		Content:   s.pick(phrases),
		Category:  category,
		CreatedAt: now,
	}, nil
}

// Create validates and stores a new message with zero likes.
func (s *Service) Create(ctx context.Context, in NewMessage) (Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return Message{}, ErrContentRequired
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return Message{}, ErrContentTooLong
	}
	if in.Category == "" {
		return Message{}, ErrCategoryRequired
	}
	if !ValidCategory(in.Category) {
		return Message{}, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}

	msg, err := s.repo.Insert(ctx, Message{
		Content:   content,
		Category:  in.Category,
		User:      in.User,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	metrics.IncMessageCreated(msg.Category)
	s.logger.Info().
		Str(cglog.FieldEvent, "message.created").
		Int64("id", msg.ID).
		Str("category", msg.Category).
		Msg("message created")
	return msg, nil
}

// Get returns one stored message.
func (s *Service) Get(ctx context.Context, id int64) (Message, error) {
	return s.repo.Get(ctx, id)
}
