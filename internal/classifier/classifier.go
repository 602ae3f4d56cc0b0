// Package classifier consumes the external task-suggestion service and
// turns its advisory output into values the task store accepts.
package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/questd/internal/category"
	"github.com/sandeepkv93/questd/internal/model"
)

var ErrUnavailable = errors.New("classifier: unavailable")

const (
	DefaultPriority      = model.PriorityMedium
	maxDescriptionRunes  = 500
	defaultClientTimeout = 10 * time.Second
)

// Suggestion is the raw advisory answer. Any field may be empty.
type Suggestion struct {
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type Classifier interface {
	Suggest(ctx context.Context, text string) (Suggestion, error)
}

// Categories is the vocabulary suggestions are checked against.
type Categories interface {
	HasCategory(label string) bool
}

// Resolved is a suggestion narrowed to the closed vocabularies.
type Resolved struct {
	Priority    model.Priority
	Category    string
	Description string
	Fallback    bool
}

// Resolve asks c for a suggestion and validates it. Failures and invalid
// values fall back to medium priority, the personal category and the
// original text as description; no error is ever returned.
func Resolve(ctx context.Context, c Classifier, text string, cats Categories) Resolved {
	text = strings.TrimSpace(text)
	out := Resolved{
		Priority:    DefaultPriority,
		Category:    category.DefaultCategory,
		Description: text,
		Fallback:    true,
	}
	if c == nil {
		return out
	}
	s, err := c.Suggest(ctx, text)
	if err != nil {
		log.WithError(err).WithField("component", "classifier").Warn("suggestion failed, using defaults")
		return out
	}

	out.Fallback = false
	if p, err := model.ParsePriority(s.Priority); err == nil {
		out.Priority = p
	} else {
		out.Fallback = true
	}
	if label := category.Normalize(s.Category); label != "" && cats != nil && cats.HasCategory(label) {
		out.Category = label
	} else {
		out.Fallback = true
	}
	if d := strings.TrimSpace(s.Description); d != "" {
		out.Description = truncateRunes(d, maxDescriptionRunes)
	}
	return out
}

// HTTPClassifier posts {"taskText": ...} to Endpoint and expects
// {"priority", "category", "description"} back.
type HTTPClassifier struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewHTTPClassifier(endpoint, apiKey string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &HTTPClassifier{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: timeout},
	}
}

type suggestRequest struct {
	TaskText string `json:"taskText"`
}

type suggestResponse struct {
	Suggestion
	Error string `json:"error"`
}

func (h *HTTPClassifier) Suggest(ctx context.Context, text string) (Suggestion, error) {
	payload, err := sonic.Marshal(suggestRequest{TaskText: text})
	if err != nil {
		return Suggestion{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.APIKey)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Suggestion{}, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	var out suggestResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return Suggestion{}, fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return Suggestion{}, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
	return out.Suggestion, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
