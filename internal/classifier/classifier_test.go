package classifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/questd/internal/category"
	"github.com/sandeepkv93/questd/internal/model"
)

type stubClassifier struct {
	s   Suggestion
	err error
}

func (s stubClassifier) Suggest(context.Context, string) (Suggestion, error) { return s.s, s.err }

type registryCats struct{ r *category.Registry }

func (c registryCats) HasCategory(label string) bool { return c.r.Contains(label) }

func cats() Categories { return registryCats{r: category.NewRegistry()} }

func TestResolveAcceptsValidSuggestion(t *testing.T) {
	got := Resolve(context.Background(), stubClassifier{s: Suggestion{Priority: "HIGH", Category: "Work", Description: "Ship the release notes."}}, "ship notes", cats())
	assert.Equal(t, Resolved{Priority: model.PriorityHigh, Category: "work", Description: "Ship the release notes."}, got)
}

func TestResolveFallsBackOnInvalidValues(t *testing.T) {
	got := Resolve(context.Background(), stubClassifier{s: Suggestion{Priority: "urgent", Category: "garden"}}, " water plants ", cats())
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, "personal", got.Category)
	assert.Equal(t, "water plants", got.Description)
	assert.True(t, got.Fallback)
}

func TestResolveFallsBackOnError(t *testing.T) {
	got := Resolve(context.Background(), stubClassifier{err: ErrUnavailable}, "call bank", cats())
	assert.Equal(t, Resolved{Priority: model.PriorityMedium, Category: "personal", Description: "call bank", Fallback: true}, got)

	got = Resolve(context.Background(), nil, "call bank", cats())
	assert.True(t, got.Fallback)
}

func TestResolveTruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", 600)
	got := Resolve(context.Background(), stubClassifier{s: Suggestion{Priority: "low", Category: "other", Description: long}}, "x", cats())
	assert.Len(t, []rune(got.Description), 500)
}

func TestHTTPClassifierSuggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"taskText":"buy milk"}`, string(body))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"priority":"low","category":"shopping","description":"Pick up milk."}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "secret", 0)
	got, err := c.Suggest(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.Equal(t, Suggestion{Priority: "low", Category: "shopping", Description: "Pick up milk."}, got)
}

func TestHTTPClassifierErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"GEMINI_API_KEY not configured"}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	_, err := NewHTTPClassifier(srv.URL+"/fail", "", 0).Suggest(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	_, err = NewHTTPClassifier(srv.URL+"/garbage", "", 0).Suggest(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUnavailable)

	got := Resolve(context.Background(), NewHTTPClassifier(srv.URL+"/garbage", "", 0), "x", cats())
	assert.True(t, got.Fallback)
}
