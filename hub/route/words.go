package route

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/barryzzz/speller/checker"
	"github.com/barryzzz/speller/component/trie"
	"github.com/barryzzz/speller/log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/atomic"
)

// maxVerifyBody caps the text accepted by POST /verify.
const maxVerifyBody = 4 << 20

// Store serialises access to a dictionary shared by the controller's handlers.
type Store struct {
	mux  sync.RWMutex
	dict *trie.Dictionary

	lookups  *atomic.Int64
	verifies *atomic.Int64
}

func NewStore(dict *trie.Dictionary) *Store {
	if dict == nil {
		dict = trie.New()
	}
	return &Store{
		dict:     dict,
		lookups:  atomic.NewInt64(0),
		verifies: atomic.NewInt64(0),
	}
}

func (s *Store) Contains(word string) bool {
	s.lookups.Inc()
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dict.Contains(word)
}

func (s *Store) Size() int {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dict.Size()
}

func (s *Store) Insert(word string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.dict.Insert(word)
}

// Erase reports whether word was actually removed.
func (s *Store) Erase(word string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	size := s.dict.Size()
	s.dict.Erase(word)
	return s.dict.Size() < size
}

func (s *Store) Verify(source string, r io.Reader) (*checker.Report, error) {
	s.verifies.Inc()
	s.mux.RLock()
	defer s.mux.RUnlock()
	counter, misspellings, err := checker.VerifyText(s.dict, r)
	if err != nil {
		return nil, err
	}
	return checker.NewReport(source, counter, misspellings), nil
}

func wordRouter(store *Store) http.Handler {
	r := chi.NewRouter()
	r.Get("/", getSize(store))
	r.Route("/{word}", func(r chi.Router) {
		r.Use(parseWord)
		r.Get("/", getWord(store))
		r.Put("/", putWord(store))
		r.Delete("/", deleteWord(store))
	})
	return r
}

func verifyRouter(store *Store) http.Handler {
	r := chi.NewRouter()
	r.Post("/", verify(store))
	return r
}

type contextKey string

func (c contextKey) String() string {
	return "route context key " + string(c)
}

var CtxKeyWord = contextKey("word")

func parseWord(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := chi.URLParam(r, "word")
		if !trie.IsCorrectWord(word) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrIncorrect)
			return
		}
		ctx := context.WithValue(r.Context(), CtxKeyWord, word)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSize(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, render.M{
			"size":     store.Size(),
			"lookups":  store.lookups.Load(),
			"verifies": store.verifies.Load(),
		})
	}
}

func getWord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.Context().Value(CtxKeyWord).(string)
		render.JSON(w, r, render.M{
			"word":    word,
			"present": store.Contains(word),
		})
	}
}

func putWord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.Context().Value(CtxKeyWord).(string)
		if err := store.Insert(word); err != nil {
			if errors.Is(err, trie.ErrInvalidWord) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, ErrIncorrect)
				return
			}
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, newError(err.Error()))
			return
		}
		log.Debugln("[API] inserted %s", word)
		render.NoContent(w, r)
	}
}

func deleteWord(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.Context().Value(CtxKeyWord).(string)
		removed := store.Erase(word)
		if removed {
			log.Debugln("[API] erased %s", word)
		}
		render.JSON(w, r, render.M{"removed": removed})
	}
}

func verify(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source")
		if source == "" {
			source = "request"
		}

		report, err := store.Verify(source, http.MaxBytesReader(w, r.Body, maxVerifyBody))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrBadRequest)
			return
		}
		render.JSON(w, r, report)
	}
}
