// file:artkv/servs/s_art/art_api/handlers.go
package art_api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rskv-p/artkv/pkg/x_art"
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
)

// maxValueSize bounds request bodies.
const maxValueSize = 1 << 20

// Item is one key/value pair in list responses. Bytes travel as base64 so
// binary keys survive JSON.
type Item struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// PutResponse reports whether a value was replaced.
type PutResponse struct {
	Replaced bool   `json:"replaced"`
	Old      []byte `json:"old,omitempty"`
}

// handleGet returns the raw value of one key.
func handleGet(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyParam(w, r)
		if !ok {
			return
		}
		v, found := s.Get(key)
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(v)
	}
}

// handlePut stores the request body under the key.
func handlePut(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyParam(w, r)
		if !ok {
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxValueSize+1))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		if len(body) > maxValueSize {
			http.Error(w, "value too large", http.StatusRequestEntityTooLarge)
			return
		}

		old, replaced, err := s.Put(key, body)
		if err != nil {
			x_log.From(r.Context()).Warn().Err(err).Int("key_len", len(key)).Msg("put refused")
		}
		switch {
		case errors.Is(err, x_art.ErrInvalidKey):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, x_art.ErrAllocation):
			http.Error(w, err.Error(), http.StatusInsufficientStorage)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		status := http.StatusCreated
		if replaced {
			status = http.StatusOK
		}
		writeJSON(w, status, PutResponse{Replaced: replaced, Old: old})
	}
}

// handleDelete removes the key.
func handleDelete(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := keyParam(w, r)
		if !ok {
			return
		}
		if _, found := s.Delete(key); !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleList returns the pairs under ?prefix=, at most ?limit= of them.
func handleList(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit := 0
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		kvs := s.List([]byte(q.Get("prefix")), limit)
		items := make([]Item, len(kvs))
		for i, kv := range kvs {
			items[i] = Item{Key: kv.Key, Value: kv.Value}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleStats(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.Stats())
	}
}

func handleDump(s *art_serv.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		s.Dump(&buf)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

func handleSave(svc *art_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Save(r.Context())
		if err != nil {
			x_log.From(r.Context()).Error().Err(err).Msg(r.URL.Path)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"keys": n})
	}
}

func handleRestore(svc *art_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Restore(r.Context())
		if err != nil {
			x_log.From(r.Context()).Error().Err(err).Msg(r.URL.Path)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"keys": n})
	}
}

// keyParam returns the key from the rest of the path, slashes included.
// chi routes on RawPath when the request has one, leaving the wildcard
// escaped; otherwise the wildcard is already decoded.
func keyParam(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	key := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return []byte(key), true
	}
	key, err := url.PathUnescape(key)
	if err != nil {
		http.Error(w, "invalid key", http.StatusBadRequest)
		return nil, false
	}
	return []byte(key), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
