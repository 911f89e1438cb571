package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/routerstore/internal/errors"
	"github.com/vango-dev/routerstore/pkg/routerstore"
)

// handleSerialize decodes a posted snapshot, serializes it, archives it on
// request and records the result. The response body is the serialized state; the archive key, when
// the state was archived, is returned in the X-Archive-Key header.
func (s *Server) handleSerialize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	kind := s.kind
	if name := query.Get("serializer"); name != "" {
		parsed, err := routerstore.ParseKind(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		kind = parsed
	}

	if query.Has("archive") && s.archive == nil {
		s.writeError(w, r, errors.New("R032"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, errors.New("R020").WithDetail(err.Error()).Wrap(err))
		return
	}

	snapshot, err := routerstore.DecodeRouterState(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state := s.serializers[kind].SerializeContext(r.Context(), snapshot)

	// Archive before recording so a failed request leaves no trace in devtools.
	if query.Has("archive") {
		key, err := s.archive.Put(r.Context(), query.Get("archive"), state)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("X-Archive-Key", key)
	}

	msg := s.hub.Record(kind, snapshot.URL, state)

	s.logger.Info("router state recorded",
		"seq", msg.Seq,
		"serializer", kind,
		"url", snapshot.URL,
	)
	s.writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.hub.History())
}

func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		s.writeError(w, r, errors.New("R032"))
		return
	}
	ids, err := s.archive.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, r, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		s.writeError(w, r, errors.New("R032"))
		return
	}
	data, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := routerstore.Encode(v, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
