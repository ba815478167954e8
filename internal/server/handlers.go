package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/notecache/pkg/core"
)

const greeting = "Сервер працює!"

// maxMemory is the in-memory share of a multipart form; the rest spills to
// temporary files. The body itself is still capped by MaxBodyBytes.
const maxMemory = 1 << 20

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, greeting)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.service.GetNote(r.Context(), noteName(r))
	if err != nil {
		s.writeError(w, r, err, errorBodies{})
		return
	}
	writeText(w, http.StatusOK, note.Text)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		s.writeBodyError(w, r, err)
		return
	}

	if err := s.service.UpdateNote(r.Context(), noteName(r), string(body)); err != nil {
		s.writeError(w, r, err, errorBodies{})
		return
	}
	writeText(w, http.StatusOK, "Note updated")
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteNote(r.Context(), noteName(r)); err != nil {
		s.writeError(w, r, err, errorBodies{})
		return
	}
	writeText(w, http.StatusOK, "Note deleted")
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.service.ListNotesMatching(r.Context(), r.URL.Query().Get("match"))
	if err != nil {
		s.writeError(w, r, err, errorBodies{
			badRequest: "Invalid match pattern",
			internal:   "Error reading notes",
		})
		return
	}
	if notes == nil {
		notes = []core.Note{}
	}

	data, err := json.Marshal(notes)
	if err != nil {
		s.writeError(w, r, err, errorBodies{internal: "Error reading notes"})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleWrite creates a note from a multipart or urlencoded form.
func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	// ParseMultipartForm hides urlencoded read errors behind ErrNotMultipart.
	if err := r.ParseForm(); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.writeBodyError(w, r, err)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	name := r.PostFormValue("note_name")
	text := r.PostFormValue("note")
	if name == "" || text == "" {
		writeText(w, http.StatusBadRequest, "Note name and content are required")
		return
	}

	if err := s.service.CreateNote(r.Context(), name, text); err != nil {
		s.writeError(w, r, err, errorBodies{
			badRequest: "Invalid note name",
			internal:   "Error writing note",
		})
		return
	}
	writeText(w, http.StatusCreated, "Note created")
}

// noteName returns the decoded {name} path segment. chi matches against the
// escaped path when the request carries one.
func noteName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		// Left undecoded: such a name is never a stored note.
		return name
	}
	return decoded
}

// writeText writes msg as the whole response body, without a trailing newline.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}
