package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/techcloud/pkg/buildinfo"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/render"
)

// HeaderCache reports whether a response came from the cache ("hit" or "miss").
const HeaderCache = "X-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// handleLayout places the request tokens, stores the result under a new id
// and returns its JSON document.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tokens, err := req.tokens()
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := req.options(s.opts.Defaults)
	opts.Logger = s.logger
	opts.SetLayoutDefaults()
	res, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), tokens, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, doc, err := s.layouts.Put(r.Context(), res, opts.JSONOptions()...)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.logger.Debug("stored layout", "id", id, "tokens", len(res.Tokens), "cached", hit)

	w.Header().Set("Location", "/v1/layout/"+id)
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeBytes(w, http.StatusCreated, render.ContentType(render.FormatJSON), doc)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	_, doc, err := s.layouts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleRenderLayout renders a stored layout. Query parameters rotate, zoom
// and boxes adjust the view.
func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid format"))
		return
	}
	res, doc, err := s.layouts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.opts.Defaults
	opts.Logger = s.logger
	opts.Family = doc.Family
	opts.Formats = []string{format}
	q := r.URL.Query()
	for name, dst := range map[string]*float64{"rotate": &opts.Rotate, "zoom": &opts.Zoom} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v))
				return
			}
			*dst = f
		}
	}
	if v := q.Get("boxes"); v != "" {
		opts.Boxes, _ = strconv.ParseBool(v)
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeBytes(w, http.StatusOK, render.ContentType(format), artifacts[format])
}

// handleRender places and renders in one call.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid format"))
		return
	}
	req, err := decodeRequest(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tokens, err := req.tokens()
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := req.options(s.opts.Defaults)
	opts.Logger = s.logger
	opts.Formats = []string{format}
	res, layoutHit, err := s.runner.LayoutWithCacheInfo(r.Context(), tokens, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(r.Context(), res, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheStatus(layoutHit && renderHit))
	writeBytes(w, http.StatusOK, render.ContentType(format), artifacts[format])
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = errors.Classify(err)

	var body errorBody
	body.Error.Code = errors.CodeOr(err, errors.ErrCodeInternal)
	body.Error.Message = errors.Message(err)
	body.RequestID = RequestIDFrom(r.Context())
	writeJSON(w, errors.HTTPStatus(err), body)
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeBytes(w, status, render.ContentType(render.FormatJSON), data)
}

func writeBytes(w http.ResponseWriter, status int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
