package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/graph"
	"github.com/matzehuels/tubemap/pkg/pipeline"
	"github.com/matzehuels/tubemap/pkg/store"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// layoutRequest is the body of POST /v1/layouts and POST /v1/render.{format}.
type layoutRequest struct {
	Nodes   []vgraph.NodeInput  `json:"nodes"`
	Tracks  []vgraph.TrackInput `json:"tracks"`
	Options requestOptions      `json:"options"`
}

type requestOptions struct {
	VizType   string   `json:"viz_type,omitempty"`
	Merge     *bool    `json:"merge,omitempty"`
	WidthMode string   `json:"width_mode,omitempty"`
	Pivot     string   `json:"pivot,omitempty"`
	Engine    string   `json:"engine,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Labels    *bool    `json:"labels,omitempty"`
	Palette   []string `json:"palette,omitempty"`
}

type layoutResponse struct {
	ID     string       `json:"id"`
	Layout graph.Layout `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.options(req.Options)

	l, err := s.runner.GenerateLayout(r.Context(), req.input(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	doc := store.NewDocument(l)
	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	writeJSON(w, http.StatusCreated, layoutResponse{ID: doc.ID, Layout: l})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	doc, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.queryOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	artifacts, err := s.runner.Render(r.Context(), doc.Layout, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, artifacts[format])
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	req, err := s.decodeRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.options(req.Options)
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), req.input(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, result.Artifacts[format])
}

// =============================================================================
// Request helpers
// =============================================================================

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*layoutRequest, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	var req layoutRequest
	dec := sonic.ConfigDefault.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if len(req.Tracks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no tracks")
	}
	return &req, nil
}

func (req *layoutRequest) input() vgraph.Input {
	return vgraph.Input{Nodes: req.Nodes, Tracks: req.Tracks}
}

// options merges request options over the server defaults.
func (s *Server) options(ro requestOptions) pipeline.Options {
	opts := s.defaults
	opts.Formats = nil
	if ro.VizType != "" {
		opts.VizType = ro.VizType
	}
	if ro.Merge != nil {
		opts.Merge = *ro.Merge
	}
	if ro.WidthMode != "" {
		opts.WidthMode = ro.WidthMode
	}
	if ro.Pivot != "" {
		opts.Pivot = ro.Pivot
	}
	if ro.Engine != "" {
		opts.Engine = ro.Engine
	}
	if ro.Detailed {
		opts.Detailed = true
	}
	if ro.Scale > 0 {
		opts.Scale = ro.Scale
	}
	if ro.Labels != nil {
		opts.Labels = *ro.Labels
	}
	if len(ro.Palette) > 0 {
		opts.Palette = ro.Palette
	}
	return opts
}

// queryOptions reads render options of stored layouts from the query
// string: labels, scale, palette (comma separated) and static.
func (s *Server) queryOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()
	if v := q.Get("labels"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "labels")
		}
		opts.Labels = b
	}
	if v := q.Get("static"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "static")
		}
		opts.Static = b
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		opts.Scale = f
	}
	if v := q.Get("palette"); v != "" {
		opts.Palette = strings.Split(v, ",")
	}
	return opts, nil
}

func (s *Server) lookup(r *http.Request) (*store.Document, error) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		return nil, notFound("layout %s not found", id)
	}
	return s.store.Get(r.Context(), id)
}
