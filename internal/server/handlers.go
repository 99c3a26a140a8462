package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render"
)

type cloudResponse struct {
	ID        string            `json:"id"`
	Cloud     *cloud.Cloud      `json:"cloud"`
	Artifacts map[string]string `json:"artifacts"`
	Stats     statsResponse     `json:"stats"`
	Cached    cachedResponse    `json:"cached"`
}

type statsResponse struct {
	DistinctWords int     `json:"distinct_words"`
	Placed        int     `json:"placed"`
	Skipped       int     `json:"skipped"`
	LayoutMillis  float64 `json:"layout_ms"`
	RenderMillis  float64 `json:"render_ms"`
}

type cachedResponse struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleCreateCloud runs the pipeline and stores the artifacts under a new
// ID.
func (s *Server) handleCreateCloud(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := loggerFrom(ctx, s.logger)

	var req pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				tcerrors.New(tcerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, http.StatusBadRequest,
			tcerrors.Wrap(tcerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts := s.withDefaults(req)
	if err := checkLimits(&opts); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	opts.Logger = logger

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	id := s.newID()
	urls := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		if err := s.store.Set(ctx, s.artifactKey(id, format), data, s.artifactTTL); err != nil {
			s.writeError(w, r, http.StatusInternalServerError,
				tcerrors.Wrap(tcerrors.ErrCodeInternal, err, "store %s artifact", format))
			return
		}
		urls[format] = fmt.Sprintf("/v1/artifacts/%s.%s", id, format)
	}

	logger.Info("cloud created",
		"id", id,
		"placed", result.Stats.Placed,
		"skipped", result.Stats.Skipped,
		"layout_cached", result.CacheInfo.LayoutHit)

	writeJSON(w, http.StatusCreated, cloudResponse{
		ID:        id,
		Cloud:     result.Cloud,
		Artifacts: urls,
		Stats: statsResponse{
			DistinctWords: result.Stats.DistinctWords,
			Placed:        result.Stats.Placed,
			Skipped:       result.Stats.Skipped,
			LayoutMillis:  millis(result.Stats.CountTime + result.Stats.LayoutTime),
			RenderMillis:  millis(result.Stats.RenderTime),
		},
		Cached: cachedResponse{
			Layout: result.CacheInfo.LayoutHit,
			Render: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, http.StatusNotFound, tcerrors.New(tcerrors.ErrCodeNotFound, "unknown artifact %q", id))
		return
	}
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data, ok, err := s.store.Get(r.Context(), s.artifactKey(id, string(format)))
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError,
			tcerrors.Wrap(tcerrors.ErrCodeInternal, err, "load artifact"))
		return
	}
	if !ok {
		s.writeError(w, r, http.StatusNotFound,
			tcerrors.New(tcerrors.ErrCodeNotFound, "no %s artifact for %s", format, id))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d, immutable", int(s.artifactTTL.Seconds())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// withDefaults fills the zero fields of req from the server defaults. Stop
// words are the union of both lists.
func (s *Server) withDefaults(req pipeline.Options) pipeline.Options {
	d := s.defaults
	if req.Count == 0 {
		req.Count = d.Count
	}
	if req.MinLength == 0 {
		req.MinLength = d.MinLength
	}
	req.StopWords = append(slices.Clone(d.StopWords), req.StopWords...)
	req.NoDefaultStopWords = req.NoDefaultStopWords || d.NoDefaultStopWords
	if req.FontSize == 0 {
		req.FontSize = d.FontSize
	}
	if req.Ratio == 0 {
		req.Ratio = d.Ratio
	}
	if req.Width == 0 {
		req.Width = d.Width
	}
	if req.Height == 0 {
		req.Height = d.Height
	}
	if req.Spiral == "" {
		req.Spiral = d.Spiral
	}
	if req.Step == 0 {
		req.Step = d.Step
	}
	if req.MaxCandidates == 0 {
		req.MaxCandidates = d.MaxCandidates
	}
	req.Restart = req.Restart || d.Restart
	if len(req.Formats) == 0 {
		req.Formats = slices.Clone(d.Formats)
	}
	if req.Foreground == "" {
		req.Foreground = d.Foreground
	}
	if req.Background == "" {
		req.Background = d.Background
	}
	if req.Canvas == "" {
		req.Canvas = d.Canvas
	}
	// Fonts are a server-side choice.
	req.FontFile = d.FontFile
	req.Measurer = d.Measurer
	return req
}

// checkLimits rejects requests too expensive to serve. A restarted search
// with no explicit ceiling gets one sized to the canvas, capped at
// MaxCandidates.
func checkLimits(o *pipeline.Options) error {
	if o.Count > MaxCount {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "count %d exceeds limit %d", o.Count, MaxCount)
	}
	if o.Width > MaxCanvas || o.Height > MaxCanvas {
		return tcerrors.New(tcerrors.ErrCodeInvalidSize, "canvas %dx%d exceeds limit %dx%d", o.Width, o.Height, MaxCanvas, MaxCanvas)
	}
	if o.MaxCandidates > MaxCandidates {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "max_candidates %d exceeds limit %d", o.MaxCandidates, MaxCandidates)
	}
	if o.FontSize > MaxFontSize {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "font_size %v exceeds limit %d", o.FontSize, MaxFontSize)
	}
	if o.Restart && o.MaxCandidates == 0 {
		o.MaxCandidates = min(pipeline.RestartCandidates(o.Width, o.Height, o.Step), MaxCandidates)
	}
	return nil
}

func (s *Server) artifactKey(id, format string) string {
	return s.keyPrefix + "served:" + id + "." + format
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
