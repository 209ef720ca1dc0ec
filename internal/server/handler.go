package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/outlinegraph/pkg/buildinfo"
	"github.com/matzehuels/outlinegraph/pkg/document"
	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	ogio "github.com/matzehuels/outlinegraph/pkg/io"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

type handler struct {
	runner *pipeline.Runner
	indent int
	logger *log.Logger
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *handler) compile(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := h.request(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	format := ogio.Format(r.URL.Query().Get("format"))
	switch format {
	case "":
		format = ogio.FormatJSON
	case ogio.FormatJSON, ogio.FormatYAML:
	default:
		h.fail(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format: %q (must be json or yaml)", format))
		return
	}

	compiled, err := h.runner.Compile(r.Context(), doc, opts)
	if err != nil {
		h.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := ogio.Write(ogio.FromParsed(compiled.Graph, &compiled.Stats), format, &buf); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[string(format)])
	w.Header().Set("X-Cache", cacheStatus(compiled.Hit))
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := h.request(w, r)
	if err != nil {
		h.fail(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	opts.RankDir = strings.ToUpper(q.Get("rankdir"))
	opts.Detailed = boolParam(q.Get("detailed"))

	result, err := h.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.Header().Set("X-Visible-Nodes", strconv.Itoa(result.Stats.Visible))
	_, _ = w.Write(result.Artifacts[format])
}

// request reads the outline body and the shared compile options.
func (h *handler) request(w http.ResponseWriter, r *http.Request) (*document.Document, pipeline.Options, error) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	doc, err := document.Read(body, document.WithIndentWidth(h.indent))
	if err != nil {
		return nil, pipeline.Options{}, err
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Fold:      listParam(q["fold"]),
		Hide:      listParam(q["hide"]),
		StrictIDs: boolParam(q.Get("strict")),
		NoPrune:   boolParam(q.Get("no_prune")),
		Refresh:   boolParam(q.Get("refresh")),
		Logger:    h.logger,
	}
	return doc, opts, nil
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Code: string(code), Error: apperrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listParam flattens repeated and comma-separated values.
func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func boolParam(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
