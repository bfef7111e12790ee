// Package preview serves rendered diagrams over HTTP with live reload.
// Stored diagrams render at /preview/{id}; an SSE stream at /events pushes
// reload notifications published on the event bus.
package preview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/event"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/storage"
	"github.com/d3flow/mindflow/telemetry"
	"github.com/d3flow/mindflow/utils"
)

type Server struct {
	cfg      *config.Config
	store    storage.Storage
	renderer *render.Renderer
	bus      event.EventBus
}

func NewServer(cfg *config.Config, store storage.Storage, renderer *render.Renderer, bus event.EventBus) *Server {
	return &Server{cfg: cfg, store: store, renderer: renderer, bus: bus}
}

// Handler builds the route table. Every route is wrapped with tracing and
// request metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(constants.EndpointRender, telemetry.WrapHandler("render", http.HandlerFunc(s.renderHandler)))
	mux.Handle(constants.EndpointValidate, telemetry.WrapHandler("validate", http.HandlerFunc(s.validateHandler)))
	mux.Handle(constants.EndpointDiagrams, telemetry.WrapHandler("diagrams", http.HandlerFunc(s.diagramsHandler)))
	mux.Handle(constants.EndpointDiagrams+"/", telemetry.WrapHandler("diagram", http.HandlerFunc(s.diagramHandler)))
	mux.Handle(constants.EndpointPreview, telemetry.WrapHandler("preview", http.HandlerFunc(s.previewHandler)))
	mux.Handle(constants.EndpointEvents, telemetry.WrapHandler("events", http.HandlerFunc(s.eventsHandler)))
	mux.Handle(constants.EndpointMetrics, telemetry.MetricsHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe runs the preview server on the configured address.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Preview.Addr
	if addr == "" {
		addr = config.DefaultPreviewAddr
	}
	utils.User("Preview server listening on http://%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// renderRequest is the body of POST /render and POST /validate.
type renderRequest struct {
	Type       model.DiagramType `json:"type"`
	Source     string            `json:"source"`
	Title      string            `json:"title,omitempty"`
	Standalone bool              `json:"standalone,omitempty"`
}

// POST /render renders an ad-hoc source and returns HTML. Parse failures
// return an error page rather than a bare 500 so editors always have
// something to display.
func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteHTTPError(w, err.Error(), http.StatusBadRequest)
		return
	}
	html, err := s.renderer.Render(req.Type, req.Source, render.Options{
		Standalone: req.Standalone,
		Title:      req.Title,
	})
	telemetry.CountRender(req.Type.String(), err)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeHTML)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, render.ErrorHTML(err))
		return
	}
	fmt.Fprint(w, html)
}

// POST /validate returns a structured validation result. Invalid sources
// are a normal outcome, not an HTTP error.
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteHTTPError(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, _ := parser.ValidateSource(req.Type, req.Source)
	utils.WriteHTTPJSON(w, res)
}

// /diagrams: GET lists (optionally ?type= or ?q=), POST saves.
func (s *Server) diagramsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if q := r.URL.Query().Get("q"); q != "" {
			hits, err := s.store.SearchDiagrams(r.Context(), q)
			if err != nil {
				utils.WriteHTTPError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			utils.WriteHTTPJSON(w, hits)
			return
		}
		typ := model.DiagramType(r.URL.Query().Get("type"))
		list, err := s.store.ListDiagrams(r.Context(), typ)
		if err != nil {
			utils.WriteHTTPError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		utils.WriteHTTPJSON(w, list)
	case http.MethodPost:
		var d model.Diagram
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			utils.WriteHTTPError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := parser.ValidateDocument(&d); err != nil {
			utils.WriteHTTPError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err := s.store.SaveDiagram(r.Context(), &d); err != nil {
			utils.WriteHTTPError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.publishChange(d.ID, "saved", d.Type)
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusCreated)
		if result := utils.MarshalJSON(&d); result.Err == nil {
			w.Write(result.Data)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// /diagrams/{id}: GET fetches, DELETE removes.
func (s *Server) diagramHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, constants.EndpointDiagrams+"/"))
	if err != nil {
		utils.WriteHTTPError(w, "invalid diagram id", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		d, err := s.store.GetDiagram(r.Context(), id)
		if err != nil {
			utils.WriteHTTPError(w, "diagram not found", http.StatusNotFound)
			return
		}
		utils.WriteHTTPJSON(w, d)
	case http.MethodDelete:
		d, err := s.store.GetDiagram(r.Context(), id)
		if err != nil {
			utils.WriteHTTPError(w, "diagram not found", http.StatusNotFound)
			return
		}
		if err := s.store.DeleteDiagram(r.Context(), id); err != nil {
			utils.WriteHTTPError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.publishChange(id, "deleted", d.Type)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// GET /preview/{id} renders a stored diagram with the live-reload client
// injected.
func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, constants.EndpointPreview))
	if err != nil {
		utils.WriteHTTPError(w, "invalid diagram id", http.StatusBadRequest)
		return
	}
	d, err := s.store.GetDiagram(r.Context(), id)
	if err != nil {
		utils.WriteHTTPError(w, "diagram not found", http.StatusNotFound)
		return
	}
	html := s.renderer.RenderWithFallback(d.Type, d.Source, render.Options{Title: d.Title})
	telemetry.CountRender(d.Type.String(), nil)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeHTML)
	fmt.Fprint(w, injectReloadClient(html, d.ID.String()))
}

// GET /events streams reload notifications as server-sent events.
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteHTTPError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeEventStream)
	w.Header().Set(constants.HeaderCacheControl, "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	events := make(chan any, 16)
	s.bus.Subscribe(ctx, constants.TopicPreviewReload, func(payload any) {
		select {
		case events <- payload:
		default:
		}
	})
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-events:
			data, err := json.Marshal(payload)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) publishChange(id uuid.UUID, action string, typ model.DiagramType) {
	if err := s.bus.Publish(constants.TopicDiagramChanged, event.ChangeEvent{
		DiagramID: id.String(),
		Action:    action,
	}); err != nil {
		utils.Warn("failed to publish change event: %v", err)
	}
	if err := s.bus.Publish(constants.TopicPreviewReload, event.ReloadEvent{
		DiagramID: id.String(),
		Type:      typ.String(),
	}); err != nil {
		utils.Warn("failed to publish reload event: %v", err)
	}
}

// injectReloadClient adds an EventSource listener that reloads the page
// when its diagram changes.
func injectReloadClient(html, diagramID string) string {
	script := fmt.Sprintf(`<script id="live-reload">
(function() {
	const es = new EventSource(%q);
	es.onmessage = function(e) {
		try {
			const msg = JSON.parse(e.data);
			if (!msg.diagram_id || msg.diagram_id === %q) {
				location.reload();
			}
		} catch (_) {
			location.reload();
		}
	};
})();
</script>`, constants.EndpointEvents, diagramID)
	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", script+"\n</body>", 1)
	}
	return html + script
}
