package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/AngelCh415/ADMARGIN_GO/internal/config"
	"github.com/AngelCh415/ADMARGIN_GO/internal/export"
	"github.com/AngelCh415/ADMARGIN_GO/internal/ingest"
	"github.com/AngelCh415/ADMARGIN_GO/internal/models"
	"github.com/AngelCh415/ADMARGIN_GO/internal/report"
	"github.com/AngelCh415/ADMARGIN_GO/internal/utils"
)

func NewRouter(log *slog.Logger, svc *report.Service, cfg config.Config) http.Handler {
	h := &handlers{
		log:       log,
		svc:       svc,
		maxUpload: cfg.MaxUploadBytes(),
		validate:  newValidator(),
	}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(instrument)
	mux.Use(middleware.Recoverer) // una falla inesperada nunca tumba el proceso

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/report/products", h.products)
	mux.Post("/report/run", h.run)
	mux.Post("/report/render", h.render)
	mux.Post("/report/export", h.export)

	return mux
}

type handlers struct {
	log       *slog.Logger
	svc       *report.Service
	maxUpload int64
	validate  *validator.Validate
}

// newValidator teaches the validator to compare decimal fields numerically.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (h *handlers) products(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.loadUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, report.DistinctProducts(rows))
}

func (h *handlers) run(w http.ResponseWriter, r *http.Request) {
	res, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, res)
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request) {
	res, ok := h.build(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(export.RenderHTML(res)))
}

func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	res, ok := h.build(w, r)
	if !ok {
		return
	}
	if err := export.WriteHTTP(w, res); err != nil {
		h.log.Error("export failed", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
		http.Error(w, "could not build the export file", 500)
	}
}

// build parses the upload plus the economics form and runs the pipeline. On
// failure it has already written the response.
func (h *handlers) build(w http.ResponseWriter, r *http.Request) (report.Result, bool) {
	rows, ok := h.loadUpload(w, r)
	if !ok {
		return report.Result{}, false
	}
	entries, ok := h.parseEconomics(w, r)
	if !ok {
		return report.Result{}, false
	}
	res := h.svc.Build(rows, entries)
	rowsIngested.Add(float64(len(rows)))
	reportsBuilt.Inc()
	return res, true
}

func (h *handlers) loadUpload(w http.ResponseWriter, r *http.Request) ([]models.AdRow, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			http.Error(w, fmt.Sprintf("upload exceeds the %d byte limit", mbe.Limit), http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, `multipart field "file" is required`, 400)
		}
		return nil, false
	}
	defer file.Close()

	rows, err := ingest.Load(file)
	if err != nil {
		var se *ingest.SchemaError
		var re *ingest.RowError
		if errors.As(err, &se) || errors.As(err, &re) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return nil, false
		}
		h.log.Error("load failed", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
		http.Error(w, "could not process the uploaded file", 500)
		return nil, false
	}
	return rows, true
}

// parseEconomics reads the "economics" form part: a JSON array of entries, one
// per product. Absent means no product is configured yet.
func (h *handlers) parseEconomics(w http.ResponseWriter, r *http.Request) ([]report.EconomicsEntry, bool) {
	raw := r.FormValue("economics")
	if raw == "" {
		return nil, true
	}
	var entries []report.EconomicsEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		http.Error(w, `field "economics" must be a JSON array of entries`, 400)
		return nil, false
	}
	for i := range entries {
		if err := h.validate.Struct(&entries[i]); err != nil {
			http.Error(w, fmt.Sprintf("economics entry %d: %v", i, err), http.StatusUnprocessableEntity)
			return nil, false
		}
	}
	return entries, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
