package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/lifestyle"
	"github.com/NihalShah4/cost-of-living-estimator/internal/report"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", s.handleIndex)
	r.Post("/estimate", s.handleEstimatePage)
	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/states", s.handleStates)
		r.Get("/status", s.handleStatus)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/household", s.handleHousehold)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report.States(s.est.Table()))
}

// estimateRequest is the body of POST /v1/estimate. Basket accepts a JSON
// number or a decimal string.
type estimateRequest struct {
	State      string               `json:"state"`
	Basket     *decimal.Decimal     `json:"basket"`
	Selections lifestyle.Selections `json:"selections"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	basketUSD := s.baseline()
	if req.Basket != nil {
		basketUSD = req.Basket.InexactFloat64()
	}
	state := req.State
	if state == "" {
		state = s.cfg.DefaultState
	}

	res, err := s.est.Estimate(estimate.Request{State: state, Basket: basketUSD, Selections: req.Selections})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.FromResult(res, s.cfg.Info.Source))
}

// householdRequest is the body of POST /v1/household.
type householdRequest struct {
	State string `json:"state"`
	estimate.Household
	Income *incomeRequest `json:"income,omitempty"`
}

type incomeRequest struct {
	SavingsRate *float64 `json:"savings_rate"`
	TaxRate     *float64 `json:"tax_rate"`
	Buffer      *float64 `json:"buffer"`
}

func (s *Server) handleHousehold(w http.ResponseWriter, r *http.Request) {
	req := householdRequest{Household: estimate.DefaultHousehold()}
	if !decodeJSON(w, r, &req) {
		return
	}
	state := req.State
	if state == "" {
		state = s.cfg.DefaultState
	}

	hr, err := s.est.EstimateHousehold(state, req.Household, s.cfg.Basket)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := report.FromHousehold(hr, s.cfg.Info.Source)

	if req.Income != nil {
		d := s.cfg.Income
		in, err := estimate.RecommendIncome(hr.Total,
			valueOr(req.Income.SavingsRate, d.SavingsRate),
			valueOr(req.Income.TaxRate, d.TaxRate),
			valueOr(req.Income.Buffer, d.Buffer))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		inc := report.FromIncome(in)
		out.Income = &inc
	}
	writeJSON(w, http.StatusOK, out)
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.newFormData()
	templ.Handler(FormPage(data)).ServeHTTP(w, r)
}

func (s *Server) handleEstimatePage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := s.newFormData()
	data.State = strings.TrimSpace(r.PostFormValue("state"))
	h, err := s.householdFromForm(r, &data)
	if err == nil {
		var rd ResultData
		rd, err = s.resultData(data.State, h)
		if err == nil {
			templ.Handler(ResultPage(rd)).ServeHTTP(w, r)
			return
		}
	}

	if report.Kind(err) == report.KindInternal {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("estimate page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data.Error = err.Error()
	templ.Handler(FormPage(data), templ.WithStatus(http.StatusUnprocessableEntity)).ServeHTTP(w, r)
}

// householdFromForm reads the household fields and records them in data so
// a failed submission re-renders with the user's choices.
func (s *Server) householdFromForm(r *http.Request, data *FormData) (estimate.Household, error) {
	h := estimate.DefaultHousehold()
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"adults", &h.Adults},
		{"kids", &h.Kids},
		{"cars", &h.Cars},
	} {
		raw := strings.TrimSpace(r.PostFormValue(f.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return h, &estimate.InputError{Field: f.name, Reason: fmt.Sprintf("%q is not a whole number", raw)}
		}
		*f.dst = n
	}
	h.Gym = r.PostFormValue("gym") != ""
	if t := r.PostFormValue("travel"); t != "" {
		h.Travel = t
	}
	h.Selections = lifestyle.Selections{}
	for _, cat := range s.est.Catalog().Categories() {
		if v := r.PostFormValue(cat.Name); v != "" {
			h.Selections[cat.Name] = v
		}
	}

	data.Household = h
	return h, nil
}

func (s *Server) resultData(state string, h estimate.Household) (ResultData, error) {
	hr, err := s.est.EstimateHousehold(state, h, s.cfg.Basket)
	if err != nil {
		return ResultData{}, err
	}
	res, err := s.est.Estimate(estimate.Request{State: state, Basket: s.baseline(), Selections: h.Selections})
	if err != nil {
		return ResultData{}, err
	}
	d := s.cfg.Income
	in, err := estimate.RecommendIncome(hr.Total, d.SavingsRate, d.TaxRate, d.Buffer)
	if err != nil {
		return ResultData{}, err
	}
	return ResultData{Household: hr, Steps: res, Income: in, Source: string(s.cfg.Info.Source)}, nil
}

func (s *Server) newFormData() FormData {
	return FormData{
		State:     s.cfg.DefaultState,
		States:    s.est.Table().Names(),
		Catalog:   s.est.Catalog().Categories(),
		Household: estimate.DefaultHousehold(),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, report.Error{Kind: "bad_request", Message: fmt.Sprintf("invalid JSON body: %v", err)})
		return false
	}
	return true
}

// writeDomainError maps estimate error kinds to 422 and anything else to 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	body := report.FromError(err)
	if body.Kind == report.KindInternal {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("estimate failed")
		writeJSON(w, http.StatusInternalServerError, report.Error{Kind: report.KindInternal, Message: "internal error"})
		return
	}
	zerolog.Ctx(r.Context()).Debug().Err(err).Str("kind", body.Kind).Msg("rejected input")
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
