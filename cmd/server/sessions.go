package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/metrics"
	"github.com/Simplici0/partquote/internal/parts"
	"github.com/Simplici0/partquote/internal/pricing"
	"github.com/Simplici0/partquote/internal/quote"
	"github.com/Simplici0/partquote/internal/session"
)

type partView struct {
	parts.Part
	Completion parts.Completion   `json:"completion"`
	Complete   bool               `json:"complete"`
	Price      *pricing.Result    `json:"price,omitempty"`
	Conflicts  []catalog.Conflict `json:"conflicts,omitempty"`
}

type sessionView struct {
	ID         string            `json:"id"`
	ActivePart string            `json:"activePart,omitempty"`
	Parts      []partView        `json:"parts"`
	Summary    quote.Summary     `json:"summary"`
	Formatted  map[string]string `json:"formatted"`
}

func newPartView(p parts.Part) partView {
	c := parts.StepCompletion(p)
	v := partView{
		Part:       p,
		Completion: c,
		Complete:   c.Required(),
		Conflicts:  p.Conflicts(),
	}
	if v.Complete {
		price := p.Price()
		v.Price = &price
	}
	return v
}

func (s *server) newSessionView(id string, c parts.Collection, zip string) sessionView {
	views := make([]partView, 0, c.Len())
	for _, p := range c.Parts {
		views = append(views, newPartView(p))
	}
	sum := quote.Summarize(c.Parts, zip, s.now())
	return sessionView{
		ID:         id,
		ActivePart: c.Active,
		Parts:      views,
		Summary:    sum,
		Formatted:  sum.Formatted(),
	}
}

func (s *server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, r, err, "failed to load session")
		return nil, false
	}
	return sess, true
}

// apply runs one action on the session named in the URL and responds with
// the updated session.
func (s *server) apply(w http.ResponseWriter, r *http.Request, status int, fn func(parts.Collection) (parts.Collection, error)) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	c, err := sess.Apply(fn)
	if err != nil {
		s.fail(w, r, err, "failed to update parts")
		return
	}
	writeJSON(w, status, s.newSessionView(sess.ID, c, r.URL.Query().Get("zip")))
}

func (s *server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	metrics.SessionsActive.Set(float64(s.sessions.Len()))
	writeJSON(w, http.StatusCreated, s.newSessionView(sess.ID, sess.Collection(), ""))
}

func (s *server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.newSessionView(sess.ID, sess.Collection(), r.URL.Query().Get("zip")))
}

type addPartRequest struct {
	Name string `json:"name"`
}

func (s *server) handlePartAdd(w http.ResponseWriter, r *http.Request) {
	var req addPartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.apply(w, r, http.StatusCreated, func(c parts.Collection) (parts.Collection, error) {
		c = c.AddEmpty()
		metrics.PartsCreated.WithLabelValues("manual").Inc()
		if name := strings.TrimSpace(req.Name); name != "" {
			return c.Rename(c.Active, name)
		}
		return c, nil
	})
}

type addFilesRequest struct {
	Files []parts.FileDescriptor `json:"files"`
}

func (s *server) handlePartsFromFiles(w http.ResponseWriter, r *http.Request) {
	var req addFilesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Files) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}
	for _, f := range req.Files {
		if strings.TrimSpace(f.Name) == "" || f.Size < 0 {
			writeError(w, http.StatusBadRequest, "each file needs a name and a non-negative size")
			return
		}
	}
	s.apply(w, r, http.StatusCreated, func(c parts.Collection) (parts.Collection, error) {
		metrics.PartsCreated.WithLabelValues("file").Add(float64(len(req.Files)))
		return c.AddFromFiles(req.Files), nil
	})
}

func (s *server) handlePartDuplicate(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	s.apply(w, r, http.StatusCreated, func(c parts.Collection) (parts.Collection, error) {
		out, err := c.Duplicate(partID)
		if err == nil {
			metrics.PartsCreated.WithLabelValues("duplicate").Inc()
		}
		return out, err
	})
}

func (s *server) handlePartVariation(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	s.apply(w, r, http.StatusCreated, func(c parts.Collection) (parts.Collection, error) {
		out, err := c.CreateVariation(partID)
		if err == nil {
			metrics.PartsCreated.WithLabelValues("variation").Inc()
		}
		return out, err
	})
}

func (s *server) handlePartRemove(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		return c.Remove(partID)
	})
}

type updatePartRequest struct {
	Name       *string              `json:"name"`
	Selections parts.SelectionPatch `json:"selections"`
	// Quantity accepts raw user input such as 12, "12" or "2.7".
	Quantity json.RawMessage `json:"quantity"`
}

func (s *server) handlePartUpdate(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")

	var req updatePartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Quantity) > 0 && string(req.Quantity) != "null" {
		q := parts.ParseQuantity(strings.Trim(string(req.Quantity), `"`))
		req.Selections.Quantity = &q
	}

	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		var err error
		if req.Name != nil {
			if c, err = c.Rename(partID, strings.TrimSpace(*req.Name)); err != nil {
				return c, err
			}
		}
		return c.UpdateSelections(partID, req.Selections)
	})
}

type selectRequest struct {
	Step   parts.Step    `json:"step"`
	Value  string        `json:"value"`
	Extras *parts.Extras `json:"extras"`
}

type selectResponse struct {
	Advanced     bool        `json:"advanced"`
	ReadyToPrice bool        `json:"readyToPrice"`
	Session      sessionView `json:"session"`
}

func (s *server) handlePartSelect(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")

	var req selectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var res parts.SelectResult
	c, err := sess.Apply(func(c parts.Collection) (parts.Collection, error) {
		if req.Step == parts.StepExtras {
			if req.Extras == nil {
				return c, errExtrasRequired
			}
			return c.SetExtras(partID, *req.Extras)
		}
		var out parts.Collection
		var err error
		out, res, err = c.Select(partID, req.Step, req.Value)
		return out, err
	})
	if err != nil {
		s.fail(w, r, err, "failed to record selection")
		return
	}
	metrics.SelectionsRecorded.WithLabelValues(req.Step.String()).Inc()

	writeJSON(w, http.StatusOK, selectResponse{
		Advanced:     res.Advanced,
		ReadyToPrice: res.ReadyToPrice,
		Session:      s.newSessionView(sess.ID, c, r.URL.Query().Get("zip")),
	})
}

type stepRequest struct {
	Step *parts.Step `json:"step"`
	// Move is "next" or "prev" when no explicit step is given.
	Move string `json:"move"`
}

func (s *server) handlePartStep(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")

	var req stepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Step == nil && req.Move != "next" && req.Move != "prev" {
		writeError(w, http.StatusBadRequest, "step or move (next, prev) is required")
		return
	}

	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		if req.Step != nil {
			return c.SetStep(partID, int(*req.Step))
		}
		p, ok := c.Find(partID)
		if !ok {
			return c, parts.ErrPartNotFound
		}
		if req.Move == "next" {
			return c.SetStep(partID, int(parts.NextStep(p).CurrentStep))
		}
		return c.SetStep(partID, int(parts.PrevStep(p).CurrentStep))
	})
}

func (s *server) handlePartFocus(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		return c.Focus(partID)
	})
}

type optionsResponse struct {
	PartID      string                                  `json:"partId"`
	Material    catalog.Material                        `json:"material"`
	Finishes    []catalog.Option[catalog.SurfaceFinish] `json:"surfaceFinishes"`
	Coatings    []catalog.Option[catalog.Coating]       `json:"coatings"`
	Conflicts   []catalog.Conflict                      `json:"conflicts"`
	CurrentStep string                                  `json:"currentStep"`
}

func (s *server) handlePartOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	p, found := sess.Collection().Find(chi.URLParam(r, "partID"))
	if !found {
		s.fail(w, r, parts.ErrPartNotFound, "failed to load part")
		return
	}

	m := p.Selections.Material
	conflicts := p.Conflicts()
	if conflicts == nil {
		conflicts = []catalog.Conflict{}
	}
	writeJSON(w, http.StatusOK, optionsResponse{
		PartID:      p.ID,
		Material:    m,
		Finishes:    catalog.AvailableFinishes(m),
		Coatings:    catalog.AvailableCoatings(m),
		Conflicts:   conflicts,
		CurrentStep: p.CurrentStep.String(),
	})
}

type drawingRequest struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

func (s *server) handleDrawingAttach(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")

	var req drawingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	if err := parts.ValidateDrawing(req.FileType, req.FileSize); err != nil {
		s.fail(w, r, err, "failed to attach drawing")
		return
	}

	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		return c.AttachDrawing(partID, parts.FileDescriptor{Name: req.FileName, Size: req.FileSize})
	})
}

func (s *server) handleDrawingRemove(w http.ResponseWriter, r *http.Request) {
	partID := chi.URLParam(r, "partID")
	s.apply(w, r, http.StatusOK, func(c parts.Collection) (parts.Collection, error) {
		return c.RemoveDrawing(partID)
	})
}
