package app

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omhp/weektaak/internal/logger"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var StaticFiles embed.FS

// WeekPageData is the data of the week overview
type WeekPageData struct {
	Title        string
	View         *WeekView
	Error        string
	EmptyMessage string
}

// PersonalPageData is the data of the personal page
type PersonalPageData struct {
	Title   string
	Options []PersonOption
	History *PersonHistory
	Error   string
}

// Server serves the roster pages and feeds
type Server struct {
	cfg   Config
	index *template.Template
	pers  *template.Template
}

// NewServer parses the page templates; each page is the root of its template set
func NewServer(cfg Config) (*Server, error) {
	index, err := template.ParseFS(templateFiles, "templates/index.html", "templates/layout.html")
	if err != nil {
		return nil, err
	}
	pers, err := template.ParseFS(templateFiles, "templates/personal.html", "templates/layout.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, index: index, pers: pers}, nil
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, status int, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, tmpl.Name(), data); err != nil {
		logger.Error("Error rendering page", "page", tmpl.Name(), "error", err)
	}
}

// load fetches and parses the dataset for this request, logging failures
func (s *Server) load(r *http.Request) (*Dataset, bool) {
	ds, err := LoadDataset(r.Context(), s.cfg)
	if err != nil {
		logger.Error("Error loading roster", "source", sourceName(s.cfg.Source), "error", err)
		return nil, false
	}
	return ds, true
}

func sourceName(src Source) string {
	if src == nil {
		return ""
	}
	return src.Name()
}

// weekView resolves the shown week of the request and renders it
func (s *Server) weekView(r *http.Request, roster *Roster) WeekView {
	now := s.cfg.now()
	monday, err := ShownWeek(r.URL.Query().Get(ParamDate), now)
	if err != nil {
		logger.Warn("Ignoring date parameter", "error", err)
	}

	var week *Week
	if found, ok := roster.LookupWeek(monday.Format(ISODateFormat)); ok {
		week = &found
	}
	return RenderWeekView(week, monday, r.URL)
}

// ServeIndex serves the week overview
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	page := WeekPageData{Title: "Weektaken", EmptyMessage: ErrNoRoster}

	ds, ok := s.load(r)
	if !ok {
		page.Error = ErrFetchFailed
		s.render(w, s.index, http.StatusBadGateway, page)
		return
	}

	view := s.weekView(r, ds.Roster)
	page.View = &view
	s.render(w, s.index, http.StatusOK, page)
}

// ServePersonal serves the personal page, preselecting the requested person
func (s *Server) ServePersonal(w http.ResponseWriter, r *http.Request) {
	page := PersonalPageData{Title: "Weektaken"}

	ds, ok := s.load(r)
	if !ok {
		page.Error = ErrFetchFailed
		s.render(w, s.pers, http.StatusBadGateway, page)
		return
	}

	person := r.URL.Query().Get(ParamPerson)
	options, found := RenderPersonOptions(ds.Roster, person)
	page.Options = options
	if found {
		history := RenderPersonHistory(ds.Roster, person, s.since())
		page.History = &history
		page.Title = history.Title
	}

	s.render(w, s.pers, http.StatusOK, page)
}

// since returns the first week to list in histories, nil lists everything
func (s *Server) since() *WeekID {
	if !s.cfg.HidePast {
		return nil
	}
	current := CurrentWeek(s.cfg.now())
	return &current
}

// HandleTasksJSON serves the dataset in the tasks.json layout
func (s *Server) HandleTasksJSON(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.load(r)
	if !ok {
		http.Error(w, ErrFetchFailed, http.StatusBadGateway)
		return
	}
	if NotModified(w, r, ds.ETag) {
		return
	}
	GenerateJSON(w, ds.Roster)
}

// HandleWeek returns the shown week as JSON
// Query param: date (optional, defaults to the current week)
func (s *Server) HandleWeek(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.load(r)
	if !ok {
		WriteJSONError(w, http.StatusBadGateway, ErrFetchFailed)
		return
	}

	view := s.weekView(r, ds.Roster)
	status := http.StatusOK
	if view.Empty {
		status = http.StatusNotFound
	}
	WriteJSON(w, status, view)
}

// HandlePeople returns every person on the roster
func (s *Server) HandlePeople(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.load(r)
	if !ok {
		WriteJSONError(w, http.StatusBadGateway, ErrFetchFailed)
		return
	}
	people := ds.Roster.People()
	if people == nil {
		people = []string{}
	}
	WriteJSON(w, http.StatusOK, people)
}

// HandlePerson returns the history of one person
// URL: /api/people/{name}
func (s *Server) HandlePerson(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.load(r)
	if !ok {
		WriteJSONError(w, http.StatusBadGateway, ErrFetchFailed)
		return
	}

	person, found := ds.Roster.FindPerson(chi.URLParam(r, "name"))
	if !found {
		WriteJSONError(w, http.StatusNotFound, ErrUnknownPerson)
		return
	}
	WriteJSON(w, http.StatusOK, RenderPersonHistory(ds.Roster, person, s.since()))
}

// HandleCalendar serves /cal/admin.ics and /cal/{person}.ics
func (s *Server) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, ok := strings.CutSuffix(file, ".ics")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}

	ds, loaded := s.load(r)
	if !loaded {
		http.Error(w, ErrFetchFailed, http.StatusBadGateway)
		return
	}

	// DTSTAMP changes per response, so feeds only get a weak validator
	etag := WeakETag(ds.ETag)
	if name == AdminCalName {
		if NotModified(w, r, etag) {
			return
		}
		GenerateCalendarICS(w, "Weektaken", AdminEvents(ds.Roster), s.cfg.now())
		return
	}

	person, found := ds.Roster.FindPerson(name)
	if !found {
		http.Error(w, ErrUnknownPerson, http.StatusNotFound)
		return
	}
	if NotModified(w, r, etag) {
		return
	}
	GenerateCalendarICS(w, "Weektaken "+person, PersonalEvents(ds.Roster, person), s.cfg.now())
}

// HandleHealth reports liveness
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.Error("Error writing health response", "error", err)
	}
}
