package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/utakatalp/nba-tracker/internal/auth"
	"github.com/utakatalp/nba-tracker/internal/league"
	"github.com/utakatalp/nba-tracker/internal/store"
)

type testEnv struct {
	t        *testing.T
	store    *store.Store
	sessions *auth.Sessions
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: filepath.Join(t.TempDir(), "web.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	srv, err := New(st, auth.NewService(st), sessions)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &testEnv{t: t, store: st, sessions: sessions, handler: srv.Handler()}
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

func (e *testEnv) post(target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req, cookies...)
}

func (e *testEnv) session() *http.Cookie {
	e.t.Helper()
	token, _, err := e.sessions.Issue(league.User{ID: 1, Username: "coach"})
	if err != nil {
		e.t.Fatalf("issue session: %v", err)
	}
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func (e *testEnv) seed() {
	e.t.Helper()
	if _, err := e.store.Seed(context.Background()); err != nil {
		e.t.Fatalf("seed: %v", err)
	}
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	expectStatus(t, rec, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("location = %q, want %q", got, location)
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Fatalf("expected body to contain %q; body: %s", p, body)
		}
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Teams: 0", "No games recorded yet")

	env.seed()
	rec = env.get("/")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Teams: 5", "Players: 10", "Games: 1", "Lakers 118 - 112 Celtics", "January 15, 2025")
}

func TestUnknownPagesRenderNotFound(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"/teams/999", "/players/999", "/games/999", "/nope", "/players/abc"} {
		rec := env.get(target)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d", target, rec.Code)
		}
		expectBody(t, rec, "does not exist")
	}
}

func TestWriteRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)
	for _, target := range []string{"/teams/add", "/players/add", "/games/add", "/players/1/history", "/games/1/stats", "/logout"} {
		rec := env.get(target)
		expectRedirect(t, rec, "/login?next="+url.QueryEscape(target))
	}

	rec := env.post("/teams/add", url.Values{"name": {"Nets"}, "city": {"Brooklyn"}, "conference": {"East"}})
	expectStatus(t, rec, http.StatusSeeOther)
	n, err := env.store.CountTeams(context.Background())
	if err != nil {
		t.Fatalf("count teams: %v", err)
	}
	if n != 0 {
		t.Fatalf("anonymous post created %d teams", n)
	}
}

func TestInvalidSessionCookieIsDropped(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/teams/add", &http.Cookie{Name: sessionCookie, Value: "garbage"})
	expectStatus(t, rec, http.StatusSeeOther)
	c := responseCookie(rec, sessionCookie)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected session cookie to be cleared, got %+v", c)
	}
}

func TestAddTeam(t *testing.T) {
	env := newTestEnv(t)
	sess := env.session()

	rec := env.get("/teams/add", sess)
	expectStatus(t, rec, http.StatusOK)

	rec = env.post("/teams/add", url.Values{"name": {"Nets"}, "city": {"Brooklyn"}, "conference": {"East"}}, sess)
	expectRedirect(t, rec, "/teams")
	flashed := responseCookie(rec, flashCookie)
	if flashed == nil {
		t.Fatal("expected flash cookie")
	}

	rec = env.get("/teams", flashed)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Team added successfully!", "Nets", "Brooklyn", "0-0")
}

func TestAddTeamMissingField(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/teams/add", url.Values{"name": {"Nets"}, "city": {" "}, "conference": {"East"}}, env.session())
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgFillAllFields, `value="Nets"`)
}

func TestAddGameRejectsSameTeam(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	rec := env.post("/games/add", url.Values{
		"date":         {"2025-02-01"},
		"home_team_id": {"1"},
		"away_team_id": {"1"},
		"home_score":   {"100"},
		"away_score":   {"90"},
	}, env.session())
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgDistinctTeams)

	n, err := env.store.CountGames(context.Background())
	if err != nil {
		t.Fatalf("count games: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the seeded game, got %d", n)
	}
}

func TestAddGame(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	rec := env.post("/games/add", url.Values{
		"date":         {"2025-02-01"},
		"home_team_id": {"3"},
		"away_team_id": {"4"},
		"home_score":   {"101"},
		"away_score":   {"99"},
	}, env.session())
	expectRedirect(t, rec, "/games")

	rec = env.get("/games")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Warriors 101 - 99 Bulls", "February 01, 2025")
}

func TestAddGameMissingField(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	rec := env.post("/games/add", url.Values{"date": {"2025-02-01"}, "home_team_id": {"1"}}, env.session())
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgFillAllFields)
}

func TestAddPlayerBadDateIsServerError(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post("/players/add", url.Values{"name": {"Rookie"}, "position": {"C"}, "birth_date": {"soon"}}, env.session())
	expectStatus(t, rec, http.StatusInternalServerError)
	expectBody(t, rec, "Something went wrong")
}

func TestAddPlayerAndDetail(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	rec := env.post("/players/add", url.Values{
		"name":            {"Luka Doncic"},
		"position":        {"PG"},
		"birth_date":      {"1999-02-28"},
		"current_team_id": {"1"},
	}, env.session())
	expectRedirect(t, rec, "/players")

	rec = env.get("/players/11")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Luka Doncic", "February 28, 1999", "Los Angeles Lakers", "No statistics recorded.")
}

func TestPlayerDetailAverages(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	rec := env.get("/players/1")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "LeBron James", "<td>20.0</td>", "Lakers 118 - 112 Celtics")

	rec = env.get("/players/10")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "<td>-</td>")
}

func TestPlayerHistoryMovesCurrentTeam(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	sess := env.session()

	rec := env.get("/players/1/history", sess)
	expectStatus(t, rec, http.StatusOK)

	rec = env.post("/players/1/history", url.Values{"team_id": {"5"}, "start_date": {"2025-07-01"}}, sess)
	expectRedirect(t, rec, "/players/1")

	p, err := env.store.GetPlayer(context.Background(), 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.CurrentTeamID == nil || *p.CurrentTeamID != 5 {
		t.Fatalf("current team = %v", p.CurrentTeamID)
	}

	rec = env.post("/players/1/history", url.Values{"team_id": {"2"}}, sess)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgTeamAndStart)
}

func TestAddGameStats(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	sess := env.session()

	rec := env.get("/games/1/stats", sess)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "LeBron James", "Jaylen Brown")

	rec = env.post("/games/1/stats", url.Values{"player_id": {"2"}, "points": {"31"}}, sess)
	expectRedirect(t, rec, "/games/1")

	detail, err := env.store.GameDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("game detail: %v", err)
	}
	last := detail.Statistics[len(detail.Statistics)-1]
	if last.PlayerID != 2 || last.Points != 31 || last.Steals != 0 || last.Turnovers != 0 {
		t.Fatalf("unexpected line: %+v", last)
	}

	rec = env.post("/games/1/stats", url.Values{"player_id": {"2"}}, sess)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgRequiredStats)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	creds := url.Values{"username": {"coach"}, "password": {"hunter2"}}

	rec := env.post("/register", creds)
	expectRedirect(t, rec, "/login")

	rec = env.post("/register", creds)
	expectStatus(t, rec, http.StatusConflict)
	expectBody(t, rec, msgUsernameTaken)

	rec = env.post("/register", url.Values{"username": {"coach"}})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, league.MsgUsernamePassword)

	rec = env.post("/login?next=%2Fgames%2Fadd", url.Values{"username": {"coach"}, "password": {"wrong"}})
	expectStatus(t, rec, http.StatusUnauthorized)
	expectBody(t, rec, msgBadCredentials)

	rec = env.post("/login?next=%2Fgames%2Fadd", creds)
	expectRedirect(t, rec, "/games/add")
	sess := responseCookie(rec, sessionCookie)
	if sess == nil || sess.Value == "" {
		t.Fatal("expected session cookie")
	}

	rec = env.get("/games/add", sess, responseCookie(rec, flashCookie))
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Welcome, coach!", "Logged in as coach")

	rec = env.get("/logout", sess)
	expectRedirect(t, rec, "/")
	if c := responseCookie(rec, sessionCookie); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected session cookie to be cleared, got %+v", c)
	}
}

func TestLoginIgnoresForeignNext(t *testing.T) {
	env := newTestEnv(t)
	creds := url.Values{"username": {"coach"}, "password": {"hunter2"}}
	expectRedirect(t, env.post("/register", creds), "/login")

	rec := env.post("/login?next="+url.QueryEscape("https://evil.example/"), creds)
	expectRedirect(t, rec, "/")
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/teams/add", "/teams/add"},
		{"/players/1/history?x=1", "/players/1/history?x=1"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
		{"https://evil.example/", "/"},
		{"teams", "/"},
	}
	for _, tt := range tests {
		if got := safeNext(tt.in); got != tt.want {
			t.Errorf("safeNext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeedAndInitRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/init-db")
	expectRedirect(t, rec, "/")

	rec = env.get("/seed-db")
	expectRedirect(t, rec, "/")
	rec = env.get("/", responseCookie(rec, flashCookie))
	expectBody(t, rec, "Sample data added successfully!")

	rec = env.get("/seed-db")
	expectRedirect(t, rec, "/")
	rec = env.get("/", responseCookie(rec, flashCookie))
	expectBody(t, rec, "already contains data")
}

func TestTeamsPageShowsRecords(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	rec := env.get("/teams")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "1-0", "0-1", "Standings")

	rec = env.get("/teams/1")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "Los Angeles Lakers", "LeBron James", "Anthony Davis")
}

func TestTodos(t *testing.T) {
	env := newTestEnv(t)

	expectRedirect(t, env.post("/todos", url.Values{"text": {"  buy tickets  "}}), "/todos")
	expectRedirect(t, env.post("/todos", url.Values{"text": {"   "}}), "/todos")

	todos, err := env.store.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(todos) != 1 || todos[0].Text != "buy tickets" {
		t.Fatalf("unexpected todos: %+v", todos)
	}

	rec := env.get("/todos")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, "buy tickets")

	expectRedirect(t, env.post("/todos/1/delete", nil), "/todos")
	expectRedirect(t, env.post("/todos/1/delete", nil), "/todos")
	rec = env.get("/todos")
	expectBody(t, rec, "Nothing to do.")

	if rec := env.get("/todos/1/delete"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET delete status = %d", rec.Code)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{league.NewDate(2025, 1, 15), "January 15, 2025"},
		{league.NullDate{}, ""},
		{league.NullDate{Date: league.NewDate(1990, 12, 30), Valid: true}, "December 30, 1990"},
		{time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), "March 05, 2024"},
		{"2025-01-15", "January 15, 2025"},
		{"not a date", "not a date"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := formatDate(tt.in); got != tt.want {
			t.Errorf("formatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAverage(t *testing.T) {
	v := 27.25
	if got := formatAverage(&v); got != "27.2" && got != "27.3" {
		t.Fatalf("formatAverage = %q", got)
	}
	if got := formatAverage(nil); got != "-" {
		t.Fatalf("formatAverage(nil) = %q", got)
	}
}
