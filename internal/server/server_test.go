package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/config"
	"github.com/lshigami/quizhub/internal/chart"
	apictrl "github.com/lshigami/quizhub/internal/controller/api"
	webctrl "github.com/lshigami/quizhub/internal/controller/web"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/repository"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/lshigami/quizhub/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testApp struct {
	server *httptest.Server
	db     *gorm.DB
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		Server:    config.Server{Mode: gin.TestMode},
		Auth:      config.Auth{SessionSecret: "session-secret", JWTSecret: "jwt-secret", TokenTTL: service.DefaultTokenTTL},
		StaticDir: t.TempDir(),
	}

	users := repository.NewUserRepository(db)
	subjects := repository.NewSubjectRepository(db)
	chapters := repository.NewChapterRepository(db)
	quizzes := repository.NewQuizRepository(db)
	questions := repository.NewQuestionRepository(db)
	scores := repository.NewScoreRepository(db)

	auth := service.NewAuthServiceWithCost(users, bcrypt.MinCost)
	tokens := service.NewTokenService(cfg)
	catalog := service.NewCatalogService(subjects, chapters, quizzes, questions, db)
	quiz := service.NewQuizService(quizzes, scores)
	report := service.NewReportService(subjects, scores, chart.NewPNGRenderer(cfg.StaticDir))
	search := service.NewSearchService(users, subjects, chapters, quizzes)

	router, err := NewGinEngine(cfg)
	if err != nil {
		t.Fatalf("NewGinEngine: %v", err)
	}
	RegisterRoutes(router, cfg, tokens, Controllers{
		APIAuth:    apictrl.NewAuthController(auth, tokens),
		APICatalog: apictrl.NewCatalogController(catalog),
		APIScores:  apictrl.NewScoreController(quiz, auth),
		WebAuth:    webctrl.NewAuthController(auth),
		WebAdmin:   webctrl.NewAdminController(catalog, search, report),
		WebUser:    webctrl.NewUserController(catalog, quiz, report),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, db: db, cfg: cfg}
}

// browser returns a client that keeps cookies and does not follow redirects.
func (a *testApp) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) login(t *testing.T, client *http.Client, email string) *http.Response {
	t.Helper()
	return postForm(t, client, a.server.URL+"/login", url.Values{"email": {email}, "password": {testutil.Password}})
}

func postForm(t *testing.T, client *http.Client, target string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, values)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	resp.Body.Close()
	return resp
}

func get(t *testing.T, client *http.Client, target string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func assertRedirect(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != want {
		t.Fatalf("Location = %q, want %q", loc, want)
	}
}

func seedQuiz(t *testing.T, db *gorm.DB) (*model.Quiz, []model.Question) {
	t.Helper()
	subject := testutil.CreateSubject(t, db, "Math")
	chapter := testutil.CreateChapter(t, db, subject.ID, "Algebra")
	quiz := testutil.CreateQuiz(t, db, chapter.ID, "weekly")
	return quiz, testutil.CreateQuestions(t, db, quiz.ID, 1, 2, 3)
}

func TestPageAccessControl(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "learner@example.com", false)
	testutil.CreateUser(t, app.db, "admin@example.com", true)

	anon := app.browser(t)
	resp, _ := get(t, anon, app.server.URL+"/admin/dashboard")
	assertRedirect(t, resp, "/login")
	resp, _ = get(t, anon, app.server.URL+"/user/dashboard")
	assertRedirect(t, resp, "/login")

	learner := app.browser(t)
	assertRedirect(t, app.login(t, learner, "learner@example.com"), "/user/dashboard")
	resp, _ = get(t, learner, app.server.URL+"/admin/dashboard")
	assertRedirect(t, resp, "/login")
	resp, _ = get(t, learner, app.server.URL+"/user/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("user dashboard status = %d", resp.StatusCode)
	}

	admin := app.browser(t)
	assertRedirect(t, app.login(t, admin, "admin@example.com"), "/admin/dashboard")
	resp, _ = get(t, admin, app.server.URL+"/admin/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin dashboard status = %d", resp.StatusCode)
	}
	resp, _ = get(t, admin, app.server.URL+"/user/dashboard")
	assertRedirect(t, resp, "/login")

	resp, _ = get(t, learner, app.server.URL+"/logout")
	assertRedirect(t, resp, "/")
	resp, _ = get(t, learner, app.server.URL+"/user/dashboard")
	assertRedirect(t, resp, "/login")
}

func TestAdminActionsRejectUserSession(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "learner@example.com", false)
	quiz, qs := seedQuiz(t, app.db)

	var subject model.Subject
	if err := app.db.First(&subject).Error; err != nil {
		t.Fatal(err)
	}
	learner := app.browser(t)
	assertRedirect(t, app.login(t, learner, "learner@example.com"), "/user/dashboard")

	base := app.server.URL + "/admin"
	tests := []struct {
		name   string
		method string
		path   string
		form   url.Values
	}{
		{"add subject", http.MethodPost, "/subject/add", url.Values{"name": {"Intruder"}}},
		{"edit subject", http.MethodPost, "/subject/edit/" + itoa(subject.ID), url.Values{"name": {"Renamed"}}},
		{"delete subject", http.MethodGet, "/subject/delete/" + itoa(subject.ID), nil},
		{"add question", http.MethodPost, "/question/add", url.Values{
			"quiz_id": {itoa(quiz.ID)}, "question_statement": {"?"},
			"option1": {"a"}, "option2": {"b"}, "option3": {"c"}, "option4": {"d"}, "correct_option": {"1"},
		}},
		{"edit quiz", http.MethodPost, "/quiz/edit/" + itoa(quiz.ID), url.Values{
			"date_of_quiz": {"2025-01-01"}, "time_duration": {"02:00"},
		}},
		{"delete question", http.MethodGet, "/question/delete/" + itoa(qs[0].ID), nil},
		{"search", http.MethodGet, "/search?query=math", nil},
	}

	counts := func() [4]int64 {
		return [4]int64{
			testutil.Count(t, app.db, &model.Subject{}),
			testutil.Count(t, app.db, &model.Chapter{}),
			testutil.Count(t, app.db, &model.Quiz{}),
			testutil.Count(t, app.db, &model.Question{}),
		}
	}
	before := counts()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			if tt.method == http.MethodPost {
				resp = postForm(t, learner, base+tt.path, tt.form)
			} else {
				resp, _ = get(t, learner, base+tt.path)
			}
			assertRedirect(t, resp, "/login")
		})
	}

	if after := counts(); after != before {
		t.Errorf("row counts changed from %v to %v", before, after)
	}
	var stored model.Subject
	if err := app.db.First(&stored, subject.ID).Error; err != nil {
		t.Fatalf("subject missing: %v", err)
	}
	if stored.Name != "Math" {
		t.Errorf("subject name = %q, want Math", stored.Name)
	}
	var storedQuiz model.Quiz
	if err := app.db.First(&storedQuiz, quiz.ID).Error; err != nil {
		t.Fatal(err)
	}
	if storedQuiz.TimeDuration != "00:30" {
		t.Errorf("quiz duration = %q, want 00:30", storedQuiz.TimeDuration)
	}
}

func TestPageLoginFailure(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "learner@example.com", false)
	client := app.browser(t)

	resp, err := client.PostForm(app.server.URL+"/login", url.Values{"email": {"learner@example.com"}, "password": {"nope"}})
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Invalid email or password") {
		t.Error("login page does not show the failure message")
	}
	resp, _ = get(t, client, app.server.URL+"/user/dashboard")
	assertRedirect(t, resp, "/login")
}

func TestPageRegister(t *testing.T) {
	app := newTestApp(t)
	client := app.browser(t)
	form := url.Values{
		"email":         {"new@example.com"},
		"password":      {"pw"},
		"full_name":     {"New Learner"},
		"qualification": {"B.A"},
		"dob":           {"2000-01-31"},
	}

	assertRedirect(t, postForm(t, client, app.server.URL+"/register", form), "/login")
	assertRedirect(t, postForm(t, client, app.server.URL+"/register", form), "/register")
	if n := testutil.Count(t, app.db, &model.User{}); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestPageQuizSubmission(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "learner@example.com", false)
	testutil.CreateUser(t, app.db, "other@example.com", false)
	quiz, qs := seedQuiz(t, app.db)

	learner := app.browser(t)
	app.login(t, learner, "learner@example.com")

	quizURL := app.server.URL + "/user/quiz/" + itoa(quiz.ID)
	resp, body := get(t, learner, quizURL)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("quiz page status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "question_"+itoa(qs[0].ID)) {
		t.Error("quiz page has no answer field for the first question")
	}

	resp = postForm(t, learner, quizURL, url.Values{
		"question_" + itoa(qs[0].ID): {"1"},
		"question_" + itoa(qs[1].ID): {"2"},
		"question_" + itoa(qs[2].ID): {"4"},
	})
	var score model.Score
	if err := app.db.Last(&score).Error; err != nil {
		t.Fatalf("load score: %v", err)
	}
	assertRedirect(t, resp, "/user/results/"+itoa(score.ID))
	if score.TotalScored != 2 {
		t.Errorf("TotalScored = %d, want 2", score.TotalScored)
	}

	resp, body = get(t, learner, app.server.URL+"/user/results/"+itoa(score.ID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("results status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "You scored 2 out of 3") {
		t.Error("results page does not show the score")
	}

	other := app.browser(t)
	app.login(t, other, "other@example.com")
	resp, _ = get(t, other, app.server.URL+"/user/results/"+itoa(score.ID))
	assertRedirect(t, resp, "/user/dashboard")

	resp, _ = get(t, learner, app.server.URL+"/user/quiz/999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing quiz status = %d, want 404", resp.StatusCode)
	}

	// The dashboard renders the performance chart for the attempted subject.
	resp, _ = get(t, learner, app.server.URL+"/user/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", resp.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(app.cfg.StaticDir, service.UserPerformanceChart)); err != nil {
		t.Errorf("performance chart not written: %v", err)
	}
}

func TestAdminCatalogPages(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "admin@example.com", true)
	admin := app.browser(t)
	app.login(t, admin, "admin@example.com")

	base := app.server.URL + "/admin"
	assertRedirect(t, postForm(t, admin, base+"/subject/add", url.Values{"name": {"Biology"}}), "/admin/dashboard")

	var subject model.Subject
	if err := app.db.Where("name = ?", "Biology").First(&subject).Error; err != nil {
		t.Fatalf("subject not created: %v", err)
	}
	assertRedirect(t, postForm(t, admin, base+"/chapter/add", url.Values{
		"name": {"Cells"}, "subject_id": {itoa(subject.ID)},
	}), "/admin/dashboard")

	var chapter model.Chapter
	if err := app.db.Where("subject_id = ?", subject.ID).First(&chapter).Error; err != nil {
		t.Fatalf("chapter not created: %v", err)
	}
	resp, err := admin.PostForm(base+"/quiz/add", url.Values{
		"chapter_id": {itoa(chapter.ID)}, "date_of_quiz": {"2024-09-01"}, "time_duration": {"1:5"},
	})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid duration status = %d, want 400", resp.StatusCode)
	}
	if n := testutil.Count(t, app.db, &model.Quiz{}); n != 0 {
		t.Errorf("quizzes = %d, want 0", n)
	}

	resp, _ = get(t, admin, base+"/subject/delete/"+itoa(subject.ID))
	assertRedirect(t, resp, "/admin/dashboard")
	if n := testutil.Count(t, app.db, &model.Chapter{}); n != 0 {
		t.Errorf("chapters after cascade = %d, want 0", n)
	}

	resp, body := get(t, admin, base+"/search?query=bio&type=subjects")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	if strings.Contains(body, "Biology") {
		t.Error("deleted subject still listed")
	}
}

func TestAPIAuthAndScores(t *testing.T) {
	app := newTestApp(t)
	alice := testutil.CreateUser(t, app.db, "alice@example.com", false)
	bob := testutil.CreateUser(t, app.db, "bob@example.com", false)
	testutil.CreateUser(t, app.db, "admin@example.com", true)
	quiz, _ := seedQuiz(t, app.db)
	testutil.CreateScore(t, app.db, quiz.ID, alice.ID, 3)
	testutil.CreateScore(t, app.db, quiz.ID, bob.ID, 1)

	var failure dto.ErrorResponse
	status := apiCall(t, app, http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"bad"}`, &failure)
	if status != http.StatusUnauthorized || failure.Message != "Could not verify" {
		t.Errorf("bad login = %d %q", status, failure.Message)
	}
	status = apiCall(t, app, http.MethodPost, "/api/auth/login", "", `not json`, &failure)
	if status != http.StatusUnauthorized {
		t.Errorf("malformed login status = %d", status)
	}

	aliceToken := apiLogin(t, app, "alice@example.com")
	var mine []dto.ScoreResponse
	if status := apiCall(t, app, http.MethodGet, "/api/users/me/scores", aliceToken, "", &mine); status != http.StatusOK {
		t.Fatalf("my scores status = %d", status)
	}
	if len(mine) != 1 || mine[0].TotalScored != 3 {
		t.Errorf("my scores = %+v", mine)
	}

	var denied dto.ErrorResponse
	if status := apiCall(t, app, http.MethodGet, "/api/admin/scores", aliceToken, "", &denied); status != http.StatusForbidden {
		t.Errorf("non-admin scores status = %d, want 403", status)
	}

	adminToken := apiLogin(t, app, "admin@example.com")
	var all []dto.AdminScoreResponse
	if status := apiCall(t, app, http.MethodGet, "/api/admin/scores", adminToken, "", &all); status != http.StatusOK {
		t.Fatalf("admin scores status = %d", status)
	}
	if len(all) != 2 {
		t.Errorf("admin scores = %d, want 2", len(all))
	}

	var detail dto.QuizDetailResponse
	if status := apiCall(t, app, http.MethodGet, "/api/quizzes/"+itoa(quiz.ID), aliceToken, "", &detail); status != http.StatusOK {
		t.Fatalf("quiz detail status = %d", status)
	}
	if len(detail.Questions) != 3 || len(detail.Questions[0].Options) != 4 {
		t.Errorf("quiz detail = %+v", detail)
	}
	var missing dto.ErrorResponse
	if status := apiCall(t, app, http.MethodGet, "/api/quizzes/999", aliceToken, "", &missing); status != http.StatusNotFound {
		t.Errorf("missing quiz status = %d, want 404", status)
	}

	// A browser session does not authenticate API calls.
	client := app.browser(t)
	app.login(t, client, "alice@example.com")
	resp, _ := get(t, client, app.server.URL+"/api/subjects")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("session-only API status = %d, want 401", resp.StatusCode)
	}
}

func apiLogin(t *testing.T, app *testApp, email string) string {
	t.Helper()
	var tok dto.TokenResponse
	body := `{"email":"` + email + `","password":"` + testutil.Password + `"}`
	if status := apiCall(t, app, http.MethodPost, "/api/auth/login", "", body, &tok); status != http.StatusOK {
		t.Fatalf("login %s status = %d", email, status)
	}
	if tok.Token == "" {
		t.Fatalf("login %s returned no token", email)
	}
	return tok.Token
}

func apiCall(t *testing.T, app *testApp, method, path, token, body string, out interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, app.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
