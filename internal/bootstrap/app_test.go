package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/bootstrap"
	"jobboard-backend/internal/shared/config"
)

const (
	testBaseURL  = "http://localhost:8080"
	testPassword = "Str0ng!Pass"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Object     json.RawMessage `json:"object"`
	Errors     []fieldError    `json:"errors"`
	PageNumber int             `json:"pageNumber"`
	PageSize   int             `json:"pageSize"`
	TotalSize  int             `json:"totalSize"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type jobObject struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	CreatedBy string `json:"created_by"`
}

type applicationObject struct {
	ID         string `json:"id"`
	Applicant  string `json:"applicant"`
	Job        string `json:"job"`
	ResumeLink string `json:"resume_link"`
	Status     string `json:"status"`
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		PublicBaseURL:   testBaseURL,
		JWTSecret:       "test-secret",
	}
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(testConfig(t))
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var env envelope
	if strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, resp.Body.String())
		}
	}
	return resp, env
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	return do(t, router, method, path, token, body, "application/json")
}

func signupAndLogin(t *testing.T, router *gin.Engine, name, email, role string) string {
	t.Helper()
	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": testPassword,
		"role":     role,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d (%s)", email, resp.Code, resp.Body.String())
	}
	if !env.Success || env.Message != "User created successfully" {
		t.Fatalf("unexpected signup envelope: %+v", env)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, testPassword)))
	req.Header.Set("Content-Type", "application/json")
	tokenResp := httptest.NewRecorder()
	router.ServeHTTP(tokenResp, req)
	if tokenResp.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, tokenResp.Code, tokenResp.Body.String())
	}
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(tokenResp.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode token pair: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	return pair.Access
}

func createJob(t *testing.T, router *gin.Engine, token, title, location string) jobObject {
	t.Helper()
	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/jobs", token, map[string]string{
		"title":       title,
		"description": "A role with plenty of interesting work to do.",
		"location":    location,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	var job jobObject
	if err := json.Unmarshal(env.Object, &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	return job
}

func applyForm(t *testing.T, jobID, fileName string, resume []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if jobID != "" {
		if err := writer.WriteField("job", jobID); err != nil {
			t.Fatalf("write job field: %v", err)
		}
	}
	if err := writer.WriteField("cover_letter", "Hello there"); err != nil {
		t.Fatalf("write cover letter: %v", err)
	}
	if fileName != "" {
		fileWriter, err := writer.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fileWriter.Write(resume); err != nil {
			t.Fatalf("write resume: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func apply(t *testing.T, router *gin.Engine, token, jobID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, contentType := applyForm(t, jobID, "cv.pdf", []byte("%PDF-1.4 not really a pdf"))
	return do(t, router, http.MethodPost, "/api/v1/applications", token, body, contentType)
}

func TestHealth(t *testing.T) {
	router := newRouter(t)

	resp, _ := do(t, router, http.MethodGet, "/api/v1/health", "", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestSignupRejectsDuplicateEmailAndWeakPassword(t *testing.T) {
	router := newRouter(t)
	signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/users", "", map[string]string{
		"name":     "Ada 2",
		"email":    "ada@example.com",
		"password": "weak",
		"role":     "admin",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if env.Success {
		t.Fatalf("expected success=false")
	}
	fields := map[string]bool{}
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"name", "email", "password", "role"} {
		if !fields[want] {
			t.Fatalf("expected error for %s, got %+v", want, env.Errors)
		}
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	router := newRouter(t)
	signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"email":    "ada@example.com",
		"password": "Wr0ng!Pass",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if env.Message != "No active account found with the given credentials" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := newRouter(t)

	resp, env := do(t, router, http.MethodGet, "/api/v1/users/me", "", nil, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if env.Message != "Authentication credentials were not provided." {
		t.Fatalf("unexpected message %q", env.Message)
	}

	token := signupAndLogin(t, router, "Grace Hopper", "grace@example.com", "company")
	resp, env = do(t, router, http.MethodGet, "/api/v1/users/me", token, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Object, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Email != "grace@example.com" || me.Role != "company" {
		t.Fatalf("unexpected me %+v", me)
	}
}

func TestJobLifecycleAndOwnership(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	rival := signupAndLogin(t, router, "Rival Corp", "rival@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/jobs", applicant, map[string]string{
		"title":       "Backend Engineer",
		"description": "A role with plenty of interesting work to do.",
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("applicant create: expected 403, got %d", resp.Code)
	}
	if env.Message != "You do not have permission to perform this action." {
		t.Fatalf("unexpected message %q", env.Message)
	}

	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	resp, _ = doJSON(t, router, http.MethodPatch, "/api/v1/jobs/"+job.ID, rival, map[string]string{"title": "Stolen"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("rival update: expected 403, got %d", resp.Code)
	}

	resp, env = doJSON(t, router, http.MethodPatch, "/api/v1/jobs/"+job.ID, owner, map[string]string{"title": "Senior Backend Engineer"})
	if resp.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var updated jobObject
	if err := json.Unmarshal(env.Object, &updated); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" || updated.Location != "Berlin" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs/"+job.ID, applicant, nil, "")
	if resp.Code != http.StatusOK || env.Message != "Job retrieved successfully" {
		t.Fatalf("retrieve: got %d %q", resp.Code, env.Message)
	}

	resp, _ = do(t, router, http.MethodDelete, "/api/v1/jobs/"+job.ID, rival, nil, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("rival delete: expected 403, got %d", resp.Code)
	}
	resp, _ = do(t, router, http.MethodDelete, "/api/v1/jobs/"+job.ID, owner, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d", resp.Code)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs/"+job.ID, applicant, nil, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("deleted job: expected 404, got %d", resp.Code)
	}
	if env.Message != "Job not found" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestJobListFiltersAndPaging(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")

	for i := 0; i < 11; i++ {
		createJob(t, router, owner, fmt.Sprintf("Engineer %d", i), "Berlin")
	}
	createJob(t, router, owner, "Designer", "Paris")

	resp, env := do(t, router, http.MethodGet, "/api/v1/jobs", applicant, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.Code)
	}
	if env.PageNumber != 1 || env.PageSize != 10 || env.TotalSize != 12 {
		t.Fatalf("unexpected page meta %d/%d/%d", env.PageNumber, env.PageSize, env.TotalSize)
	}
	var first []jobObject
	if err := json.Unmarshal(env.Object, &first); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(first) != 10 || first[0].Title != "Designer" {
		t.Fatalf("expected newest first, got %d items starting %q", len(first), first[0].Title)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?page=2", applicant, nil, "")
	if resp.Code != http.StatusOK || env.PageNumber != 2 {
		t.Fatalf("page 2: got %d page %d", resp.Code, env.PageNumber)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?page=3", applicant, nil, "")
	if resp.Code != http.StatusNotFound || env.Message != "Invalid page." {
		t.Fatalf("page 3: got %d %q", resp.Code, env.Message)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?location=Paris", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 1 {
		t.Fatalf("location filter: got %d total %d", resp.Code, env.TotalSize)
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?location=paris", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 0 {
		t.Fatalf("location exact filter is case-sensitive: got %d total %d", resp.Code, env.TotalSize)
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?location__icontains=paris", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 1 {
		t.Fatalf("location contains filter: got %d total %d", resp.Code, env.TotalSize)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs?title=ENGINEER&created_by__name=acme", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 11 {
		t.Fatalf("title filter: got %d total %d", resp.Code, env.TotalSize)
	}

	resp, _ = do(t, router, http.MethodGet, "/api/v1/jobs", owner, nil, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("company list: expected 403, got %d", resp.Code)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/jobs/mine", owner, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 12 {
		t.Fatalf("own list: got %d total %d", resp.Code, env.TotalSize)
	}
}

func TestApplicationFlow(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	rival := signupAndLogin(t, router, "Rival Corp", "rival@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")
	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	resp, env := apply(t, router, applicant, job.ID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	if env.Message != "Application submitted successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	var created applicationObject
	if err := json.Unmarshal(env.Object, &created); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if created.Status != "Applied" || created.Job != job.ID {
		t.Fatalf("unexpected application %+v", created)
	}
	if !strings.HasPrefix(created.ResumeLink, testBaseURL+"/api/v1/files/") {
		t.Fatalf("unexpected resume link %q", created.ResumeLink)
	}

	fileResp, _ := do(t, router, http.MethodGet, strings.TrimPrefix(created.ResumeLink, testBaseURL), "", nil, "")
	if fileResp.Code != http.StatusOK || !strings.HasPrefix(fileResp.Body.String(), "%PDF-1.4") {
		t.Fatalf("resume link: got %d", fileResp.Code)
	}

	resp, env = apply(t, router, applicant, job.ID)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("duplicate apply: expected 400, got %d", resp.Code)
	}
	if env.Message != "You have already applied to this job" ||
		len(env.Errors) != 1 || env.Errors[0].Message != "Duplicate application" {
		t.Fatalf("unexpected duplicate envelope %+v", env)
	}

	resp, _ = apply(t, router, owner, job.ID)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("company apply: expected 403, got %d", resp.Code)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/applications", owner, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 1 {
		t.Fatalf("owner list: got %d total %d", resp.Code, env.TotalSize)
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/applications", rival, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 0 {
		t.Fatalf("rival list: got %d total %d", resp.Code, env.TotalSize)
	}
	resp, env = do(t, router, http.MethodGet, "/api/v1/applications", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 1 {
		t.Fatalf("applicant list: got %d total %d", resp.Code, env.TotalSize)
	}

	statusPath := "/api/v1/applications/" + created.ID + "/status"
	resp, _ = doJSON(t, router, http.MethodPatch, statusPath, applicant, map[string]string{"status": "Hired"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("applicant status: expected 403, got %d", resp.Code)
	}
	resp, _ = doJSON(t, router, http.MethodPatch, statusPath, rival, map[string]string{"status": "Hired"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("rival status: expected 403, got %d", resp.Code)
	}
	resp, env = doJSON(t, router, http.MethodPatch, statusPath, owner, map[string]string{"status": "Promoted"})
	if resp.Code != http.StatusBadRequest || env.Message != "Invalid status" {
		t.Fatalf("invalid status: got %d %q", resp.Code, env.Message)
	}
	resp, env = doJSON(t, router, http.MethodPatch, statusPath, owner, map[string]string{"status": "Interview"})
	if resp.Code != http.StatusOK || env.Message != "Application status updated" {
		t.Fatalf("status update: got %d %q", resp.Code, env.Message)
	}

	resp, env = do(t, router, http.MethodGet, "/api/v1/applications/"+created.ID, applicant, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("retrieve: expected 200, got %d", resp.Code)
	}
	var fetched applicationObject
	if err := json.Unmarshal(env.Object, &fetched); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if fetched.Status != "Interview" {
		t.Fatalf("expected Interview, got %q", fetched.Status)
	}

	resp, env = doJSON(t, router, http.MethodPatch, "/api/v1/applications/missing/status", owner, map[string]string{"status": "Hired"})
	if resp.Code != http.StatusNotFound || env.Message != "Application not found" {
		t.Fatalf("unknown application: got %d %q", resp.Code, env.Message)
	}
}

func TestApplyValidation(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")
	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	body, contentType := applyForm(t, job.ID, "cv.docx", []byte("not a pdf"))
	resp, env := do(t, router, http.MethodPost, "/api/v1/applications", applicant, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("docx resume: expected 400, got %d", resp.Code)
	}
	if len(env.Errors) == 0 || env.Errors[0].Field != "resume" {
		t.Fatalf("expected resume error, got %+v", env.Errors)
	}

	body, contentType = applyForm(t, job.ID, "", nil)
	resp, _ = do(t, router, http.MethodPost, "/api/v1/applications", applicant, body, contentType)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing resume: expected 400, got %d", resp.Code)
	}

	resp, env = apply(t, router, applicant, "00000000-0000-0000-0000-000000000000")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unknown job: expected 400, got %d", resp.Code)
	}
	found := false
	for _, e := range env.Errors {
		if e.Field == "job" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected job field error, got %+v", env.Errors)
	}
}

func TestDeletingJobRemovesApplications(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")
	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	if resp, _ := apply(t, router, applicant, job.ID); resp.Code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d", resp.Code)
	}
	if resp, _ := do(t, router, http.MethodDelete, "/api/v1/jobs/"+job.ID, owner, nil, ""); resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}

	resp, env := do(t, router, http.MethodGet, "/api/v1/applications", applicant, nil, "")
	if resp.Code != http.StatusOK || env.TotalSize != 0 {
		t.Fatalf("expected no applications, got %d total %d", resp.Code, env.TotalSize)
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.AuthRateLimitRPS = 0.001
	cfg.AuthRateLimitBurst = 1
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}

	payload := map[string]string{"email": "nobody@example.com", "password": testPassword}
	resp, _ := doJSON(t, app.Router, http.MethodPost, "/api/v1/auth/token", "", payload)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("first attempt: expected 401, got %d", resp.Code)
	}
	resp, _ = doJSON(t, app.Router, http.MethodPost, "/api/v1/auth/token", "", payload)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("second attempt: expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestApplyAcceptsDottedResumeName(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	applicant := signupAndLogin(t, router, "Jane Doe", "jane@example.com", "applicant")
	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	body, contentType := applyForm(t, job.ID, "jane..resume.pdf", []byte("%PDF-1.4 not really a pdf"))
	resp, env := do(t, router, http.MethodPost, "/api/v1/applications", applicant, body, contentType)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	var created applicationObject
	if err := json.Unmarshal(env.Object, &created); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if !strings.HasSuffix(created.ResumeLink, "_jane_resume.pdf") {
		t.Fatalf("unexpected resume link %q", created.ResumeLink)
	}

	fileResp, _ := do(t, router, http.MethodGet, strings.TrimPrefix(created.ResumeLink, testBaseURL), "", nil, "")
	if fileResp.Code != http.StatusOK {
		t.Fatalf("resume link: got %d", fileResp.Code)
	}
}

func TestJobWritesCheckRoleBeforeBody(t *testing.T) {
	router := newRouter(t)
	owner := signupAndLogin(t, router, "Acme Corp", "acme@example.com", "company")
	applicant := signupAndLogin(t, router, "Ada Lovelace", "ada@example.com", "applicant")
	job := createJob(t, router, owner, "Backend Engineer", "Berlin")

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/jobs"},
		{http.MethodPatch, "/api/v1/jobs/" + job.ID},
		{http.MethodPut, "/api/v1/jobs/" + job.ID},
	} {
		resp, env := do(t, router, tc.method, tc.path, applicant, strings.NewReader("{not json"), "application/json")
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", tc.method, tc.path, resp.Code)
		}
		if env.Message != "You do not have permission to perform this action." {
			t.Fatalf("%s %s: unexpected message %q", tc.method, tc.path, env.Message)
		}
	}

	resp, _ := do(t, router, http.MethodPost, "/api/v1/jobs", owner, strings.NewReader("{not json"), "application/json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("company with malformed body: expected 400, got %d", resp.Code)
	}
}
