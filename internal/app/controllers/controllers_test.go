package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/capstone/internal/app/controllers"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/app/routes"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
	"github.com/yigit/capstone/internal/pkg/apperrors"
	"github.com/yigit/capstone/internal/pkg/auth"
	"github.com/yigit/capstone/internal/pkg/filestorage"
	"github.com/yigit/capstone/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stubs embed the service interface so only the methods a test needs are implemented.

type stubProjectService struct {
	services.ProjectService
	register func(services.RegisterProjectInput) (*models.Project, error)
	byGuide  func(staffID, stage string) ([]*models.Project, error)
}

func (s *stubProjectService) RegisterProject(_ context.Context, in services.RegisterProjectInput) (*models.Project, error) {
	return s.register(in)
}

func (s *stubProjectService) ListProjectsByGuide(_ context.Context, staffID, stage string) ([]*models.Project, error) {
	return s.byGuide(staffID, stage)
}

type stubReviewService struct {
	services.ReviewService
	update func(reviewID, stage string, body map[string]json.RawMessage) (*models.StageRecord, string, error)
}

func (s *stubReviewService) UpdateStage(_ context.Context, reviewID, stage string, body map[string]json.RawMessage) (*models.StageRecord, string, error) {
	return s.update(reviewID, stage, body)
}

type stubAuthService struct {
	services.AuthService
	login func(role models.RoleType, identifier, password string) (string, error)
}

func (s *stubAuthService) Login(_ context.Context, role models.RoleType, identifier, password string) (string, error) {
	return s.login(role, identifier, password)
}

type stubStudentService struct {
	services.StudentService
	reset func(regNo, email, password string) error
}

func (s *stubStudentService) ResetPassword(_ context.Context, regNo, email, password string) error {
	return s.reset(regNo, email, password)
}

type stubStaffService struct {
	services.StaffService
	created *services.CreateStaffInput
}

func (s *stubStaffService) CreateStaff(_ context.Context, in services.CreateStaffInput) (*models.Staff, error) {
	s.created = &in
	staff := &models.Staff{ID: "g1", FullName: in.FullName, Email: in.Email, Specializations: in.Specializations}
	if in.ProfileImg != nil {
		staff.ProfileImg = in.ProfileImg.Data
		staff.ProfileImgType = in.ProfileImg.MimeType
	}
	return staff, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router   *gin.Engine
	jwt      *auth.JWTService
	projects *stubProjectService
	reviews  *stubReviewService
	auth     *stubAuthService
	students *stubStudentService
	staffs   *stubStaffService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	require.NoError(t, validation.RegisterBindings())

	ts := &testServer{
		jwt:      auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "capstone"}),
		projects: &stubProjectService{},
		reviews:  &stubReviewService{},
		auth:     &stubAuthService{},
		students: &stubStudentService{},
		staffs:   &stubStaffService{},
	}

	// Stage queries run through the real workflow; they fail before touching storage.
	realProjects := services.NewProjectService(nil, nil, services.DefaultProjectLimits(), nil)
	projectCtl := controllers.NewProjectController(&routedProjectService{stubProjectService: ts.projects, real: realProjects})

	ts.router = gin.New()
	routes.SetupRouter(ts.router, routes.Controllers{
		Auth:    controllers.NewAuthController(ts.auth),
		Student: controllers.NewStudentController(ts.students),
		Staff:   controllers.NewStaffController(ts.staffs, filestorage.NewImageReader(1024)),
		Admin:   controllers.NewAdminController(nil),
		Project: projectCtl,
		Review:  controllers.NewReviewController(ts.reviews),
		Health:  controllers.NewHealthController(stubPinger{}),
	}, middleware.NewAuthMiddleware(ts.jwt), nil)
	return ts
}

// routedProjectService sends stage listings to the real workflow and everything else to the stub.
type routedProjectService struct {
	*stubProjectService
	real services.ProjectService
}

func (r *routedProjectService) ListProjectsByStage(ctx context.Context, stage string) ([]*models.Project, error) {
	return r.real.ListProjectsByStage(ctx, stage)
}

func (ts *testServer) token(t *testing.T, role models.RoleType) string {
	t.Helper()
	token, err := ts.jwt.GenerateToken(auth.Subject{ID: "u1", Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body, authHeader string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProjectsRequireToken(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(jsonRequest(http.MethodGet, "/api/projects/reviews?stage=zero", "", ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListProjectsByStage_Errors(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, models.RoleStaff)

	w := ts.do(jsonRequest(http.MethodGet, "/api/projects/reviews?stage=bogus", "", tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid stage value", decodeBody(t, w)["error"])

	w = ts.do(jsonRequest(http.MethodGet, "/api/projects/reviews", "", tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Stage query parameter is required", decodeBody(t, w)["error"])
}

func TestRegisterProject(t *testing.T) {
	ts := newTestServer(t)
	review := &models.Review{ID: "r1", ProjectID: "p1"}
	for _, stage := range models.Stages {
		review.SetStage(stage, &models.StageRecord{ID: "r1-" + string(stage), ReviewID: "r1"})
	}
	ts.projects.register = func(in services.RegisterProjectInput) (*models.Project, error) {
		assert.Equal(t, []string{"s1", "s2"}, in.StudentIDs)
		assert.Equal(t, "g1", in.StaffID)
		return &models.Project{
			ID: "p1", Title: in.Title, StaffID: in.StaffID,
			Staff:    &models.Staff{FullName: "Dr. Rao"},
			Students: []*models.Student{{ID: "s1", FullName: "A"}, {ID: "s2", FullName: "B"}},
			Review:   review,
		}, nil
	}

	w := ts.do(jsonRequest(http.MethodPost, "/api/projects", `{"studentIds":["s1","s2"],"staffId":"g1","title":"X"}`, ts.token(t, models.RoleStaff)))
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "X", data["title"])
	assert.Len(t, data["students"], 2)
	reviewBody := data["review"].(map[string]interface{})
	for _, stage := range models.Stages {
		assert.Contains(t, reviewBody, stage.Field())
	}
}

func TestRegisterProject_ErrorStatuses(t *testing.T) {
	ts := newTestServer(t)
	tok := ts.token(t, models.RoleStaff)

	tests := []struct {
		err    error
		status int
	}{
		{apperrors.NewValidationError("Staff ID is required"), http.StatusBadRequest},
		{apperrors.NewCapacityError("The selected guide already has 12 projects"), http.StatusBadRequest},
		{apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "One or more students not found"), http.StatusNotFound},
		{apperrors.NewConflictError("The selected student is already assigned to a project"), http.StatusConflict},
	}
	for _, tt := range tests {
		ts.projects.register = func(services.RegisterProjectInput) (*models.Project, error) { return nil, tt.err }
		w := ts.do(jsonRequest(http.MethodPost, "/api/projects", `{"staffId":"g1","title":"X"}`, tok))
		assert.Equal(t, tt.status, w.Code)
		assert.Equal(t, tt.err.Error(), decodeBody(t, w)["error"])
	}
}

func TestListProjectsByGuide_UsesPathSegment(t *testing.T) {
	ts := newTestServer(t)
	ts.projects.byGuide = func(staffID, stage string) ([]*models.Project, error) {
		assert.Equal(t, "g7", staffID)
		assert.Equal(t, "final", stage)
		return []*models.Project{{ID: "p1", StaffID: "g7", Students: []*models.Student{{FullName: "A", Email: "a@college.edu", PhoneNo: "1"}}}}, nil
	}

	w := ts.do(jsonRequest(http.MethodGet, "/api/projects/g7/reviews?stage=final", "", ts.token(t, models.RoleStaff)))
	require.Equal(t, http.StatusOK, w.Code)
	projects := decodeBody(t, w)["data"].([]interface{})
	student := projects[0].(map[string]interface{})["students"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "a@college.edu", student["email"])
}

func TestUpdateStage(t *testing.T) {
	ts := newTestServer(t)
	ts.reviews.update = func(reviewID, stage string, body map[string]json.RawMessage) (*models.StageRecord, string, error) {
		assert.Equal(t, "r1", reviewID)
		assert.Equal(t, "model", stage)
		assert.JSONEq(t, "8", string(body["score"]))
		score := 8
		return &models.StageRecord{ID: "m1", ReviewID: "r1", Score: &score}, "review model updated successfully", nil
	}

	w := ts.do(jsonRequest(http.MethodPut, "/api/reviews/r1/project?stage=model", `{"score":8}`, ts.token(t, models.RoleStaff)))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "review model updated successfully", body["message"])
	assert.Equal(t, 8.0, body["updateData"].(map[string]interface{})["score"])
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.login = func(role models.RoleType, identifier, password string) (string, error) {
		if role == models.RoleStudent && identifier == "21BCE0001" && password == "pw" {
			return "signed-token", nil
		}
		return "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")
	}

	w := ts.do(jsonRequest(http.MethodPost, "/login/student", `{"regNo":"21BCE0001","password":"pw"}`, ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"signed-token"}`, w.Body.String())

	w = ts.do(jsonRequest(http.MethodPost, "/login/staff", `{"email":"x@college.edu","password":"pw"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(jsonRequest(http.MethodPost, "/login/guide", `{"email":"x@college.edu","password":"pw"}`, ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role", decodeBody(t, w)["error"])
}

func TestUpdatePassword_MessageBodies(t *testing.T) {
	ts := newTestServer(t)
	ts.students.reset = func(regNo, email, password string) error {
		switch {
		case email == "":
			return apperrors.NewValidationError("Email id required")
		case email != "jane@college.edu":
			return apperrors.NewNotFoundError(apperrors.ErrStudentNotFound, "Invalid register number or email id")
		}
		return nil
	}

	tests := []struct {
		body   string
		status int
		want   string
	}{
		{`{"password":"x"}`, http.StatusBadRequest, `{"message":"Email id required"}`},
		{`{"email":"other@college.edu","password":"x"}`, http.StatusNotFound, `{"message":"Invalid register number or email id"}`},
		{`{"email":"jane@college.edu","password":"x"}`, http.StatusOK, `{"message":"Password updated successfully"}`},
	}
	for _, tt := range tests {
		w := ts.do(jsonRequest(http.MethodPut, "/api/students/password/21BCE0001", tt.body, ""))
		assert.Equal(t, tt.status, w.Code)
		assert.JSONEq(t, tt.want, w.Body.String())
	}
}

func multipartStaffRequest(t *testing.T, image []byte, authHeader string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Dr. Rao"))
	require.NoError(t, mw.WriteField("email", "rao@college.edu"))
	require.NoError(t, mw.WriteField("password", "pw"))
	require.NoError(t, mw.WriteField("specializations", "ML"))
	require.NoError(t, mw.WriteField("specializations", "Networks"))
	if image != nil {
		part, err := mw.CreateFormFile("profileImg", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/staffs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", authHeader)
	return req
}

func TestCreateStaff_Multipart(t *testing.T) {
	ts := newTestServer(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	w := ts.do(multipartStaffRequest(t, png, ts.token(t, models.RoleStaff)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(multipartStaffRequest(t, png, ts.token(t, models.RoleAdmin)))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, ts.staffs.created)
	assert.Equal(t, []string{"ML", "Networks"}, ts.staffs.created.Specializations)
	require.NotNil(t, ts.staffs.created.ProfileImg)
	assert.Equal(t, "image/png", ts.staffs.created.ProfileImg.MimeType)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["profileImg"].(string), "data:image/png;base64,"))

	w = ts.do(multipartStaffRequest(t, []byte("plain text, not an image"), ts.token(t, models.RoleAdmin)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(multipartStaffRequest(t, append(png, make([]byte, 2048)...), ts.token(t, models.RoleAdmin)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHealthRoutes(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "up", decodeBody(t, w)["database"])
}
