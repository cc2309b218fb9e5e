package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fdrs/internal/blob"
	"fdrs/internal/database"
	"fdrs/internal/domain"
	"fdrs/internal/mailer"
	"fdrs/internal/middleware"
	"fdrs/internal/modules/auth"
	"fdrs/internal/modules/catalog"
	"fdrs/internal/modules/comment"
	"fdrs/internal/modules/favorite"
	"fdrs/internal/modules/moderation"
	jwtsvc "fdrs/internal/pkg/jwt"
	"fdrs/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	blobStore  *blob.DiskStore
}

type TestResponse struct {
	Success  bool         `json:"success"`
	Data     interface{}  `json:"data,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// valid PNG signature so the MIME sniff accepts the cover
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func setupTestSuite(t *testing.T) *E2ETestSuite {
	// Use in-memory SQLite for testing
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	blobStore := blob.NewDiskStore(t.TempDir())
	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authService := auth.NewService(userRepo, resourceRepo, favoriteRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	moderationService := moderation.NewService(resourceRepo, commentRepo, favoriteRepo, userRepo, facultyRepo, blobStore, mailer.Nop{})
	moderationHandler := moderation.NewHandler(moderationService)

	catalogService := catalog.NewService(resourceRepo, commentRepo, facultyRepo, blobStore)
	catalogHandler := catalog.NewHandler(catalogService)

	commentHandler := comment.NewHandler(commentRepo, resourceRepo)
	favoriteHandler := favorite.NewHandler(favoriteRepo, resourceRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthRequired(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		moderationHandler.RegisterRoutes(protected)
		commentHandler.RegisterRoutes(protected)
		favoriteHandler.RegisterRoutes(protected)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtService), middleware.AdminOnly())
	{
		moderationHandler.RegisterAdminRoutes(admin)
		catalogHandler.RegisterAdminRoutes(admin)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("AdminPass123"), bcrypt.MinCost)
	require.NoError(t, err)
	adminUser := &domain.User{
		Username:     "admin",
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	require.NoError(t, db.Create(adminUser).Error, "Failed to create admin user")

	faculties := []domain.Faculty{
		{Name: "Engineering"},
		{Name: "Medicine"},
	}
	for i := range faculties {
		require.NoError(t, db.Create(&faculties[i]).Error, "Failed to create faculty")
	}

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		blobStore:  blobStore,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyBytes []byte
	var err error

	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w, nil
}

// submitResource posts a multipart submission with a valid document and
// cover attached.
func (s *E2ETestSuite) submitResource(t *testing.T, facultyID int64, title, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       title,
		"firstname":   "Grace",
		"lastname":    "Hopper",
		"description": "Compiler lecture notes",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	doc, err := mw.CreateFormFile("file", "notes.pdf")
	require.NoError(t, err)
	_, err = doc.Write(pdfBytes)
	require.NoError(t, err)

	img, err := mw.CreateFormFile("img", "cover.png")
	require.NoError(t, err)
	_, err = img.Write(pngBytes)
	require.NoError(t, err)

	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/faculties/%d/resources", facultyID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) (*TestResponse, error) {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	if err != nil {
		log.Printf("Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	}
	return &resp, err
}

func dataMap(t *testing.T, resp *TestResponse) map[string]interface{} {
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return m
}

func dataList(t *testing.T, resp *TestResponse) []interface{} {
	if resp.Data == nil {
		return nil
	}
	l, ok := resp.Data.([]interface{})
	require.True(t, ok, "expected array data, got %T", resp.Data)
	return l
}

func (s *E2ETestSuite) registerUser(t *testing.T, username, email string) string {
	w, err := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": "Password123!",
	}, "")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp, err := parseResponse(w)
	require.NoError(t, err)
	return dataMap(t, resp)["token"].(string)
}

func (s *E2ETestSuite) adminToken(t *testing.T) string {
	var admin domain.User
	require.NoError(t, s.db.Where("email = ?", "admin@test.com").First(&admin).Error)

	token, err := s.jwtService.GenerateToken(admin.ID, true)
	require.NoError(t, err)
	return token
}

func TestFlow1_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /auth/register", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "student1",
			"email":    "student1@test.com",
			"password": "Password123!",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, w.Code, "Expected 201 Created")

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, dataMap(t, resp)["token"])
	})

	t.Run("POST /auth/register duplicate email", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"username": "someoneelse",
			"email":    "student1@test.com",
			"password": "Password123!",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("POST /auth/login", func(t *testing.T) {
		w, err := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "student1@test.com",
			"password": "Password123!",
		}, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, dataMap(t, resp)["token"])
	})

	t.Run("GET /profile", func(t *testing.T) {
		token := suite.registerUser(t, "profileuser", "profile@test.com")

		w, err := suite.makeRequest("GET", "/api/v1/profile", nil, token)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		user := dataMap(t, resp)["user"].(map[string]interface{})
		assert.Equal(t, "profile@test.com", user["email"])
	})

	t.Run("GET /profile without token", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/profile", nil, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow2_SubmissionAndApproval(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "submitter", "submitter@test.com")
	adminToken := suite.adminToken(t)

	var resourceID int64

	t.Run("POST /faculties/:id/resources", func(t *testing.T) {
		w := suite.submitResource(t, 1, "Compiler Construction Notes", ownerToken)

		assert.Equal(t, http.StatusCreated, w.Code, "submission failed: %s", w.Body.String())

		resp, err := parseResponse(w)
		require.NoError(t, err)
		data := dataMap(t, resp)
		assert.False(t, data["authorized"].(bool), "fresh submission must be pending")
		resourceID = int64(data["id"].(float64))
	})

	t.Run("pending resource hidden from faculty listing", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/faculties/1/resources", nil, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Empty(t, dataList(t, resp))
	})

	t.Run("duplicate title rejected", func(t *testing.T) {
		w := suite.submitResource(t, 1, "Compiler Construction Notes", ownerToken)

		assert.Equal(t, http.StatusConflict, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("GET /admin/resources/pending", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/admin/resources/pending", nil, adminToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Len(t, dataList(t, resp), 1)
	})

	t.Run("non-admin cannot approve", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/approve", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("POST /admin/resources/:id/approve", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/approve", resourceID), nil, adminToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code, "approve failed: %s", w.Body.String())

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.True(t, dataMap(t, resp)["authorized"].(bool))
	})

	t.Run("approved resource visible in faculty listing", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/faculties/1/resources", nil, "")
		require.NoError(t, err)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Len(t, dataList(t, resp), 1)
	})

	t.Run("second approve rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/approve", resourceID), nil, adminToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Equal(t, "ALREADY_MODERATED", resp.Error.Code)
	})

	t.Run("decline after approval rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/decline", resourceID), nil, adminToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /resources/:id/download", func(t *testing.T) {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/resources/%d/download", resourceID), nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		got, err := io.ReadAll(w.Body)
		require.NoError(t, err)
		assert.Equal(t, pdfBytes, got)
	})

	t.Run("search finds approved resource", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/faculties/1/resources/search?term=compiler", nil, "")
		require.NoError(t, err)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		data := dataMap(t, resp)
		assert.False(t, data["no_match"].(bool))

		w, err = suite.makeRequest("GET", "/api/v1/faculties/1/resources/search?term=nosuchthing", nil, "")
		require.NoError(t, err)

		resp, err = parseResponse(w)
		require.NoError(t, err)
		assert.True(t, dataMap(t, resp)["no_match"].(bool))
	})
}

func TestFlow3_DeclineCascades(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "author", "author@test.com")
	readerToken := suite.registerUser(t, "reader", "reader@test.com")
	adminToken := suite.adminToken(t)

	w := suite.submitResource(t, 2, "Anatomy Atlas", ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, "submission failed: %s", w.Body.String())
	resp, err := parseResponse(w)
	require.NoError(t, err)
	resourceID := int64(dataMap(t, resp)["id"].(float64))

	t.Run("Setup: attach comment and favorite", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/resources/%d/comments", resourceID), map[string]interface{}{
			"body": "looking forward to this one",
		}, readerToken)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, "comment failed: %s", w.Body.String())

		w, err = suite.makeRequest("POST", fmt.Sprintf("/api/v1/favorites/%d", resourceID), nil, readerToken)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, w.Code, "favorite failed: %s", w.Body.String())
	})

	t.Run("POST /admin/resources/:id/decline", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/decline", resourceID), nil, adminToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code, "decline failed: %s", w.Body.String())

		resp, err := parseResponse(w)
		require.NoError(t, err)
		data := dataMap(t, resp)
		assert.Equal(t, float64(1), data["comments_deleted"])
		assert.Equal(t, float64(1), data["favorites_deleted"])
		assert.Empty(t, resp.Warnings)
	})

	t.Run("declined resource is gone", func(t *testing.T) {
		w, err := suite.makeRequest("GET", fmt.Sprintf("/api/v1/resources/%d", resourceID), nil, "")
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cascade emptied the dependents", func(t *testing.T) {
		var comments, favorites int64
		require.NoError(t, suite.db.Model(&domain.Comment{}).Where("resource_id = ?", resourceID).Count(&comments).Error)
		require.NoError(t, suite.db.Model(&domain.Favorite{}).Where("resource_id = ?", resourceID).Count(&favorites).Error)
		assert.Zero(t, comments)
		assert.Zero(t, favorites)
	})
}

func TestFlow4_OwnerDelete(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "owner", "owner@test.com")
	strangerToken := suite.registerUser(t, "stranger", "stranger@test.com")
	adminToken := suite.adminToken(t)

	w := suite.submitResource(t, 1, "Circuit Theory Workbook", ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp, err := parseResponse(w)
	require.NoError(t, err)
	resourceID := int64(dataMap(t, resp)["id"].(float64))

	t.Run("stranger cannot delete", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/resources/%d", resourceID), nil, strangerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner deletes own resource", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/resources/%d", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code, "delete failed: %s", w.Body.String())
	})

	t.Run("admin deletes an approved resource of another user", func(t *testing.T) {
		w := suite.submitResource(t, 1, "Thermodynamics Primer", ownerToken)
		require.Equal(t, http.StatusCreated, w.Code)
		resp, err := parseResponse(w)
		require.NoError(t, err)
		id := int64(dataMap(t, resp)["id"].(float64))

		wa, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/resources/%d/approve", id), nil, adminToken)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, wa.Code)

		wd, err := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/resources/%d", id), nil, adminToken)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, wd.Code)
	})
}

func TestFlow5_Favorites(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "collector", "collector@test.com")

	w := suite.submitResource(t, 1, "Graph Theory Notes", ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp, err := parseResponse(w)
	require.NoError(t, err)
	resourceID := int64(dataMap(t, resp)["id"].(float64))

	t.Run("POST /favorites/:resourceId", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/favorites/%d", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("double favorite rejected", func(t *testing.T) {
		w, err := suite.makeRequest("POST", fmt.Sprintf("/api/v1/favorites/%d", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /favorites", func(t *testing.T) {
		w, err := suite.makeRequest("GET", "/api/v1/favorites", nil, ownerToken)
		require.NoError(t, err)

		resp, err := parseResponse(w)
		require.NoError(t, err)
		assert.Len(t, dataList(t, resp), 1)
	})

	t.Run("DELETE /favorites/:resourceId", func(t *testing.T) {
		w, err := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/favorites/%d", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNoContent, w.Code)

		w, err = suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/favorites/%d", resourceID), nil, ownerToken)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
