package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcribe/internal/api/auth"
	"xcribe/internal/api/v1/dto"
	"xcribe/internal/api/v1/services"
	"xcribe/internal/app/repository"
	"xcribe/internal/app/testutil"
	"xcribe/internal/config"
)

type testAPI struct {
	router *gin.Engine
	stub   *testutil.StubTranscriber
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewStore(testutil.NewMemoryKV())
	require.NoError(t, err)

	authService := auth.NewService(config.AuthConfig{
		Username:  "1111",
		Password:  "1111",
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	stub := &testutil.StubTranscriber{Response: "Dit is het transcript."}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), &ServiceContainer{
		Auth:           authService,
		Profiles:       services.NewProfileService(store),
		Transcriptions: services.NewTranscriptionService(stub),
	})

	token, err := authService.Login("1111", "1111")
	require.NoError(t, err)

	return &testAPI{router: router, stub: stub, token: token}
}

func (a *testAPI) do(t *testing.T, method, path string, body *bytes.Buffer, contentType string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestLoginIssuesToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, dto.LoginRequest{Username: "1111", Password: "1111"}),
		"application/json", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, dto.LoginRequest{Username: "1111", Password: "2222"}),
		"application/json", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/profiles", nil, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileListContainsDefaults(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/v1/profiles", nil, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var profiles []dto.ProfilePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 2)
	assert.Equal(t, "Standaard Verslag", profiles[0].Name)
	assert.Equal(t, "Juridisch Protocol", profiles[1].Name)
}

func TestProfileCRUD(t *testing.T) {
	api := newTestAPI(t)

	payload := dto.ProfilePayload{
		Name:        "Intake Gesprek",
		Structure:   "custom",
		OutputStyle: "professional",
		DetailLevel: "cleaned",
		Sections: []dto.SectionPayload{
			{Title: "Aanleiding", Instruction: "Waarom vindt dit gesprek plaats?"},
		},
	}

	rec := api.do(t, http.MethodPost, "/api/v1/profiles", jsonBody(t, payload), "application/json", true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.ProfilePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = api.do(t, http.MethodGet, "/api/v1/profiles/"+created.ID, nil, "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	created.Name = "Intake Gesprek v2"
	rec = api.do(t, http.MethodPut, "/api/v1/profiles/"+created.ID, jsonBody(t, created), "application/json", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated dto.ProfilePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Intake Gesprek v2", updated.Name)

	rec = api.do(t, http.MethodDelete, "/api/v1/profiles/"+created.ID, nil, "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/profiles/"+created.ID, nil, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileDeleteUnknownIDIsNoOp(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodDelete, "/api/v1/profiles/does-not-exist", nil, "", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfileCreateRejectsUnknownTags(t *testing.T) {
	api := newTestAPI(t)

	payload := dto.ProfilePayload{
		Name:        "Kapot",
		Structure:   "banana",
		OutputStyle: "professional",
		DetailLevel: "cleaned",
	}
	rec := api.do(t, http.MethodPost, "/api/v1/profiles", jsonBody(t, payload), "application/json", true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProfileUpdateRejectsMismatchedID(t *testing.T) {
	api := newTestAPI(t)

	payload := dto.ProfilePayload{
		ID:          "other-id",
		Name:        "Standaard Verslag",
		Structure:   "structured_report",
		OutputStyle: "professional",
		DetailLevel: "cleaned",
	}
	rec := api.do(t, http.MethodPut, "/api/v1/profiles/def-1", jsonBody(t, payload), "application/json", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func audioForm(t *testing.T, fields map[string]string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("audio", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestTranscriptionUpload(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := audioForm(t, map[string]string{
		"structure":    "summary",
		"detail_level": "edited",
		"language":     "Nederlands",
	}, "vergadering.mp3", []byte{0xFF, 0xFB, 0x01, 0x02})

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions", body, contentType, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.TranscriptionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Dit is het transcript.", resp.Text)
	assert.False(t, resp.Timestamp.IsZero())

	require.Equal(t, 1, api.stub.CallCount())
	call := api.stub.Calls[0]
	assert.Equal(t, "audio/mpeg", call.MimeType)
	assert.Equal(t, "summary", string(call.Settings.Structure))
	assert.Equal(t, "edited", string(call.Settings.DetailLevel))
	assert.Equal(t, "Nederlands", call.Settings.Language)
	// Omitted fields keep the defaults.
	assert.Equal(t, "raw", string(call.Settings.OutputStyle))
}

func TestTranscriptionUploadAppliesProfile(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := audioForm(t, map[string]string{
		"profile_id": "def-2",
		"language":   "Nederlands",
	}, "zitting.wav", []byte{0x52, 0x49, 0x46, 0x46})

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions", body, contentType, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, 1, api.stub.CallCount())
	call := api.stub.Calls[0]
	assert.Equal(t, "custom", string(call.Settings.Structure))
	require.NotEmpty(t, call.Settings.Sections)
	assert.Equal(t, "Partijen", call.Settings.Sections[0].Title)
	// Language comes from the form, not the profile.
	assert.Equal(t, "Nederlands", call.Settings.Language)
}

func TestTranscriptionUploadUnknownProfile(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := audioForm(t, map[string]string{
		"profile_id": "nope",
	}, "memo.m4a", []byte{0x00, 0x01})

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions", body, contentType, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, api.stub.CallCount())
}

func TestTranscriptionUploadRequiresAudioFile(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := audioForm(t, map[string]string{"structure": "summary"}, "", nil)

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions", body, contentType, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, api.stub.CallCount())
}

func TestTranscriptionUploadRejectsUnknownTag(t *testing.T) {
	api := newTestAPI(t)

	body, contentType := audioForm(t, map[string]string{
		"structure": "banana",
	}, "memo.mp3", []byte{0x01})

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions", body, contentType, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, api.stub.CallCount())
}

func TestExportReturnsAttachment(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions/export",
		jsonBody(t, dto.ExportRequest{Text: "bewaarde tekst"}),
		"application/json", true)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "bewaarde tekst", rec.Body.String())
	disposition := rec.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "Xcribe_Transcriptie_")
	assert.Contains(t, disposition, ".txt")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestExportRequiresText(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/v1/transcriptions/export",
		jsonBody(t, map[string]string{}), "application/json", true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
