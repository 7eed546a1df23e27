package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xcribe/internal/api/errors"
	"xcribe/internal/api/middleware"
	"xcribe/internal/api/v1/dto"
	"xcribe/internal/api/v1/services"
	"xcribe/internal/app/model"
	"xcribe/internal/app/util/files"
)

// maxUploadBytes caps the accepted audio size. The service rejects larger
// inline payloads anyway; failing locally gives a clearer message.
const maxUploadBytes = 25 * 1024 * 1024

// TranscriptionHandler handles transcription endpoints.
type TranscriptionHandler struct {
	transcriptions services.TranscriptionService
	profiles       services.ProfileService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(transcriptions services.TranscriptionService, profiles services.ProfileService) *TranscriptionHandler {
	return &TranscriptionHandler{
		transcriptions: transcriptions,
		profiles:       profiles,
	}
}

// Create handles POST /api/v1/transcriptions.
// Multipart upload: the audio travels as form file "audio", the settings as
// form fields. The call is synchronous; the response carries the transcript
// and a capture timestamp.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var form dto.TranscriptionForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("invalid form data"))
		return
	}

	settings := model.DefaultSettings()
	if form.ProfileID != "" {
		payload, err := h.profiles.Get(form.ProfileID)
		if err != nil {
			middleware.HandleError(c, err)
			return
		}
		settings = payload.ToModel().Apply(settings)
	}
	settings, err := form.ToSettings(settings)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("No audio file selected", map[string]string{
			"audio": "an audio file is required",
		}))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		middleware.HandleError(c, errors.NewBadRequestError("audio file exceeds the 25MB upload limit"))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		detected, err := files.DetectAudioMimeType(fileHeader.Filename)
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError(err.Error()))
			return
		}
		mimeType = detected
	}

	f, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("Failed to read uploaded audio"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("Failed to read uploaded audio"))
		return
	}

	response, err := h.transcriptions.Transcribe(
		c.Request.Context(),
		base64.StdEncoding.EncodeToString(data),
		mimeType,
		settings,
	)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Export handles POST /api/v1/transcriptions/export. Returns the posted
// transcript as a plain-text attachment named with today's date.
func (h *TranscriptionHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+files.ExportFileName(time.Now())+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(req.Text))
}
