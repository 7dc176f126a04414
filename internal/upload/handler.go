package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/k1r/imgstore/internal/apperror"
	"github.com/k1r/imgstore/internal/response"
)

// formOverhead is allowed on top of the file size for multipart framing and fields.
const formOverhead = 1 << 20

// formMemory is the in-memory budget for multipart parts; larger file parts
// are spooled to a temp file so the form holds no copy of the upload.
const formMemory = 32 << 10

const maxDeleteBody = 1 << 16

// DeleteRequest is the body of POST /delete.
type DeleteRequest struct {
	StoragePath string `json:"storage_path" example:"img/2024/05/65a8e27d8879283831b664bd8b7f0ad4.jpg"`
}

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"file deleted successfully"`
}

// Handler holds HTTP handlers for the upload endpoints.
type Handler struct {
	svc *Service
	log zerolog.Logger
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Upload godoc
//
//	@Summary		Upload an image
//	@Description	Stores an image under img/<year>/<month>/<md5>.<ext>, optionally re-encoding it first.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"png, jpg, jpeg, gif or webp"
//	@Param			compress	formData	string	false	"\"true\" to re-encode before storing"
//	@Param			quality		formData	int		false	"re-encoding quality 0-100 (default 80)"
//	@Success		200	{object}	Result
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.writeFormError(w, r, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, MsgNoFile)
		return
	}
	defer file.Close()

	quality, err := ParseQuality(r.FormValue("quality"))
	if err != nil {
		response.WriteError(w, r, err, h.log)
		return
	}

	data := make([]byte, header.Size)
	if _, err := io.ReadFull(file, data); err != nil {
		h.writeFormError(w, r, err)
		return
	}

	res, err := h.svc.Upload(r.Context(), Request{
		Data:     data,
		Filename: header.Filename,
		Compress: ParseCompress(r.FormValue("compress")),
		Quality:  quality,
	})
	if err != nil {
		response.WriteError(w, r, err, h.log)
		return
	}

	response.OK(w, res)
}

// Delete godoc
//
//	@Summary		Delete an image
//	@Description	Removes a stored object by key. Deleting a missing key succeeds.
//	@Tags			images
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DeleteRequest	true	"Key returned by upload"
//	@Success		200		{object}	DeleteResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/delete [post]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDeleteBody)).Decode(&req); err != nil {
		response.BadRequest(w, MsgMissingPath)
		return
	}

	if err := h.svc.Delete(r.Context(), req.StoragePath); err != nil {
		response.WriteError(w, r, err, h.log)
		return
	}

	response.OK(w, DeleteResponse{Success: true, Message: MsgDeleted})
}

// parseForm caps the request body and parses the multipart form.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.svc.MaxBytes()+formOverhead)
	return r.ParseMultipartForm(formMemory)
}

// writeFormError maps multipart parsing failures: an oversized body is a
// size error, anything else means no usable file part was sent.
func (h *Handler) writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.WriteError(w, r, apperror.Validation(h.svc.tooLargeMessage()), h.log)
		return
	}
	response.BadRequest(w, MsgNoFile)
}
