package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/certiverify/api/internal/api/middleware"
	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/service"
)

const (
	fileField      = "pdf"
	maxUploadBytes = 10 << 20
)

type CertificateHandler struct {
	certService *service.CertificateService
}

func NewCertificateHandler(certService *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

type IssueRequest struct {
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Program     string `json:"program"`
	IssueDate   string `json:"issueDate"`
}

type VerifyRequest struct {
	Hash string `json:"hash"`
}

type ListResponse struct {
	OK   bool                 `json:"ok"`
	Data []domain.Certificate `json:"data"`
}

type IssueResponse struct {
	OK     bool                `json:"ok"`
	Record *domain.Certificate `json:"record"`
}

type VerifyResponse struct {
	OK     bool                  `json:"ok"`
	Result *service.VerifyResult `json:"result"`
}

type StatsResponse struct {
	OK    bool          `json:"ok"`
	Stats *domain.Stats `json:"stats"`
}

func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	certs, err := h.certService.List(r.Context(), identity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{OK: true, Data: certs})
}

func (h *CertificateHandler) Issue(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	input, fileBytes := readIssueRequest(r)

	record, err := h.certService.Issue(r.Context(), identity, input, fileBytes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, IssueResponse{OK: true, Record: record})
}

func (h *CertificateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	hash, fileBytes := readVerifyRequest(r)

	result, err := h.certService.Verify(r.Context(), hash, fileBytes)
	if err != nil {
		if errors.Is(err, domain.ErrHashRequired) {
			writeError(w, http.StatusUnprocessableEntity, "hash or pdf required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{OK: true, Result: result})
}

func (h *CertificateHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req VerifyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.certService.Revoke(r.Context(), identity, req.Hash); err != nil {
		switch {
		case errors.Is(err, domain.ErrHashRequired):
			writeError(w, http.StatusUnprocessableEntity, "hash required")
		case errors.Is(err, domain.ErrCertificateNotFound):
			writeError(w, http.StatusNotFound, "Certificate not found or not owned by issuer")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *CertificateHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.certService.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{OK: true, Stats: stats})
}

// readIssueRequest pulls certificate fields and the optional upload out of a
// multipart form, a url-encoded form, or a JSON body.
func readIssueRequest(r *http.Request) (service.IssueInput, []byte) {
	switch contentType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return service.IssueInput{}, nil
		}
		return issueInputFromForm(r), readUpload(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return service.IssueInput{}, nil
		}
		return issueInputFromForm(r), nil
	default:
		var req IssueRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		return service.IssueInput{
			StudentName: req.StudentName,
			StudentID:   req.StudentID,
			Program:     req.Program,
			IssueDate:   req.IssueDate,
		}, nil
	}
}

// readVerifyRequest extracts the hash or the uploaded file to hash.
func readVerifyRequest(r *http.Request) (string, []byte) {
	switch contentType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", nil
		}
		if data := readUpload(r); data != nil {
			return "", data
		}
		return r.FormValue("hash"), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", nil
		}
		return r.FormValue("hash"), nil
	default:
		var req VerifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		return req.Hash, nil
	}
}

func issueInputFromForm(r *http.Request) service.IssueInput {
	return service.IssueInput{
		StudentName: r.FormValue("studentName"),
		StudentID:   r.FormValue("studentId"),
		Program:     r.FormValue("program"),
		IssueDate:   r.FormValue("issueDate"),
	}
}

func readUpload(r *http.Request) []byte {
	file, _, err := r.FormFile(fileField)
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil
	}
	return data
}

func contentType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}
