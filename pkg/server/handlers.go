package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/germanamz/llmgate/pkg/modeladapter"
	"github.com/germanamz/llmgate/pkg/processing"
	"github.com/germanamz/llmgate/pkg/storage"
	"github.com/tidwall/gjson"
)

const maxJSONBytes = 1 << 20

type promptResponse struct {
	ResponseText   string `json:"response_text"`
	ModelID        string `json:"model_id"`
	TokensUsed     *int   `json:"tokens_used"`
	ResponseTimeMS int64  `json:"response_time_ms"`
	Timestamp      string `json:"timestamp"`
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var body modeladapter.PromptInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "request body must be a JSON object: "+err.Error())
		return
	}

	req, err := body.Request()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	kind := modeladapter.KindFor(req.ModelID)

	res, err := s.prompter.Invoke(r.Context(), req)
	if err != nil {
		// Every adapter failure, unsupported model included, is a server error here.
		s.fail(w, r, http.StatusInternalServerError, "Error processing prompt: ", err,
			"provider", kind.String(), "model_id", req.ModelID)
		return
	}

	s.log.DebugContext(r.Context(), "prompt completed",
		"provider", kind.String(),
		"model_id", res.ModelID,
		"elapsed", res.Elapsed,
		"request_id", RequestID(r.Context()),
	)

	writeJSON(w, http.StatusOK, promptResponse{
		ResponseText:   res.Text,
		ModelID:        res.ModelID,
		TokensUsed:     res.Tokens,
		ResponseTimeMS: res.Elapsed.Milliseconds(),
		Timestamp:      s.timestamp(),
	})
}

type uploadResponse struct {
	Success bool `json:"success"`
	storage.UploadResult
	Message string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d byte upload limit", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "file is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".csv") {
		writeError(w, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "Error uploading file: ", err)
		return
	}

	res, err := s.files.Upload(r.Context(), content, header.Filename, "text/csv")
	if err != nil {
		s.fail(w, r, StatusFor(err), "Error uploading file: ", err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:      true,
		UploadResult: res,
		Message:      "File uploaded successfully to S3",
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		s.fail(w, r, StatusFor(err), "Error listing files: ", err)
		return
	}
	if files == nil {
		files = []storage.FileInfo{}
	}

	writeJSON(w, http.StatusOK, files)
}

type presignResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

func (s *Server) handlePresign(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	ttl := storage.DefaultPresignTTL
	if raw := q.Get("expires"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || secs <= 0 {
			writeError(w, http.StatusBadRequest, "expires must be a positive number of seconds")
			return
		}
		ttl = time.Duration(secs) * time.Second
	}

	url, err := s.files.Presign(r.Context(), key, ttl)
	if err != nil {
		s.fail(w, r, StatusFor(err), "Error generating presigned URL: ", err)
		return
	}

	writeJSON(w, http.StatusOK, presignResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: int64(ttl / time.Second),
	})
}

type processResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	if err != nil || !gjson.ValidBytes(raw) {
		writeError(w, http.StatusUnprocessableEntity, "request body must be a JSON object")
		return
	}

	body := gjson.GetBytes(raw, "body")
	if !body.IsObject() {
		writeError(w, http.StatusUnprocessableEntity, "body is required")
		return
	}

	req, err := processing.ParseRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := s.processor.Process(r.Context(), req)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "Error processing CSV: ", err)
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Success: true,
		Data:    data,
		Message: "CSV file processed successfully",
	})
}

// fail logs err with attrs and writes prefix+message with the given status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, prefix string, err error, attrs ...any) {
	args := append([]any{
		"path", r.URL.Path,
		"kind", apperr.KindOf(err).String(),
		"status", status,
		"request_id", RequestID(r.Context()),
		logging.Error(err),
	}, attrs...)
	s.log.ErrorContext(r.Context(), "request failed", args...)
	writeError(w, status, prefix+err.Error())
}
