//go:build !js && !wasm

package main

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/echofp/echofp/pkg/audioio"
	"github.com/echofp/echofp/pkg/echofp"
)

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) handleListRecordings(c *gin.Context) {
	result, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// addRecordingRequest is a multipart form: an "audio" file field plus
// the recording id.
type addRecordingRequest struct {
	RID string `form:"rid" binding:"required"`
}

func (s *server) handleAddRecording(c *gin.Context) {
	var req addRecordingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"audio\" file field"})
		return
	}

	samples, sr, cleanup, err := s.decodeUpload(c, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not decode audio: " + err.Error()})
		return
	}
	defer cleanup()

	result, err := s.svc.Add(c.Request.Context(), req.RID, samples, sr)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *server) handleDeleteRecording(c *gin.Context) {
	rid := c.Param("rid")
	if err := s.svc.DeleteRecording(c.Request.Context(), rid); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) handleRecognize(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"audio\" file field"})
		return
	}

	samples, sr, cleanup, err := s.decodeUpload(c, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not decode audio: " + err.Error()})
		return
	}
	defer cleanup()

	result, err := s.svc.Recognize(c.Request.Context(), samples, sr)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// recognizeHashesRequest lets a client that already computed its own
// fingerprints (the WASM build) submit them directly, skipping
// server-side decode.
type recognizeHashesRequest struct {
	// Hashes maps a packed fingerprint hash (decimal string, since
	// JSON numbers cannot safely hold a full uint64) to its anchor
	// frame.
	Hashes map[string]int `json:"hashes" binding:"required"`
}

func (s *server) handleRecognizeHashes(c *gin.Context) {
	var req recognizeHashesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	anchors := make(map[uint64]int, len(req.Hashes))
	for k, v := range req.Hashes {
		h, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		anchors[h] = v
	}

	result, err := s.svc.RecognizeHashes(c.Request.Context(), anchors)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// decodeUpload saves an uploaded file to a temp path, decodes it to
// mono float64 samples, and returns a cleanup func that removes the
// temp file regardless of outcome.
func (s *server) decodeUpload(c *gin.Context, fh *multipart.FileHeader) (samples []float64, sr int, cleanup func(), err error) {
	tmpDir := os.TempDir()
	tmpPath := filepath.Join(tmpDir, fmt.Sprintf("echofp-upload-%d-%s", os.Getpid(), filepath.Base(fh.Filename)))
	cleanup = func() { os.Remove(tmpPath) }

	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		return nil, 0, cleanup, err
	}
	samples, sr, err = audioio.LoadSamples(c.Request.Context(), tmpPath, tmpDir, 44100)
	return samples, sr, cleanup, err
}

func (s *server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch echofp.KindOf(err) {
	case echofp.KindAlreadyExists:
		status = http.StatusConflict
	case echofp.KindNotFound:
		status = http.StatusNotFound
	case echofp.KindEmptyInput, echofp.KindDecode, echofp.KindConfig:
		status = http.StatusBadRequest
	}
	s.log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error()})
}
