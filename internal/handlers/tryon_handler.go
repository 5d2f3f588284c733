package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glossbook/salon-booking/internal/config"
	"github.com/glossbook/salon-booking/internal/tryon"
)

// TryOnHandler accepts a customer photo plus a style reference and runs
// them through the try-on provider. The request blocks until the remote
// app produces an image or the pipeline times out.
type TryOnHandler struct {
	provider tryon.Provider
	config   *config.Config
}

func NewTryOnHandler(provider tryon.Provider, cfg *config.Config) *TryOnHandler {
	return &TryOnHandler{provider: provider, config: cfg}
}

func (h *TryOnHandler) Process(c *gin.Context) {
	target, err := c.FormFile("target")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both target and source images are required"})
		return
	}
	source, err := c.FormFile("source")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both target and source images are required"})
		return
	}

	if err := os.MkdirAll(h.config.UploadsDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded images"})
		return
	}

	targetPath := filepath.Join(h.config.UploadsDir, uniqueName("target", target.Filename))
	sourcePath := filepath.Join(h.config.UploadsDir, uniqueName("source", source.Filename))

	if err := c.SaveUploadedFile(target, targetPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded images"})
		return
	}
	if err := c.SaveUploadedFile(source, sourcePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded images"})
		return
	}

	// Uploads are scratch inputs for this one job.
	defer os.Remove(targetPath)
	defer os.Remove(sourcePath)

	result, err := h.provider.Run(c.Request.Context(), tryon.Job{
		RemoteURL:  h.config.TryOnURL,
		TargetPath: targetPath,
		SourcePath: sourcePath,
		OutputDir:  h.config.ResultsDir,
		Params: tryon.Params{
			Seed:            formInt(c, "seed"),
			SampleStep:      formInt(c, "sample_step"),
			T:               formInt(c, "t"),
			ErodeKernelSize: formInt(c, "erode_kernel_size"),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "AI processing failed",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"outputUrl":  result.OutputURL,
		"outputPath": result.OutputPath,
	})
}

// formInt reads an optional numeric form field; absent or malformed
// values become zero and the provider applies its defaults.
func formInt(c *gin.Context, field string) int {
	n, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		return 0
	}
	return n
}

// uniqueName keeps the original extension so the remote app sees a
// plausible image filename.
func uniqueName(prefix, original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext)
}
