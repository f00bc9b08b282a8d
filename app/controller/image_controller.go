package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"beancatalog/service"
)

// ImageController serves proxied bean images
type ImageController struct {
	imageService *service.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(imageService *service.ImageService) *ImageController {
	return &ImageController{imageService: imageService}
}

// GetBeanImage handles GET /images/{beanId}
func (c *ImageController) GetBeanImage(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/images/"), "/")
	beanID, err := strconv.Atoi(idStr)
	if err != nil || beanID < 0 {
		http.Error(w, "Invalid bean ID", http.StatusBadRequest)
		return
	}

	img, err := c.imageService.BeanImage(r.Context(), beanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBeanNotFound):
			http.Error(w, "Bean not found", http.StatusNotFound)
		case errors.Is(err, service.ErrDataUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			log.Error().Err(err).Int("beanId", beanID).Msg("❌ GetBeanImage: Error loading image")
			http.Error(w, "Failed to load image", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Image-State", img.State.String())
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(img.Data); err != nil {
		log.Error().Err(err).Msg("❌ GetBeanImage: Error writing image response")
	}
}
