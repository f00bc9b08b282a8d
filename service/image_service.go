package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"beancatalog/models"
	"beancatalog/utils"
)

const (
	imageQuality      = 75
	maxImageBytes     = 8 << 20
	maxImagePixels    = 40_000_000
	maxImageRedirects = 10
)

// ErrBeanNotFound is returned for an image request of an unknown bean
var ErrBeanNotFound = errors.New("bean not found")

// Image is an encoded image ready to be served
type Image struct {
	Data        []byte
	ContentType string
	State       models.ImageState
}

// ImageService proxies bean images: it fetches them from an allowed host,
// resizes them and keeps the result on disk. Images that cannot be loaded are
// replaced by a swatch in the bean's background colour.
type ImageService struct {
	source       CatalogSource
	client       *http.Client
	cacheDir     string
	size         int
	allowedHosts map[string]bool
	group        singleflight.Group
	mu           sync.RWMutex
	states       map[int]models.ImageState
	log          zerolog.Logger
}

// Ensure ImageService implements ImageStateReader
var _ ImageStateReader = (*ImageService)(nil)

// NewImageService creates a new ImageService. A nil client gets a default client with the given timeout.
// The client is copied so that every redirect hop is checked against the allowed hosts.
func NewImageService(source CatalogSource, client *http.Client, timeout time.Duration, cacheDir string, size int, allowedHosts []string, log zerolog.Logger) *ImageService {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	hosts := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		hosts[strings.ToLower(strings.TrimSpace(host))] = true
	}
	s := &ImageService{
		source:       source,
		cacheDir:     cacheDir,
		size:         size,
		allowedHosts: hosts,
		states:       make(map[int]models.ImageState),
		log:          log.With().Str("component", "image_service").Logger(),
	}

	checked := *client
	checked.CheckRedirect = s.checkRedirect
	s.client = &checked
	return s
}

func (s *ImageService) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxImageRedirects {
		return fmt.Errorf("stopped after %d redirects", maxImageRedirects)
	}
	return s.allowed(req.URL.String())
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (s *ImageService) EnsureCacheDir() error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// State returns the load state of a bean image. Images not requested yet report Loading.
func (s *ImageService) State(beanID int) models.ImageState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.states[beanID]; ok {
		return state
	}
	return models.ImageLoading
}

func (s *ImageService) setState(beanID int, state models.ImageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[beanID] = state
}

// BeanImage returns the resized image of a bean, or its colour swatch when the image cannot be loaded
func (s *ImageService) BeanImage(ctx context.Context, beanID int) (*Image, error) {
	catalog, err := s.source.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var bean *models.Bean
	for i := range catalog.Items {
		if catalog.Items[i].BeanID == beanID {
			bean = &catalog.Items[i]
			break
		}
	}
	if bean == nil {
		return nil, ErrBeanNotFound
	}

	if s.State(beanID) == models.ImageFailed {
		return s.swatch(bean)
	}

	cachePath := s.cachePath(beanID)
	if data, err := os.ReadFile(cachePath); err == nil {
		s.setState(beanID, models.ImageLoaded)
		return &Image{Data: data, ContentType: "image/jpeg", State: models.ImageLoaded}, nil
	}

	v, err, _ := s.group.Do(strconv.Itoa(beanID), func() (any, error) {
		s.setState(beanID, models.ImageLoading)
		data, err := s.load(context.WithoutCancel(ctx), bean.ImageURL)
		if err != nil {
			return nil, err
		}
		if err := s.saveToCache(cachePath, data); err != nil {
			s.log.Warn().Err(err).Int("beanId", beanID).Msg("⚠️  Image cache write failed")
		}
		s.setState(beanID, models.ImageLoaded)
		return data, nil
	})
	if err != nil {
		s.log.Warn().Err(err).Int("beanId", beanID).Str("url", bean.ImageURL).Msg("❌ Image load failed, serving swatch")
		s.setState(beanID, models.ImageFailed)
		return s.swatch(bean)
	}
	return &Image{Data: v.([]byte), ContentType: "image/jpeg", State: models.ImageLoaded}, nil
}

// cachePath returns the cache file path for a bean image at the configured size
func (s *ImageService) cachePath(beanID int) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("bean_%d_%d.jpg", beanID, s.size))
}

func (s *ImageService) saveToCache(cachePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	s.log.Debug().Str("path", cachePath).Msg("✓ Image cached")
	return nil
}

func (s *ImageService) allowed(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}
	if !s.allowedHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("image host %q is not allowed", u.Hostname())
	}
	return nil
}

func (s *ImageService) load(ctx context.Context, rawURL string) ([]byte, error) {
	if err := s.allowed(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image request returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return OptimizeImage(raw, s.size)
}

// swatch renders a square PNG filled with the bean's background colour
func (s *ImageService) swatch(bean *models.Bean) (*Image, error) {
	img := imaging.New(s.size, s.size, utils.ColorOrFallback(bean.BackgroundColor))
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode swatch: %w", err)
	}
	return &Image{Data: buf.Bytes(), ContentType: "image/png", State: models.ImageFailed}, nil
}

// OptimizeImage decodes raw image bytes, fits them inside a maxDim square and re-encodes as JPEG.
// Images already smaller than maxDim keep their size.
func OptimizeImage(raw []byte, maxDim int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image dimensions %dx%d out of bounds", cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
