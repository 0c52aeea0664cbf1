package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/resume"
)

// siteFileCache applies to files served from the root of the build.
const siteFileCache = "public, max-age=3600"

// health reports liveness with the process uptime.
func (s *Server) health(c *gin.Context) {
	noCache(c)
	c.Header("Connection", "close")
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) status() gin.H {
	now := s.now()
	return gin.H{
		"status":    "OK",
		"timestamp": now.UnixMilli(),
		"uptime":    now.Sub(s.started).Seconds(),
	}
}

// root serves the site, or health JSON to load balancer probes.
func (s *Server) root(c *gin.Context) {
	if isHealthProbe(c) {
		body := s.status()
		if s.cfg.Name != "" {
			body["message"] = s.cfg.Name + " is running"
		}
		noCache(c)
		c.Header("Connection", "close")
		c.JSON(http.StatusOK, body)
		return
	}
	s.serveIndex(c)
}

// isHealthProbe recognises curl, user agents mentioning health, a health
// query parameter and the X-Health-Check header.
func isHealthProbe(c *gin.Context) bool {
	ua := strings.ToLower(c.GetHeader("User-Agent"))
	if strings.Contains(ua, "curl") || strings.Contains(ua, "health") {
		return true
	}
	if c.Request.URL.Query().Has("health") {
		return true
	}
	return c.GetHeader("X-Health-Check") != ""
}

// cv renders the résumé for ?lang=, or for the Accept-Language header when
// the query is absent. Identical concurrent requests share one rendering.
func (s *Server) cv(c *gin.Context) {
	cat := s.cfg.Catalog
	lang := c.Query("lang")
	if lang == "" {
		lang = cat.MatchAcceptLanguage(c.GetHeader("Accept-Language"))
	} else {
		normalized, err := cat.NormalizeLanguage(lang)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang = normalized
	}

	// Shared renderings must outlive the request that started them.
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, shared := s.flight.Do(lang, func() (any, error) {
		return s.cfg.Generator.Generate(ctx, lang)
	})
	if err != nil {
		s.log.Error("resume generation failed", zap.String("language", lang), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": resume.ErrorMessage(cat, lang)})
		return
	}
	res := v.(*cvpdf.Result)

	s.log.Debug("resume served",
		zap.String("language", lang),
		zap.String("filename", res.Filename),
		zap.Int("bytes", len(res.Data)),
		zap.Bool("shared", shared),
	)
	noCache(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

// fallback serves files from the build root and the app shell for every
// other GET, so client-side routes survive a reload.
func (s *Server) fallback(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if name, ok := s.siteFile(c.Request.URL.Path); ok {
		c.Header("Cache-Control", siteFileCache)
		c.File(name)
		return
	}
	s.serveIndex(c)
}

// siteFile maps a URL path to a regular file in the build directory.
// Dotfiles and index.html are never served this way.
func (s *Server) siteFile(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" || clean == "/index.html" {
		return "", false
	}
	for _, seg := range strings.Split(clean, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	name := filepath.Join(s.cfg.DistDir, filepath.FromSlash(clean))
	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

// serveIndex sends the app shell, uncached.
func (s *Server) serveIndex(c *gin.Context) {
	index := s.indexPath()
	if _, err := os.Stat(index); err != nil {
		s.log.Error("site build not found", zap.String("index", index), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Application not built",
			"message": "index.html is missing from " + s.cfg.DistDir,
		})
		return
	}
	noCache(c)
	c.File(index)
}
