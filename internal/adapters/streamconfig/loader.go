// Package streamconfig loads per-camera stream settings from YAML.
package streamconfig

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// FileName is the stream config file inside each camera directory.
const FileName = "rtsp.yaml"

// StreamConfig is the content of rtsp.yaml. Either URL is set, or the URL
// is assembled from the remaining fields.
type StreamConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`
}

// StreamURL returns the connection URL described by c.
func (c StreamConfig) StreamURL() (string, error) {
	if c.URL != "" {
		return strings.TrimSpace(c.URL), nil
	}
	if c.Host == "" {
		return "", errors.New("neither url nor host is set")
	}

	u := url.URL{Scheme: "rtsp", Host: c.Host}
	if c.Port > 0 {
		u.Host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.Username, c.Password)
		} else {
			u.User = url.User(c.Username)
		}
	}
	if c.Path != "" {
		u.Path = "/" + strings.TrimPrefix(c.Path, "/")
	}
	return u.String(), nil
}

// Loader implements secondary.StreamConfigLoader over the camera
// directories of the locations tree.
type Loader struct{}

// NewLoader creates a stream config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadStreamURL reads <locationPath>/<cameraID>/rtsp.yaml.
// All failures are returned as *models.ConfigError.
func (l *Loader) LoadStreamURL(ctx context.Context, locationPath, cameraID string) (string, error) {
	path := filepath.Join(locationPath, cameraID, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		reason := "cannot read " + path
		if errors.Is(err, fs.ErrNotExist) {
			reason = "no stream config at " + path
		}
		return "", &models.ConfigError{CameraID: cameraID, Reason: reason, Err: err}
	}

	var cfg StreamConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", &models.ConfigError{CameraID: cameraID, Reason: "invalid " + FileName, Err: err}
	}

	streamURL, err := cfg.StreamURL()
	if err != nil {
		return "", &models.ConfigError{CameraID: cameraID, Reason: "incomplete " + FileName, Err: err}
	}
	return streamURL, nil
}

// RedactURL hides the password of a stream URL for logs and the ledger.
// Unparseable input is returned with everything after the scheme elided.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if scheme, _, ok := strings.Cut(raw, "://"); ok {
			return fmt.Sprintf("%s://[redacted]", scheme)
		}
		return "[redacted]"
	}
	return u.Redacted()
}

// Ensure Loader implements the interface
var _ secondary.StreamConfigLoader = (*Loader)(nil)
