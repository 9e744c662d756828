// Package qrcode renders channel share codes as PNG images.
package qrcode

import (
	"net/url"
	"strings"

	"vidtube/config"
	"vidtube/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:5173"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates the service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg == nil || cfg.QRCode == nil {
		return newQRCodeService(defaultSize, "", defaultBaseURL)
	}

	return newQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	if size <= 0 {
		size = defaultSize
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(errorCorrectionLevel),
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// parseRecoveryLevel accepts the level letter or its name.
func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToLower(level) {
	case "l", "low":
		return qrcode.Low
	case "q", "high":
		return qrcode.High
	case "h", "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

func (s *qrcodeService) ChannelURL(username string) string {
	return s.baseURL + "/c/" + url.PathEscape(username)
}

// GenerateChannelQR encodes the channel URL as a PNG.
func (s *qrcodeService) GenerateChannelQR(username string) ([]byte, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	qrCode, err := qrcode.New(s.ChannelURL(username), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
