// internal/domain/weather/service.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/agrimart-client/internal/config"
)

// Report is what the home-screen weather widget renders
type Report struct {
	Location     string    `json:"location"`
	Summary      string    `json:"summary"`
	TemperatureC float64   `json:"temperature_c"`
	Fallback     bool      `json:"fallback"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Service fetches current weather with a hard deadline. The widget is
// decoration: any failure or timeout yields the configured default
// report instead of an error.
type Service struct {
	cfg        *config.Config
	httpClient *http.Client
	log        *logrus.Logger
}

// NewService creates a weather service
func NewService(cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{},
		log:        log,
	}
}

type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Current returns the weather at the given coordinates, or the default
// report when the fetch fails or exceeds its deadline.
func (s *Service) Current(ctx context.Context, latitude, longitude float64) Report {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Weather.RequestTimeout)
	defer cancel()

	report, err := s.fetch(ctx, latitude, longitude)
	if err != nil {
		s.log.WithError(err).Warn("Weather fetch failed, using default report")
		return s.defaultReport()
	}
	return report
}

func (s *Service) fetch(ctx context.Context, latitude, longitude float64) (Report, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", longitude))
	query.Set("current", "temperature_2m,weather_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.cfg.Weather.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return Report{
		Location:     s.cfg.Weather.DefaultLocation,
		Summary:      summaryForCode(payload.Current.WeatherCode),
		TemperatureC: payload.Current.Temperature,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

func (s *Service) defaultReport() Report {
	return Report{
		Location:     s.cfg.Weather.DefaultLocation,
		Summary:      s.cfg.Weather.DefaultSummary,
		TemperatureC: s.cfg.Weather.DefaultTempC,
		Fallback:     true,
		FetchedAt:    time.Now().UTC(),
	}
}

// summaryForCode maps WMO weather codes to display text
func summaryForCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 3:
		return "Partly cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Cloudy"
	}
}
