package container

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/config"
	"github.com/oksasatya/go-user-registration/internal/metrics"
	"github.com/oksasatya/go-user-registration/pkg/view"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg        *config.Config
	logger     *logrus.Logger
	views      view.Renderer
	appMetrics *metrics.Metrics
	gatherer   prometheus.Gatherer
)

func SetConfig(c *config.Config)        { cfg = c }
func GetConfig() *config.Config         { return cfg }
func SetLogger(l *logrus.Logger)        { logger = l }
func GetLogger() *logrus.Logger         { return logger }
func SetViews(v view.Renderer)          { views = v }
func GetViews() view.Renderer           { return views }
func SetMetrics(m *metrics.Metrics)     { appMetrics = m }
func GetMetrics() *metrics.Metrics      { return appMetrics }
func SetGatherer(g prometheus.Gatherer) { gatherer = g }
func GetGatherer() prometheus.Gatherer {
	if gatherer != nil {
		return gatherer
	}
	return prometheus.DefaultGatherer
}
