// Package registry хранит список геозон: встроенный список плюс строки из внешней таблицы.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/sirupsen/logrus"
)

// Source - внешний построчный источник геозон
type Source interface {
	ReadRows(ctx context.Context, rangeName string) ([][]string, error)
}

// Options - настройки реестра
type Options struct {
	// Range - диапазон таблицы, например "parroquia!A:D"
	Range string
	// DefaultRadius - радиус для геозон из таблицы (в таблице нет колонки радиуса)
	DefaultRadius float64
}

// Registry безопасен для конкурентного чтения из нескольких сессий
type Registry struct {
	static []models.Site
	source Source
	opts   Options
	logger *logrus.Logger

	mu          sync.RWMutex
	sites       []models.Site
	refreshedAt time.Time
}

// New создает реестр. source может быть nil - тогда используется только встроенный список.
func New(static []models.Site, source Source, opts Options, logger *logrus.Logger) *Registry {
	if opts.DefaultRadius <= 0 {
		opts.DefaultRadius = 100
	}
	sites := make([]models.Site, len(static))
	copy(sites, static)
	return &Registry{
		static: sites,
		source: source,
		opts:   opts,
		logger: logger,
		sites:  sites,
	}
}

// ListSites возвращает копию текущего списка геозон
func (r *Registry) ListSites() []models.Site {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Site, len(r.sites))
	copy(out, r.sites)
	return out
}

// RefreshedAt - время последнего успешного обновления из источника
func (r *Registry) RefreshedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshedAt
}

// Refresh перечитывает внешний источник и объединяет его со встроенным списком.
// При ошибке источника текущий список сохраняется, ошибка возвращается для логов и метрик.
func (r *Registry) Refresh(ctx context.Context) error {
	if r.source == nil {
		return nil
	}
	log := r.logger.WithFields(logrus.Fields{
		"component": "registry",
		"method":    "Refresh",
		"range":     r.opts.Range,
	})

	rows, err := r.source.ReadRows(ctx, r.opts.Range)
	if err != nil {
		log.WithError(err).Warn("Failed to read registry source, keeping current sites")
		return &errs.DataSourceError{Source: r.opts.Range, Err: err}
	}

	parsed, dropped := ParseRows(rows, r.opts.DefaultRadius)
	for _, d := range dropped {
		log.WithField("row", d.Row).WithField("reason", d.Reason).Debug("Dropping registry row")
	}

	merged := merge(r.static, parsed)

	r.mu.Lock()
	r.sites = merged
	r.refreshedAt = time.Now()
	r.mu.Unlock()

	log.WithFields(logrus.Fields{
		"rows":    len(rows),
		"parsed":  len(parsed),
		"dropped": len(dropped),
		"total":   len(merged),
	}).Info("Registry refreshed")
	return nil
}

// merge: строки таблицы с существующим ID заменяют геозону на ее месте (радиус берется
// из встроенного списка), новые добавляются в конец в порядке строк
func merge(static, extra []models.Site) []models.Site {
	out := make([]models.Site, len(static), len(static)+len(extra))
	copy(out, static)
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.ID] = i
	}
	for _, s := range extra {
		if i, ok := index[s.ID]; ok {
			s.RadiusMeters = out[i].RadiusMeters
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	return out
}

// StartRefresher периодически обновляет реестр до отмены контекста
func (r *Registry) StartRefresher(ctx context.Context, interval time.Duration, onRefresh func(error)) {
	if r.source == nil || interval <= 0 {
		return
	}
	r.logger.WithField("interval", interval.String()).Info("Starting registry refresher...")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stopping registry refresher.")
				return
			case <-ticker.C:
				err := r.Refresh(ctx)
				if onRefresh != nil {
					onRefresh(err)
				}
			}
		}
	}()
}
