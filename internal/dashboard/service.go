package dashboard

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/internal/analytics"
	"github.com/storelens/storelens/internal/config"
	"github.com/storelens/storelens/internal/geo"
	"github.com/storelens/storelens/internal/superstore"
)

// Service handles dashboard operations
type Service struct {
	loader          *superstore.Loader
	geo             *geo.Client
	settings        *config.Settings
	cacheMu         sync.RWMutex
	cache           *CachedData
	cacheRefreshing bool
}

// CachedData holds the loaded dataset and reference table for quick responses
type CachedData struct {
	Dataset     *superstore.Dataset
	StateCodes  map[string]string
	LastRefresh time.Time
	Stale       bool
}

// NewService creates a new dashboard service. Call RebuildCache before
// serving; a dataset that fails to load is fatal to startup.
func NewService(loader *superstore.Loader, geoClient *geo.Client, settings *config.Settings) *Service {
	return &Service{
		loader:   loader,
		geo:      geoClient,
		settings: settings,
	}
}

// RebuildCache reloads the workbook and the state-code reference table in a
// single pass. A reference-table failure is recoverable: the map view just
// loses its codes.
func (s *Service) RebuildCache() error {
	s.cacheMu.Lock()
	if s.cacheRefreshing {
		s.cacheMu.Unlock()
		return errors.New("refresh already in progress")
	}
	s.cacheRefreshing = true
	s.cacheMu.Unlock()

	defer func() {
		s.cacheMu.Lock()
		s.cacheRefreshing = false
		s.cacheMu.Unlock()
	}()

	dataset, err := s.loader.Load()
	if err != nil {
		return err
	}

	stateCodes, err := s.geo.StateCodes(context.Background())
	if err != nil {
		log.Printf("[dashboard] State code fetch failed, map view degrades: %v", err)
		stateCodes = map[string]string{}
	}

	newCache := &CachedData{
		Dataset:     dataset,
		StateCodes:  stateCodes,
		LastRefresh: time.Now(),
		Stale:       false,
	}

	s.cacheMu.Lock()
	s.cache = newCache
	s.cacheMu.Unlock()

	log.Printf("[dashboard] Cache rebuilt: %d order rows, %d state codes",
		len(dataset.Orders), len(stateCodes))
	return nil
}

// getCache safely returns the cached data
func (s *Service) getCache() (*CachedData, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	if s.cache == nil {
		return nil, false
	}
	return s.cache, true
}

// HandleView recomputes the full dashboard view model for the requested
// filters and metric.
func (s *Service) HandleView(c *gin.Context) {
	cache, ok := s.getCache()
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"message": "cache empty; refresh required", "needsRefresh": true})
		return
	}

	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := s.viewOptionsFromQuery(c, cache)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics.ComputeView(cache.Dataset, criteria, opts))
}

// HandleOptions returns the cascaded filter option lists plus the metric
// choices and the dataset's date bounds.
func (s *Service) HandleOptions(c *gin.Context) {
	cache, ok := s.getCache()
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"message": "cache empty; refresh required", "needsRefresh": true})
		return
	}

	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filters": analytics.FilterOptions(cache.Dataset, criteria),
		"metrics": superstore.Metrics(),
		"minDate": cache.Dataset.MinDate.Format(dateLayout),
		"maxDate": cache.Dataset.MaxDate.Format(dateLayout),
	})
}

// HandleGetSettings returns the current application settings
func (s *Service) HandleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings)
}

// HandleUpdateSettings updates application settings and saves to disk
func (s *Service) HandleUpdateSettings(c *gin.Context) {
	var updatedSettings config.Settings
	if err := c.BindJSON(&updatedSettings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings format"})
		return
	}

	if updatedSettings.Preferences.DefaultMetric != "" {
		if _, err := superstore.ParseMetric(updatedSettings.Preferences.DefaultMetric); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.settings = &updatedSettings

	// A changed workbook path only takes effect on the next refresh
	s.cacheMu.Lock()
	if s.cache != nil {
		s.cache.Stale = true
	}
	s.cacheMu.Unlock()

	if err := config.SaveSettings(&updatedSettings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings updated successfully"})
}

// HandleCacheStatus returns cache metadata
func (s *Service) HandleCacheStatus(c *gin.Context) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	if s.cache == nil {
		c.JSON(http.StatusOK, gin.H{
			"hasCache":     false,
			"inProgress":   s.cacheRefreshing,
			"lastRefresh":  nil,
			"stale":        false,
			"needsRefresh": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasCache":    true,
		"inProgress":  s.cacheRefreshing,
		"lastRefresh": s.cache.LastRefresh,
		"stale":       s.cache.Stale,
		"orderRows":   len(s.cache.Dataset.Orders),
	})
}

// HandleCacheRefresh triggers a reload of the workbook and reference table
func (s *Service) HandleCacheRefresh(c *gin.Context) {
	if err := s.RebuildCache(); err != nil {
		if err.Error() == "refresh already in progress" {
			c.JSON(http.StatusAccepted, gin.H{"message": "refresh already in progress", "inProgress": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cache rebuilt", "lastRefresh": time.Now()})
}
