package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storelens/storelens/internal/analytics"
	"github.com/storelens/storelens/internal/superstore"
)

const dateLayout = "2006-01-02"

// criteriaFromQuery reads the filter selection off the query string. Missing
// categorical params mean "All"; missing dates mean the full available range.
func criteriaFromQuery(c *gin.Context) (analytics.Criteria, error) {
	criteria := analytics.Criteria{
		Region:      c.DefaultQuery("region", analytics.All),
		State:       c.DefaultQuery("state", analytics.All),
		Category:    c.DefaultQuery("category", analytics.All),
		SubCategory: c.DefaultQuery("subCategory", analytics.All),
		Segment:     c.DefaultQuery("segment", analytics.All),
	}

	var err error
	if criteria.DateFrom, err = parseDateParam(c.Query("from"), "from"); err != nil {
		return analytics.Criteria{}, err
	}
	if criteria.DateTo, err = parseDateParam(c.Query("to"), "to"); err != nil {
		return analytics.Criteria{}, err
	}
	return criteria, nil
}

// viewOptionsFromQuery merges query params with the saved preferences.
func (s *Service) viewOptionsFromQuery(c *gin.Context, cache *CachedData) (analytics.ViewOptions, error) {
	prefs := s.settings.Preferences

	metricName := c.DefaultQuery("metric", prefs.DefaultMetric)
	metric, err := superstore.ParseMetric(metricName)
	if err != nil {
		return analytics.ViewOptions{}, err
	}

	opts := analytics.ViewOptions{
		Metric:          metric,
		TopN:            prefs.TopProducts,
		MovingAverage:   prefs.MovingAverage,
		MovingAvgWindow: prefs.MovingAvgWindow,
		StateCodes:      cache.StateCodes,
	}

	if raw := c.Query("movingAverage"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return analytics.ViewOptions{}, fmt.Errorf("invalid movingAverage value %q", raw)
		}
		opts.MovingAverage = enabled
	}
	if raw := c.Query("topN"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return analytics.ViewOptions{}, fmt.Errorf("invalid topN value %q", raw)
		}
		opts.TopN = n
	}
	return opts, nil
}

// parseDateParam parses a YYYY-MM-DD query param; empty stays the zero time.
func parseDateParam(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
	}
	return t.UTC(), nil
}
