package tof

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/tofmon/internal/monitoring"
)

// Config is the task configuration, interpreted once at initialization
// from the host's flat string-keyed parameter map.
type Config struct {
	Selector Selector
	// UseFT0 enables the reference-detector coincidence fills. Off, the
	// candidate window is always empty and the coincidence counters stay
	// untouched for the whole run.
	UseFT0 bool
	// Sources is the requested track-source mask, already intersected
	// with AllowedSources.
	Sources SourceMask
}

// DefaultSources is the source mask used when the parameters carry no GID
// entry.
const defaultSourceList = "ITS-TPC"

// ParseConfig interprets the host parameter map. Recognized keys:
// minPtCut, etaCut, minNTPCClustersCut, minDCACut, minDCACutY, useFT0, GID.
// Unknown keys are ignored (the host shares one map across tasks). An
// unparsable value or an inconsistent source combination is a fatal
// configuration error: processing must not start.
func ParseConfig(params map[string]string) (Config, error) {
	cfg := Config{Selector: NewSelector()}

	var err error
	if v, ok := params["minPtCut"]; ok {
		monitoring.Logf("config: minPtCut (track selection) = %s", v)
		if cfg.Selector.MinPt, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("minPtCut: %w", err)
		}
	}
	if v, ok := params["etaCut"]; ok {
		monitoring.Logf("config: etaCut (track selection) = %s", v)
		if cfg.Selector.MaxEta, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("etaCut: %w", err)
		}
	}
	if v, ok := params["minNTPCClustersCut"]; ok {
		monitoring.Logf("config: minNTPCClustersCut (track selection) = %s", v)
		if cfg.Selector.MinClusters, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("minNTPCClustersCut: %w", err)
		}
	}
	if v, ok := params["minDCACut"]; ok {
		monitoring.Logf("config: minDCACut (track selection) = %s", v)
		if cfg.Selector.MaxDCA, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("minDCACut: %w", err)
		}
	}
	if v, ok := params["minDCACutY"]; ok {
		monitoring.Logf("config: minDCACutY (track selection) = %s", v)
		if cfg.Selector.MaxDCAY, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("minDCACutY: %w", err)
		}
	}
	if v, ok := params["useFT0"]; ok {
		monitoring.Logf("config: useFT0 = %s", v)
		cfg.UseFT0 = strings.EqualFold(v, "true")
	}

	srcList := defaultSourceList
	if v, ok := params["GID"]; ok {
		monitoring.Logf("config: GID (sources by user) = %s", v)
		srcList = v
	}
	requested, err := ParseSourceMask(srcList)
	if err != nil {
		return Config{}, fmt.Errorf("GID: %w", err)
	}
	cfg.Sources = requested & AllowedSources
	monitoring.Logf("config: final requested sources = %s", cfg.Sources)

	if err := cfg.Sources.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
