package dataset

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lox/statemod/internal/entity"
	"github.com/lox/statemod/internal/metrics"
	"github.com/lox/statemod/internal/ts"
	"github.com/lox/statemod/internal/tsfile"
)

// ReadOptions control how much of a dataset is loaded.
type ReadOptions struct {
	// ReadData false records file names on components without reading
	// file contents.
	ReadData bool
	// ReadTimeSeries false skips time series file contents even when
	// ReadData is true; station and rights files are still read.
	ReadTimeSeries bool
}

// readResponseProperties parses a free-format response file into an
// ordered property list. Legacy fixed-format response files have no
// key = value lines and are rejected.
func readResponseProperties(path string) ([]Property, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var props []Property
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			continue
		}
		props = append(props, Property{
			Key:   strings.TrimSpace(line[:eq]),
			Value: strings.TrimSpace(line[eq+1:]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("%s is not a free-format response file (no key = value lines); legacy fixed-format response files are not supported", path)
	}
	return props, nil
}

// ReadResponse reads a StateMod dataset described by a free-format
// response file. Each recognized property names the input file for one
// component; a failure reading one component is logged and flagged on
// the component without aborting the rest of the load.
func ReadResponse(path string, opts ReadOptions) (*DataSet, error) {
	start := time.Now()
	ds := New()
	ds.Dir = filepath.Dir(path)
	ds.BaseName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	props, err := readResponseProperties(path)
	if err != nil {
		return nil, err
	}
	propValue := func(key string) (string, bool) {
		for _, p := range props {
			if p.Key == key {
				return p.Value, true
			}
		}
		return "", false
	}

	if c := ds.Component(ComponentResponse); c != nil {
		c.FileName = filepath.Base(path)
		c.Dirty = false
	}

	// resolve records the component's file name and returns the path to
	// read, or "" when the file is absent, empty, or reading is off.
	resolve := func(key string, t ComponentType) (*Component, string) {
		c := ds.Component(t)
		v, ok := propValue(key)
		if !ok || c == nil {
			return c, ""
		}
		c.FileName = v
		if !opts.ReadData || strings.TrimSpace(v) == "" {
			return c, ""
		}
		p := v
		if !filepath.IsAbs(p) {
			p = filepath.Join(ds.Dir, p)
		}
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			return c, ""
		}
		return c, p
	}

	// process runs one component's reader with per-component error
	// isolation. Reading from disk is never an edit, so the dirty flag
	// is cleared regardless of outcome.
	process := func(key string, t ComponentType, read func(c *Component, path string) error) {
		c, p := resolve(key, t)
		if c == nil {
			return
		}
		defer func() { c.Dirty = false }()
		if p == "" || read == nil {
			return
		}
		if err := read(c, p); err != nil {
			log.Printf("Error reading %s file %q: %v", t.Name(), p, err)
			c.ErrorReading = true
			metrics.ComponentsRead.WithLabelValues("error").Inc()
			return
		}
		metrics.ComponentsRead.WithLabelValues("ok").Inc()
	}

	// readTS reads a time series component, tagging each series with
	// the component's canonical data type and units from the registry.
	readTS := func(c *Component, p string) error {
		list, err := tsfile.ReadFile(p, tsfile.ReadOptions{ReadData: opts.ReadData && opts.ReadTimeSeries})
		if err != nil {
			return err
		}
		dataType := c.Type.TSDataType()
		for i, t := range list {
			t.DataType = dataType
			if c.Type == ComponentReservoirTargetTSMonthly || c.Type == ComponentReservoirTargetTSDaily {
				// Target files alternate a minimum and a maximum series
				// per reservoir.
				if i%2 == 0 {
					t.DataType = dataType + "Min"
				} else {
					t.DataType = dataType + "Max"
				}
			}
		}
		c.Data = list
		return nil
	}

	fileOnly := func(key string, t ComponentType) { process(key, t, nil) }

	process("Control", ComponentControl, nil)

	process("River_Network", ComponentRiverNetwork, func(c *Component, p string) error {
		nodes, err := entity.ReadRiverNetwork(p)
		if err != nil {
			return err
		}
		c.Data = nodes
		return nil
	})

	fileOnly("Reservoir_Station", ComponentReservoirStations)

	process("Diversion_Station", ComponentDiversionStations, func(c *Component, p string) error {
		stations, err := entity.ReadDiversions(p)
		if err != nil {
			return err
		}
		c.Data = stations
		return nil
	})

	process("StreamGage_Station", ComponentStreamGageStations, func(c *Component, p string) error {
		gages, err := entity.ReadStreamGages(p)
		if err != nil {
			return err
		}
		c.Data = gages
		return nil
	})

	// A stream estimate station is a stream gage station without
	// historical data; the same station file serves both components.
	process("StreamEstimate_Station", ComponentStreamEstimateStations, func(c *Component, p string) error {
		log.Printf("Using StreamGage_Station data for StreamEstimate_Station (no separate station file)")
		if gage := ds.Component(ComponentStreamGageStations); gage != nil && gage.HasData() {
			c.Data = gage.Data
		}
		return nil
	})

	fileOnly("Instreamflow_Station", ComponentInstreamStations)
	fileOnly("Well_Station", ComponentWellStations)
	fileOnly("Plan_Data", ComponentPlans)
	fileOnly("Plan_Wells", ComponentPlanWellAugmentation)
	fileOnly("Plan_Return", ComponentPlanReturn)
	fileOnly("Instreamflow_Right", ComponentInstreamRights)
	fileOnly("Reservoir_Right", ComponentReservoirRights)

	process("Diversion_Right", ComponentDiversionRights, func(c *Component, p string) error {
		rights, err := entity.ReadDiversionRights(p)
		if err != nil {
			return err
		}
		c.Data = rights
		if sc := ds.Component(ComponentDiversionStations); sc != nil && sc.HasData() {
			log.Printf("Connecting diversion rights to diversion stations")
			if stations, ok := sc.Data.([]*entity.Diversion); ok {
				entity.ConnectAllRights(stations, rights)
			}
		}
		return nil
	})

	fileOnly("Operational_Right", ComponentOperationRights)
	fileOnly("Well_Right", ComponentWellRights)

	process("Precipitation_Monthly", ComponentPrecipitationTSMonthly, func(c *Component, p string) error {
		if err := readTS(c, p); err != nil {
			return err
		}
		ds.Control.Numpre = tsCount(c)
		return nil
	})
	fileOnly("Precipitation_Annual", ComponentPrecipitationTSYearly)

	process("Evaporation_Monthly", ComponentEvaporationTSMonthly, func(c *Component, p string) error {
		if err := readTS(c, p); err != nil {
			return err
		}
		ds.Control.Numeva = tsCount(c)
		return nil
	})
	fileOnly("Evaporation_Annual", ComponentEvaporationTSYearly)

	// The natural flow ("stream base") series are shared between the
	// stream estimate and stream gage components: both point at the
	// same read result, not a copy.
	process("Stream_Base_Monthly", ComponentStreamEstimateNaturalFlowTSMonthly, func(c *Component, p string) error {
		if err := readTS(c, p); err != nil {
			return err
		}
		if gage := ds.Component(ComponentStreamGageNaturalFlowTSMonthly); gage != nil {
			gage.FileName = c.FileName
			gage.Data = c.Data
			gage.Dirty = false
		}
		return nil
	})

	process("Diversion_Demand_Monthly", ComponentDemandTSMonthly, readTS)
	process("Diversion_DemandOverride_Monthly", ComponentDemandTSOverrideMonthly, readTS)
	process("Diversion_Demand_AverageMonthly", ComponentDemandTSAverageMonthly, readTS)
	process("Instreamflow_Demand_Monthly", ComponentInstreamDemandTSMonthly, readTS)
	process("Instreamflow_Demand_AverageMonthly", ComponentInstreamDemandTSAverageMonthly, readTS)
	process("Well_Demand_Monthly", ComponentWellDemandTSMonthly, readTS)
	fileOnly("DelayTable_Monthly", ComponentDelayTablesMonthly)
	process("Reservoir_Target_Monthly", ComponentReservoirTargetTSMonthly, readTS)
	fileOnly("Reservoir_Return", ComponentReservoirReturn)
	fileOnly("SanJuanRecovery", ComponentSanJuanRIP)
	process("RioGrande_Spill_Monthly", ComponentRioGrandeSpill, readTS)
	fileOnly("IrrigationPractice_Yearly", ComponentIrrigationPracticeTSYearly)
	process("ConsumptiveWaterRequirement_Monthly", ComponentCWRTSMonthly, readTS)

	if v, ok := propValue("SoilMoisture"); ok && strings.TrimSpace(v) != "" {
		log.Printf("StateCU soil moisture file %q - not supported - not reading", v)
	}
	fileOnly("StateCU_Structure", ComponentStateCUStructure)

	process("Reservoir_Historic_Monthly", ComponentReservoirContentTSMonthly, readTS)
	fileOnly("StreamEstimate_Coefficients", ComponentStreamEstimateCoefficients)
	process("StreamGage_Historic_Monthly", ComponentStreamGageHistoricalTSMonthly, readTS)
	process("Diversion_Historic_Monthly", ComponentDiversionTSMonthly, readTS)
	process("Well_Historic_Monthly", ComponentWellPumpingTSMonthly, readTS)
	fileOnly("GeographicInformation", ComponentGeoView)
	fileOnly("OutputRequest", ComponentOutputRequest)

	if v, ok := propValue("Reach_Data"); ok && strings.TrimSpace(v) != "" {
		if c := ds.Component(ComponentReachData); c != nil {
			c.FileName = v
			c.Dirty = false
		}
		log.Printf("Reach data file %q - not yet supported", v)
	}

	process("Stream_Base_Daily", ComponentStreamEstimateNaturalFlowTSDaily, func(c *Component, p string) error {
		if err := readTS(c, p); err != nil {
			return err
		}
		if gage := ds.Component(ComponentStreamGageNaturalFlowTSDaily); gage != nil {
			gage.FileName = c.FileName
			gage.Data = c.Data
			gage.Dirty = false
		}
		return nil
	})

	process("Diversion_Demand_Daily", ComponentDemandTSDaily, readTS)
	process("Instreamflow_Demand_Daily", ComponentInstreamDemandTSDaily, readTS)
	process("Well_Demand_Daily", ComponentWellDemandTSDaily, readTS)
	process("Reservoir_Target_Daily", ComponentReservoirTargetTSDaily, readTS)
	fileOnly("DelayTabe_Daily", ComponentDelayTablesDaily)
	process("ConsumptiveWaterRequirement_Daily", ComponentCWRTSDaily, readTS)
	process("StreamGage_Historic_Daily", ComponentStreamGageHistoricalTSDaily, readTS)
	process("Diversion_Historic_Daily", ComponentDiversionTSDaily, readTS)
	process("Well_Historic_Daily", ComponentWellPumpingTSDaily, readTS)
	process("Reservoir_Historic_Daily", ComponentReservoirContentTSDaily, readTS)
	process("Downstream_Call", ComponentDownstreamCallTSDaily, readTS)
	fileOnly("Network", ComponentNetwork)

	// Anything left over is preserved verbatim so a later write can
	// round-trip response files from newer model versions.
	for _, p := range props {
		if handledResponseKeys[p.Key] {
			continue
		}
		log.Printf("Unhandled response file property: %s = %s", p.Key, p.Value)
		ds.Unhandled = append(ds.Unhandled, p)
	}

	ds.CheckComponentVisibility()
	if c := ds.Component(ComponentControl); c != nil {
		c.Dirty = false
	}

	metrics.DatasetReadLatency.WithLabelValues(ds.BaseName).Observe(time.Since(start).Seconds())
	return ds, nil
}

// handledResponseKeys are the property names consumed by ReadResponse,
// including recognized-but-unsupported ones.
var handledResponseKeys = func() map[string]bool {
	m := map[string]bool{
		"Response":     true,
		"SoilMoisture": true,
		"Reach_Data":   true,
	}
	for c := ComponentType(0); c < componentCount; c++ {
		if k := componentTable[c].responseKey; k != "" {
			m[k] = true
		}
	}
	return m
}()

// tsCount returns the number of series stored on a time series
// component.
func tsCount(c *Component) int {
	if list, ok := c.Data.([]*ts.TimeSeries); ok {
		return len(list)
	}
	return 0
}
