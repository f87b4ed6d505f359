package dataset

import (
	"github.com/lox/statemod/internal/ts"
)

// ControlData holds the model run switches from the control (.ctl)
// file. Field names follow the StateMod documentation variable names,
// which is how modelers refer to them.
type ControlData struct {
	Heading1 string
	Heading2 string
	// Iystr and Iyend are the starting and ending years of the run.
	Iystr int
	Iyend int
	// Iresop is the output units switch (1=CFS, 2=ACFT, 3=KAF).
	Iresop int
	// Moneva is the monthly/average evaporation switch.
	Moneva int
	// Iopflo is the total/gains streamflow switch.
	Iopflo int
	// Numpre and Numeva are the numbers of precipitation and
	// evaporation stations.
	Numpre int
	Numeva int
	// Interv is the number of entries in the delay pattern (-1 for
	// variable, -100 for fractions).
	Interv int
	// Factor through Pfacto are unit conversion factors; 1.9835
	// converts CFS for one day to ACFT.
	Factor  float64
	Rfacto  float64
	Dfacto  float64
	Ffacto  float64
	Cfacto  float64
	Efacto  float64
	Pfacto  float64
	Cyrl    ts.YearType
	Icondem int
	Ichk    int
	Ireopx  int
	// Ireach is the instream flow approach switch; 2 and 3 enable
	// monthly instream demands.
	Ireach int
	Icall  int
	Ccall  string
	// Iday enables the daily analysis.
	Iday int
	// Iwell enables the well analysis.
	Iwell   int
	Gwmaxrc float64
	// Isjrip enables the San Juan sediment recovery plan.
	Isjrip int
	// Itsfile enables the irrigation practice (time series) analysis.
	Itsfile int
	// Ieffmax enables the variable efficiency analysis.
	Ieffmax int
	Isprink int
	// Soild enables soil moisture accounting when nonzero.
	Soild float64
	Isig  int
}

// NewControlData returns control data with StateMod's documented
// defaults.
func NewControlData() ControlData {
	return ControlData{
		Iystr:   ts.MissingInt,
		Iyend:   ts.MissingInt,
		Iresop:  2,
		Iopflo:  1,
		Interv:  -1,
		Factor:  1.9835,
		Rfacto:  1.9835,
		Dfacto:  1.9835,
		Ffacto:  1.9835,
		Cfacto:  1.0,
		Efacto:  1.0,
		Pfacto:  1.0,
		Cyrl:    ts.YearCalendar,
		Icondem: 1,
		Ireach:  1,
	}
}

// hasWellData reports whether the well analysis is active.
func (c *ControlData) hasWellData() bool {
	return !ts.IsMissingInt(c.Iwell) && c.Iwell != 0
}

// Property is one key = value pair from a response file.
type Property struct {
	Key   string
	Value string
}

// DataSet is a full StateMod dataset: the component tree, the control
// switches, and any response file properties that did not match a known
// component.
type DataSet struct {
	// BaseName is the response file name without extension.
	BaseName string
	// Dir is the dataset directory all component file names are
	// relative to.
	Dir string

	Control ControlData

	components map[ComponentType]*Component
	groups     []*Component

	// Unhandled response file properties, preserved in file order so a
	// later write can re-emit them verbatim.
	Unhandled []Property
}

// New builds an empty dataset with the full fixed component tree.
func New() *DataSet {
	ds := &DataSet{
		Control:    NewControlData(),
		components: make(map[ComponentType]*Component, componentCount),
	}
	for _, g := range componentGroups {
		group := newComponent(g)
		ds.components[g] = group
		ds.groups = append(ds.groups, group)
	}
	for c := ComponentType(0); c < componentCount; c++ {
		if c.IsGroup() {
			continue
		}
		leaf := newComponent(c)
		ds.components[c] = leaf
		group := ds.components[c.Group()]
		group.Children = append(group.Children, leaf)
	}
	return ds
}

// Component returns the node for a component type, or nil for unknown
// or subcomponent types.
func (ds *DataSet) Component(t ComponentType) *Component {
	return ds.components[t]
}

// Groups returns the group nodes in tree order.
func (ds *DataSet) Groups() []*Component {
	return ds.groups
}

func (ds *DataSet) setVisible(visible bool, types ...ComponentType) {
	for _, t := range types {
		if c := ds.components[t]; c != nil {
			c.Visible = visible
		}
	}
}

// CheckComponentVisibility recomputes component visibility from the
// control switches. Called after a dataset read and whenever a switch
// changes.
//
// A single running flag carries from check to check. The well and San
// Juan checks only ever clear it, so those components are visible only
// when the preceding check's switch is also on: wells require the
// daily analysis, and the San Juan plan requires an instream reach
// switch of 2 or 3.
func (ds *DataSet) CheckComponentVisibility() {
	daily := ds.Control.Iday != 0
	visible := daily
	ds.setVisible(visible,
		ComponentStreamGageNaturalFlowTSDaily,
		ComponentDemandTSDaily,
		ComponentInstreamDemandTSDaily,
		ComponentWellDemandTSDaily,
		ComponentReservoirTargetTSDaily,
		ComponentDelayTableDailyGroup,
		ComponentDelayTablesDaily,
		ComponentCWRTSDaily,
		ComponentStreamGageHistoricalTSDaily,
		ComponentDiversionTSDaily,
		ComponentWellPumpingTSDaily,
		ComponentReservoirContentTSDaily,
	)

	// The stream estimate natural flow series are always shadowed by
	// the shared stream gage series.
	ds.setVisible(false,
		ComponentStreamEstimateNaturalFlowTSMonthly,
		ComponentStreamEstimateNaturalFlowTSDaily,
	)

	// The well check never sets the flag, it only clears it, so the
	// daily result above carries through when well data are present.
	if !ds.Control.hasWellData() {
		visible = false
	}
	ds.setVisible(visible,
		ComponentWellGroup,
		ComponentWellStations,
		ComponentWellRights,
		ComponentWellDemandTSMonthly,
		ComponentWellPumpingTSMonthly,
	)
	if daily {
		ds.setVisible(visible,
			ComponentWellDemandTSDaily,
			ComponentWellPumpingTSDaily,
		)
	}

	visible = ds.Control.Ireach == 2 || ds.Control.Ireach == 3
	ds.setVisible(visible, ComponentInstreamDemandTSMonthly)

	// Likewise the San Juan check only clears, inheriting the instream
	// reach result.
	if ds.Control.Isjrip == 0 {
		visible = false
	}
	ds.setVisible(visible, ComponentSanJuanRIP)

	ds.setVisible(ds.Control.Itsfile != 0, ComponentIrrigationPracticeTSYearly)

	ds.setVisible(ds.Control.Ieffmax != 0, ComponentCWRTSMonthly)
	if daily {
		ds.setVisible(ds.Control.Ieffmax != 0, ComponentCWRTSDaily)
	}

	ds.setVisible(ds.Control.Soild != 0.0, ComponentStateCUStructure)

	ds.setVisible(true, ComponentNetwork)
}
