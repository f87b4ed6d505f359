package dataset

import "github.com/lox/statemod/internal/ts"

// componentRecord is one registry row: everything the dataset needs to
// know about a component. Group rows carry the group name in extension
// and name their primary component, the one that supplies the
// identifier list for displays and processing.
type componentRecord struct {
	name        string
	extension   string
	responseKey string
	group       ComponentType
	primary     ComponentType
	tsDataType  string
	tsInterval  ts.Interval
	tsUnits     string
}

// componentTable is the component registry, one record per component,
// indexed by ComponentType. The misspelled "DelayTabe_Daily" response
// key is what StateMod itself writes and reads, so it is kept as is.
var componentTable = [componentCount]componentRecord{
	ComponentControlGroup: {name: "Control Data", extension: "Control Group",
		group: ComponentControlGroup, primary: ComponentResponse},
	ComponentResponse: {name: "Response", extension: "rsp",
		responseKey: "Response", group: ComponentControlGroup},
	ComponentControl: {name: "Control", extension: "ctl",
		responseKey: "Control", group: ComponentControlGroup},
	ComponentOutputRequest: {name: "Output Request", extension: "out",
		responseKey: "OutputRequest", group: ComponentControlGroup},
	ComponentReachData: {name: "Reach Data", extension: "rch",
		responseKey: "Reach_Data", group: ComponentControlGroup},

	ComponentConsumptiveUseGroup: {name: "Consumptive Use Data", extension: "Consumptive Use Group",
		group: ComponentConsumptiveUseGroup, primary: ComponentStateCUStructure},
	ComponentStateCUStructure: {name: "StateCU Structure", extension: "str",
		responseKey: "StateCU_Structure", group: ComponentConsumptiveUseGroup},
	ComponentIrrigationPracticeTSYearly: {name: "Irrigation Practice TS (Yearly)", extension: "ipy",
		responseKey: "IrrigationPractice_Yearly", group: ComponentConsumptiveUseGroup,
		tsInterval: ts.IntervalYear},
	ComponentCWRTSMonthly: {name: "Consumptive Water Requirement TS (Monthly)", extension: "iwr",
		responseKey: "ConsumptiveWaterRequirement_Monthly", group: ComponentConsumptiveUseGroup,
		tsDataType: "CWR", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentCWRTSDaily: {name: "Consumptive Water Requirement TS (Daily)", extension: "iwd",
		responseKey: "ConsumptiveWaterRequirement_Daily", group: ComponentConsumptiveUseGroup,
		tsDataType: "CWR", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentStreamGageGroup: {name: "Stream Gage Data", extension: "Stream Gage Group",
		group: ComponentStreamGageGroup, primary: ComponentStreamGageStations},
	ComponentStreamGageStations: {name: "Stream Gage Stations", extension: "ris",
		responseKey: "StreamGage_Station", group: ComponentStreamGageGroup},
	ComponentStreamGageHistoricalTSMonthly: {name: "Stream Gage Historical TS (Monthly)", extension: "rih",
		responseKey: "StreamGage_Historic_Monthly", group: ComponentStreamGageGroup,
		tsDataType: "FlowHist", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentStreamGageHistoricalTSDaily: {name: "Stream Gage Historical TS (Daily)", extension: "riy",
		responseKey: "StreamGage_Historic_Daily", group: ComponentStreamGageGroup,
		tsDataType: "FlowHist", tsInterval: ts.IntervalDay, tsUnits: "CFS"},
	ComponentStreamGageNaturalFlowTSMonthly: {name: "Stream Gage Natural Flow TS (Monthly)", extension: "rim",
		responseKey: "Stream_Base_Monthly", group: ComponentStreamGageGroup,
		tsDataType: "FlowNatural", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentStreamGageNaturalFlowTSDaily: {name: "Stream Gage Natural Flow TS (Daily)", extension: "rid",
		responseKey: "Stream_Base_Daily", group: ComponentStreamGageGroup,
		tsDataType: "FlowNatural", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentDelayTableMonthlyGroup: {name: "Delay Table (Monthly) Data", extension: "Delay Tables (Monthly) Group",
		group: ComponentDelayTableMonthlyGroup, primary: ComponentDelayTablesMonthly},
	ComponentDelayTablesMonthly: {name: "Delay Tables (Monthly)", extension: "dly",
		responseKey: "DelayTable_Monthly", group: ComponentDelayTableMonthlyGroup},

	ComponentDelayTableDailyGroup: {name: "Delay Table (Daily) Data", extension: "Delay Tables (Daily) Group",
		group: ComponentDelayTableDailyGroup, primary: ComponentDelayTablesDaily},
	ComponentDelayTablesDaily: {name: "Delay Tables (Daily)", extension: "dld",
		responseKey: "DelayTabe_Daily", group: ComponentDelayTableDailyGroup},

	ComponentDiversionGroup: {name: "Diversion Data", extension: "Diversion Group",
		group: ComponentDiversionGroup, primary: ComponentDiversionStations},
	ComponentDiversionStations: {name: "Diversion Stations", extension: "dds",
		responseKey: "Diversion_Station", group: ComponentDiversionGroup},
	ComponentDiversionRights: {name: "Diversion Rights", extension: "ddr",
		responseKey: "Diversion_Right", group: ComponentDiversionGroup,
		tsDataType: "TotalWaterRights", tsUnits: "CFS"},
	ComponentDiversionTSMonthly: {name: "Diversion Historical TS (Monthly)", extension: "ddh",
		responseKey: "Diversion_Historic_Monthly", group: ComponentDiversionGroup,
		tsDataType: "DiversionHist", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentDiversionTSDaily: {name: "Diversion Historical TS (Daily)", extension: "ddy",
		responseKey: "Diversion_Historic_Daily", group: ComponentDiversionGroup,
		tsDataType: "DiversionHist", tsInterval: ts.IntervalDay, tsUnits: "CFS"},
	ComponentDemandTSMonthly: {name: "Diversion Demand TS (Monthly)", extension: "ddm",
		responseKey: "Diversion_Demand_Monthly", group: ComponentDiversionGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentDemandTSOverrideMonthly: {name: "Diversion Demand TS Override (Monthly)", extension: "ddo",
		responseKey: "Diversion_DemandOverride_Monthly", group: ComponentDiversionGroup,
		tsDataType: "DemandOverride", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentDemandTSAverageMonthly: {name: "Diversion Demand TS (Average Monthly)", extension: "dda",
		responseKey: "Diversion_Demand_AverageMonthly", group: ComponentDiversionGroup,
		tsDataType: "DemandAverage", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentDemandTSDaily: {name: "Diversion Demand TS (Daily)", extension: "ddd",
		responseKey: "Diversion_Demand_Daily", group: ComponentDiversionGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentPrecipitationGroup: {name: "Precipitation Data", extension: "Precipitation Group",
		group: ComponentPrecipitationGroup, primary: ComponentPrecipitationTSMonthly},
	ComponentPrecipitationTSMonthly: {name: "Precipitation Time Series (Monthly)", extension: "pre",
		responseKey: "Precipitation_Monthly", group: ComponentPrecipitationGroup,
		tsDataType: "Precipitation", tsInterval: ts.IntervalMonth, tsUnits: "IN"},
	ComponentPrecipitationTSYearly: {name: "Precipitation Time Series (Yearly)", extension: "pra",
		responseKey: "Precipitation_Annual", group: ComponentPrecipitationGroup,
		tsDataType: "Precipitation", tsInterval: ts.IntervalYear, tsUnits: "IN"},

	ComponentEvaporationGroup: {name: "Evaporation Data", extension: "Evaporation Group",
		group: ComponentEvaporationGroup, primary: ComponentEvaporationTSMonthly},
	ComponentEvaporationTSMonthly: {name: "Evaporation Time Series (Monthly)", extension: "evm",
		responseKey: "Evaporation_Monthly", group: ComponentEvaporationGroup,
		tsDataType: "Evaporation", tsInterval: ts.IntervalMonth, tsUnits: "IN"},
	ComponentEvaporationTSYearly: {name: "Evaporation Time Series (Yearly)", extension: "eva",
		responseKey: "Evaporation_Annual", group: ComponentEvaporationGroup,
		tsDataType: "Evaporation", tsInterval: ts.IntervalYear, tsUnits: "IN"},

	ComponentReservoirGroup: {name: "Reservoir Data", extension: "Reservoir Group",
		group: ComponentReservoirGroup, primary: ComponentReservoirStations},
	ComponentReservoirStations: {name: "Reservoir Stations", extension: "res",
		responseKey: "Reservoir_Station", group: ComponentReservoirGroup},
	ComponentReservoirRights: {name: "Reservoir Rights", extension: "rer",
		responseKey: "Reservoir_Right", group: ComponentReservoirGroup,
		tsDataType: "TotalWaterRights", tsUnits: "ACFT"},
	ComponentReservoirContentTSMonthly: {name: "Reservoir Content TS, End of Month (Monthly)", extension: "eom",
		responseKey: "Reservoir_Historic_Monthly", group: ComponentReservoirGroup,
		tsDataType: "ContentEOMHist", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentReservoirContentTSDaily: {name: "Reservoir Content TS, End of Day (Daily)", extension: "eoy",
		responseKey: "Reservoir_Historic_Daily", group: ComponentReservoirGroup,
		tsDataType: "ContentEODHist", tsInterval: ts.IntervalDay, tsUnits: "ACFT"},
	// Target files alternate Min and Max series; the reader appends the
	// sub-type when tagging.
	ComponentReservoirTargetTSMonthly: {name: "Reservoir Target TS (Monthly)", extension: "tar",
		responseKey: "Reservoir_Target_Monthly", group: ComponentReservoirGroup,
		tsDataType: "Target", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentReservoirTargetTSDaily: {name: "Reservoir Target TS (Daily)", extension: "tad",
		responseKey: "Reservoir_Target_Daily", group: ComponentReservoirGroup,
		tsDataType: "Target", tsInterval: ts.IntervalDay, tsUnits: "ACFT"},
	ComponentReservoirReturn: {name: "Reservoir Return Flows", extension: "rrf",
		responseKey: "Reservoir_Return", group: ComponentReservoirGroup},

	ComponentInstreamGroup: {name: "Instream Flow Data", extension: "Instream Group",
		group: ComponentInstreamGroup, primary: ComponentInstreamStations},
	ComponentInstreamStations: {name: "Instream Flow Stations", extension: "ifs",
		responseKey: "Instreamflow_Station", group: ComponentInstreamGroup},
	ComponentInstreamRights: {name: "Instream Flow Rights", extension: "ifr",
		responseKey: "Instreamflow_Right", group: ComponentInstreamGroup,
		tsDataType: "TotalWaterRights", tsUnits: "CFS"},
	ComponentInstreamDemandTSMonthly: {name: "Instream Flow Demand TS (Monthly)", extension: "ifm",
		responseKey: "Instreamflow_Demand_Monthly", group: ComponentInstreamGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalMonth, tsUnits: "CFS"},
	ComponentInstreamDemandTSAverageMonthly: {name: "Instream Flow Demand TS (Average Monthly)", extension: "ifa",
		responseKey: "Instreamflow_Demand_AverageMonthly", group: ComponentInstreamGroup,
		tsDataType: "DemandAverage", tsInterval: ts.IntervalMonth, tsUnits: "CFS"},
	ComponentInstreamDemandTSDaily: {name: "Instream Flow Demand TS (Daily)", extension: "ifd",
		responseKey: "Instreamflow_Demand_Daily", group: ComponentInstreamGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentWellGroup: {name: "Well Data", extension: "Well Group",
		group: ComponentWellGroup, primary: ComponentWellStations},
	ComponentWellStations: {name: "Well Stations", extension: "wes",
		responseKey: "Well_Station", group: ComponentWellGroup},
	ComponentWellRights: {name: "Well Rights", extension: "wer",
		responseKey: "Well_Right", group: ComponentWellGroup,
		tsDataType: "TotalWaterRights", tsUnits: "CFS"},
	ComponentWellPumpingTSMonthly: {name: "Well Historical Pumping TS (Monthly)", extension: "weh",
		responseKey: "Well_Historic_Monthly", group: ComponentWellGroup,
		tsDataType: "PumpingHist", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentWellPumpingTSDaily: {name: "Well Historical Pumping TS (Daily)", extension: "wey",
		responseKey: "Well_Historic_Daily", group: ComponentWellGroup,
		tsDataType: "PumpingHist", tsInterval: ts.IntervalDay, tsUnits: "CFS"},
	ComponentWellDemandTSMonthly: {name: "Well Demand TS (Monthly)", extension: "wem",
		responseKey: "Well_Demand_Monthly", group: ComponentWellGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentWellDemandTSDaily: {name: "Well Demand TS (Daily)", extension: "wed",
		responseKey: "Well_Demand_Daily", group: ComponentWellGroup,
		tsDataType: "Demand", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentPlanGroup: {name: "Plan Data", extension: "Plan Group",
		group: ComponentPlanGroup, primary: ComponentPlans},
	ComponentPlans: {name: "Plans", extension: "pln",
		responseKey: "Plan_Data", group: ComponentPlanGroup},
	ComponentPlanWellAugmentation: {name: "Plan Well Augmentation Data", extension: "plw",
		responseKey: "Plan_Wells", group: ComponentPlanGroup},
	ComponentPlanReturn: {name: "Plan Return Flows", extension: "prf",
		responseKey: "Plan_Return", group: ComponentPlanGroup},

	ComponentStreamEstimateGroup: {name: "Stream Estimate Data", extension: "StreamEstimate Group",
		group: ComponentStreamEstimateGroup, primary: ComponentStreamEstimateStations},
	ComponentStreamEstimateStations: {name: "Stream Estimate Stations", extension: "ses",
		responseKey: "StreamEstimate_Station", group: ComponentStreamEstimateGroup},
	ComponentStreamEstimateCoefficients: {name: "Stream Estimate Coefficients", extension: "rib",
		responseKey: "StreamEstimate_Coefficients", group: ComponentStreamEstimateGroup},
	ComponentStreamEstimateNaturalFlowTSMonthly: {name: "Stream Estimate Natural Flow TS (Monthly)", extension: "rim",
		responseKey: "Stream_Base_Monthly", group: ComponentStreamEstimateGroup,
		tsDataType: "FlowNatural", tsInterval: ts.IntervalMonth, tsUnits: "ACFT"},
	ComponentStreamEstimateNaturalFlowTSDaily: {name: "Stream Estimate Natural Flow TS (Daily)", extension: "rid",
		responseKey: "Stream_Base_Daily", group: ComponentStreamEstimateGroup,
		tsDataType: "FlowNatural", tsInterval: ts.IntervalDay, tsUnits: "CFS"},

	ComponentRiverNetworkGroup: {name: "River Network Data", extension: "River Network Group",
		group: ComponentRiverNetworkGroup, primary: ComponentRiverNetwork},
	ComponentRiverNetwork: {name: "River Network", extension: "rin",
		responseKey: "River_Network", group: ComponentRiverNetworkGroup},
	ComponentNetwork: {name: "Network (Graphical)", extension: "net",
		responseKey: "Network", group: ComponentRiverNetworkGroup},

	ComponentOperationGroup: {name: "Operational Data", extension: "Operation Group",
		group: ComponentOperationGroup, primary: ComponentOperationRights},
	ComponentOperationRights: {name: "Operational Rights", extension: "opr",
		responseKey: "Operational_Right", group: ComponentOperationGroup},
	ComponentDownstreamCallTSDaily: {name: "Downstream Call Time Series (Daily)", extension: "cal",
		responseKey: "Downstream_Call", group: ComponentOperationGroup,
		tsDataType: "Call", tsInterval: ts.IntervalDay, tsUnits: "DAY"},
	ComponentSanJuanRIP: {name: "San Juan Sediment Recovery Plan", extension: "sjr",
		responseKey: "SanJuanRecovery", group: ComponentOperationGroup,
		tsDataType: "SJRIP", tsInterval: ts.IntervalYear},
	ComponentRioGrandeSpill: {name: "Rio Grande Spill (Monthly)", extension: "rgs",
		responseKey: "RioGrande_Spill_Monthly", group: ComponentOperationGroup,
		tsDataType: "RioGrandeSpill", tsInterval: ts.IntervalMonth},

	ComponentGeoViewGroup: {name: "Spatial Data", extension: "GeoView Group",
		group: ComponentGeoViewGroup, primary: ComponentGeoView},
	ComponentGeoView: {name: "GeoView Project", extension: "gvp",
		responseKey: "GeographicInformation", group: ComponentGeoViewGroup},
}

// subcomponentNames label data managed inside a parent component.
var subcomponentNames = map[ComponentType]string{
	SubcomponentDiversionStationDelayTables:    "Diversion Station Delay Table Assignment",
	SubcomponentDiversionStationCollections:    "Diversion Station Collection Definitions",
	SubcomponentReservoirStationAccounts:       "Reservoir Station Accounts",
	SubcomponentReservoirStationPrecipStations: "Reservoir Station Precipitation Stations",
	SubcomponentReservoirStationEvapStations:   "Reservoir Station Evaporation Stations",
	SubcomponentReservoirStationCurve:          "Reservoir Station Content/Area/Seepage",
	SubcomponentReservoirStationCollections:    "Reservoir Station Collection Definitions",
	SubcomponentWellStationDelayTables:         "Well Station Delay Table Assignment",
	SubcomponentWellStationDepletionTables:     "Well Station Depletion Table Assignment",
	SubcomponentWellStationCollections:         "Well Station Collection Definitions",
}

// componentGroups lists the 16 group components in tree order.
var componentGroups = []ComponentType{
	ComponentControlGroup,
	ComponentConsumptiveUseGroup,
	ComponentStreamGageGroup,
	ComponentDelayTableMonthlyGroup,
	ComponentDelayTableDailyGroup,
	ComponentDiversionGroup,
	ComponentPrecipitationGroup,
	ComponentEvaporationGroup,
	ComponentReservoirGroup,
	ComponentInstreamGroup,
	ComponentWellGroup,
	ComponentPlanGroup,
	ComponentStreamEstimateGroup,
	ComponentRiverNetworkGroup,
	ComponentOperationGroup,
	ComponentGeoViewGroup,
}

func lookupComponent(c ComponentType) (componentRecord, bool) {
	if c >= 0 && c < componentCount {
		return componentTable[c], true
	}
	return componentRecord{}, false
}

// Name returns the display name of a component or subcomponent, or ""
// for unknown types.
func (c ComponentType) Name() string {
	if rec, ok := lookupComponent(c); ok {
		return rec.name
	}
	if name, ok := subcomponentNames[c]; ok {
		return name
	}
	return ""
}

// Extension returns the conventional file extension of the component,
// or the group name for group components.
func (c ComponentType) Extension() string {
	rec, _ := lookupComponent(c)
	return rec.extension
}

// ResponseKey returns the free-format response file property name of
// the component, or "" for groups and unknown types.
func (c ComponentType) ResponseKey() string {
	rec, _ := lookupComponent(c)
	return rec.responseKey
}

// Group returns the group component the component belongs to, or
// ComponentUnknown. Groups belong to themselves.
func (c ComponentType) Group() ComponentType {
	if rec, ok := lookupComponent(c); ok {
		return rec.group
	}
	return ComponentUnknown
}

// IsGroup reports whether the component is a group node.
func (c ComponentType) IsGroup() bool {
	rec, ok := lookupComponent(c)
	return ok && rec.group == c
}

// GroupPrimary returns the primary component of a group, or
// ComponentUnknown when the component is not a group.
func (c ComponentType) GroupPrimary() ComponentType {
	if rec, ok := lookupComponent(c); ok && rec.group == c {
		return rec.primary
	}
	return ComponentUnknown
}

// LookupComponentForResponseKey resolves a response file property name
// to its component. The shared "Stream_Base_*" keys resolve to the
// stream estimate components; the orchestrator handles sharing the
// result with the stream gage components.
func LookupComponentForResponseKey(key string) ComponentType {
	if key == "" {
		return ComponentUnknown
	}
	for c := componentCount - 1; c >= 0; c-- {
		if componentTable[c].responseKey == key {
			return c
		}
	}
	return ComponentUnknown
}

// TSDataType returns the canonical time series data type tag for the
// component, or "" for components that do not hold time series.
func (c ComponentType) TSDataType() string {
	rec, _ := lookupComponent(c)
	return rec.tsDataType
}

// TSInterval returns the data interval of the component's time series,
// or IntervalUnknown for non time series components.
func (c ComponentType) TSInterval() ts.Interval {
	rec, _ := lookupComponent(c)
	return rec.tsInterval
}

// TSUnits returns the conventional data units of the component's time
// series, or "" when not applicable.
func (c ComponentType) TSUnits() string {
	rec, _ := lookupComponent(c)
	return rec.tsUnits
}
