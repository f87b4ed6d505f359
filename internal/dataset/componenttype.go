// Package dataset declares the StateMod dataset component registry and
// reads a full dataset from a response file. A dataset is a fixed
// two-level tree: 16 group components, each holding the leaf components
// that correspond to one input or output file role.
package dataset

// ComponentType identifies one dataset component. The numbering is part
// of the registry contract; the registry tables below are indexed by it.
type ComponentType int

const (
	ComponentUnknown ComponentType = -1
	// ComponentOtherNode marks river nodes that belong to no station
	// file, such as confluences.
	ComponentOtherNode ComponentType = -5
)

const (
	ComponentControlGroup ComponentType = iota
	ComponentResponse
	ComponentControl
	ComponentOutputRequest
	ComponentReachData

	ComponentConsumptiveUseGroup
	ComponentStateCUStructure
	ComponentIrrigationPracticeTSYearly
	ComponentCWRTSMonthly
	ComponentCWRTSDaily

	ComponentStreamGageGroup
	ComponentStreamGageStations
	ComponentStreamGageHistoricalTSMonthly
	ComponentStreamGageHistoricalTSDaily
	ComponentStreamGageNaturalFlowTSMonthly
	ComponentStreamGageNaturalFlowTSDaily

	ComponentDelayTableMonthlyGroup
	ComponentDelayTablesMonthly

	ComponentDelayTableDailyGroup
	ComponentDelayTablesDaily

	ComponentDiversionGroup
	ComponentDiversionStations
	ComponentDiversionRights
	ComponentDiversionTSMonthly
	ComponentDiversionTSDaily
	ComponentDemandTSMonthly
	ComponentDemandTSOverrideMonthly
	ComponentDemandTSAverageMonthly
	ComponentDemandTSDaily

	ComponentPrecipitationGroup
	ComponentPrecipitationTSMonthly
	ComponentPrecipitationTSYearly

	ComponentEvaporationGroup
	ComponentEvaporationTSMonthly
	ComponentEvaporationTSYearly

	ComponentReservoirGroup
	ComponentReservoirStations
	ComponentReservoirRights
	ComponentReservoirContentTSMonthly
	ComponentReservoirContentTSDaily
	ComponentReservoirTargetTSMonthly
	ComponentReservoirTargetTSDaily
	ComponentReservoirReturn

	ComponentInstreamGroup
	ComponentInstreamStations
	ComponentInstreamRights
	ComponentInstreamDemandTSMonthly
	ComponentInstreamDemandTSAverageMonthly
	ComponentInstreamDemandTSDaily

	ComponentWellGroup
	ComponentWellStations
	ComponentWellRights
	ComponentWellPumpingTSMonthly
	ComponentWellPumpingTSDaily
	ComponentWellDemandTSMonthly
	ComponentWellDemandTSDaily

	ComponentPlanGroup
	ComponentPlans
	ComponentPlanWellAugmentation
	ComponentPlanReturn

	ComponentStreamEstimateGroup
	ComponentStreamEstimateStations
	ComponentStreamEstimateCoefficients
	ComponentStreamEstimateNaturalFlowTSMonthly
	ComponentStreamEstimateNaturalFlowTSDaily

	ComponentRiverNetworkGroup
	ComponentRiverNetwork
	ComponentNetwork

	ComponentOperationGroup
	ComponentOperationRights
	ComponentDownstreamCallTSDaily
	ComponentSanJuanRIP
	ComponentRioGrandeSpill

	ComponentGeoViewGroup
	ComponentGeoView

	componentCount
)

// Subcomponents are labels for data managed inside a parent component,
// such as the account list of a reservoir station. They never appear in
// the component tree.
const (
	SubcomponentDiversionStationDelayTables ComponentType = 2101
	SubcomponentDiversionStationCollections ComponentType = 2102

	SubcomponentReservoirStationAccounts       ComponentType = 3601
	SubcomponentReservoirStationPrecipStations ComponentType = 3602
	SubcomponentReservoirStationEvapStations   ComponentType = 3603
	SubcomponentReservoirStationCurve          ComponentType = 3604
	SubcomponentReservoirStationCollections    ComponentType = 3605

	SubcomponentWellStationDelayTables     ComponentType = 5001
	SubcomponentWellStationDepletionTables ComponentType = 5002
	SubcomponentWellStationCollections     ComponentType = 5003
)
