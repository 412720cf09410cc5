// Package simulation provides a multi-step test harness for validating
// emergent dynamics of the engine loop.
//
// Scenarios exercise the real Engine, kinetics and readout pipeline, no
// mocks. They are Go builders that register pre-configured
// neurotransmitter and receptor populations and run a configurable
// number of steps, capturing per-step snapshots for property-based
// assertions.
//
// Usage:
//
//	func TestTonicReversion(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:              "tonic-reversion",
//	        Neurotransmitters: []simulation.NTSpec{{ID: "DA", CTonic: 0.9}},
//	        Steps:             1000,
//	    })
//	    simulation.AssertConcentrationWithin(t, result, "DA", 0, 0.6, 500)
//	}
package simulation
