// Package harness provides conformance testing for bfi programs.
//
// The harness loads scenario files, runs each program on a fresh machine
// with the scenario's input, and checks the output, the final tape and the
// error outcome against the scenario's expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	source: "++."             # or source_file: programs/hello.bf
//	input: "A"
//	max_steps: 1000           # optional, defaults to DefaultMaxSteps
//	strict: false             # reject a stray "]" instead of stopping there
//	expect:
//	  output: "\x02"
//	  cells: { 0: 2 }
//	  cursor: 0
//	  error: TAPE_BOUNDS      # omit when the run must succeed
//
// Files are decoded with unknown-field rejection and then checked against
// the #Scenario CUE definition in schema.cue, so a typo such as "ouput:" is
// a load error rather than a silently skipped expectation.
//
// # Expectations
//
//   - output: exact program output
//   - cells: map of tape index to expected byte value
//   - cursor: expected final cursor
//   - error: expected error code (UNMATCHED_OPEN, UNMATCHED_CLOSE,
//     TAPE_BOUNDS, IO_ERROR or STEPS_EXCEEDED); when absent, any error fails
//
// # Determinism
//
// Every scenario runs on a zeroed tape with an in-memory input and output
// and a step quota, so runs are reproducible and always terminate. Output can
// additionally be compared with a golden file, see RunWithGolden and
// CompareGolden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/hello.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
