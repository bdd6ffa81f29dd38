// Package testutil provides shared test helpers for crosswatch.
//
// # Fixtures
//
//   - SampleGrid, SampleSolvedGrid: a 3x3 structure before and after solving
//   - SampleSteps: a short solve with a rejection and a backtrack
//   - SamplePNG: base64 of a real PNG, for result images
//
// # Fake service
//
// FakeServer is an httptest server that speaks the crossword service's
// endpoints. Each progress poll drains the next scripted batch of steps,
// like the real service, and the session completes once the script runs
// out:
//
//	srv := testutil.NewFakeServer(t, testutil.FakeScript{
//	    Batches: [][]progress.Step{testutil.SampleSteps()},
//	    Result:  testutil.SampleResult(t),
//	})
//	c := client.New(srv.URL())
package testutil
