// Package simulation runs a bounded Game of Life until it becomes
// uninteresting and reports what happened.
//
// A Loop moves through three states. Seeding builds the first board
// (reseeding once if it came up empty), records generation 1, and opens the
// renderer, falling back to headless on failure. Running steps the board at
// a paced rate until the population dies out, the stability detector
// confirms a short cycle, the generation limit is reached, or the context
// is cancelled. Terminated clears the renderer and builds the Report.
//
// Usage:
//
//	loop, err := simulation.New(simulation.Options{
//	    Width:        128,
//	    Height:       56,
//	    Density:      0.25,
//	    Seed:         42,
//	    FPS:          12,
//	    Stability:    stability.DefaultConfig(),
//	    OpenRenderer: render.OpenerFor(constants.RenderAuto, os.Stdout),
//	})
//	if err != nil {
//	    return err
//	}
//	report, err := loop.Run(ctx)
package simulation
