// Package walker implements a single random walker on a square grid.
//
// The package owns the state-transition model and nothing else:
//
//   - [Grid]: square occupancy lattice, exactly one cell set while the walker lives
//   - [Boundary]: Periodic, Mirror or Absorbing edge behavior
//   - [Resolve]: pure boundary resolution for one move
//   - [Model]: grid, position and policy, advanced one tick at a time by [Model.Step]
//
// # Example
//
//	src := rand.New(rand.NewSource(42))
//	m, err := walker.New(100, 0.5, walker.Absorbing, src)
//	if err != nil {
//		return err
//	}
//	for i := 0; i < 1000; i++ {
//		if out := m.Step(); out.Kind == walker.Absorbed {
//			break
//		}
//	}
//
// # Randomness
//
// A Model draws every random number (placement, hop decision, direction)
// from the single [Source] it was built with. Two models built from
// identically seeded sources produce identical runs.
//
// # Thread Safety
//
// Model instances are NOT thread-safe. A model is meant to be owned by the
// loop that drives it.
package walker
