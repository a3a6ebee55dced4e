// Package tundra is a terminal rendering engine: it turns a declarative
// description of what the screen should look like this frame into the
// minimal ordered set of terminal operations needed to make the physical
// terminal match, handling double-width glyphs and live resizes along the
// way.
//
// The engine is deliberately policy-free. Widgets draw styled glyphs into
// a Buffer through the Surface interface (usually via one or more Area
// adapters that offset and clip the coordinate space); the Renderer diffs
// the frame against the previous one and drives a Backend with the fewest
// calls that reconcile the two. Layout, widget composition, and input
// pattern matching all live above this package.
//
// A minimal program:
//
//	claim, err := tundra.ClaimDevice()
//	if err != nil {
//		log.Fatal(err)
//	}
//	backend, err := tundra.NewTermBackend(claim)
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := tundra.NewRenderer[string](backend)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//	for {
//		events, err := r.Draw(context.Background(), myWidget)
//		if err != nil {
//			log.Fatal(err)
//		}
//		// react to events produced by the widget
//	}
package tundra
