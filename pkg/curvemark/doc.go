// Package curvemark provides an embeddable path curvature inspector.
//
// A Service reads paths from a [PathSource], flags every point whose
// curvature exceeds the configured threshold and publishes sphere and label
// markers for those points through one or more [MarkerPublisher]s. Every
// cycle first publishes a delete-all directive, so a renderer only ever
// shows the markers of the latest path.
//
// # Basic Usage
//
//	cfg := curvemark.DefaultConfig()
//	cfg.Marker.Threshold = 0.5
//
//	svc, err := curvemark.New(cfg,
//	    curvemark.WithSource(source),
//	    curvemark.WithPublisher(publisher),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := svc.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := svc.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # One-shot analysis
//
// [Evaluate] runs the analysis and marker composition for a single path
// without any transport.
//
// # Event Handling
//
// Implement [EventHandler] (embedding [BaseEventHandler] for no-op
// defaults) and pass it via [WithEventHandler]. Events are called
// synchronously from the ingest goroutine.
//
// # Lifecycle States
//
// A Service can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Service.Status]
// to query the current state.
package curvemark
