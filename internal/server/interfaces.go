package server

// Server runs the plan server's transports until a stop signal arrives.
type Server interface {
	// RunServer blocks until SIGTERM, SIGINT or SIGQUIT, then shuts the
	// transports down and waits for the background workers.
	RunServer()

	// Shutdown stops the HTTP and gRPC listeners without waiting for a signal.
	Shutdown()
}
