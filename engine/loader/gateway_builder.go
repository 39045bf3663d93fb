package loader

import "log/slog"

// GatewayBuilderOption is a functional option for configuring a Gateway via NewGateway.
type GatewayBuilderOption func(*gateway)

// WithLoader sets the Loader that performs the actual decode.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - GatewayBuilderOption: a function that applies the loader option to a gateway
func WithLoader(l Loader) GatewayBuilderOption {
	return func(g *gateway) {
		g.loader = l
	}
}

// WithExecutor sets where decode jobs run. InlineExecutor makes loads synchronous.
//
// Parameters:
//   - e: the executor
//
// Returns:
//   - GatewayBuilderOption: a function that applies the executor option to a gateway
func WithExecutor(e Executor) GatewayBuilderOption {
	return func(g *gateway) {
		g.executor = e
	}
}

// WithWorkers sizes the default worker-pool executor.
//
// Parameters:
//   - workers: maximum concurrent decode jobs
//   - queueSize: pending job capacity
//
// Returns:
//   - GatewayBuilderOption: a function that applies the pool option to a gateway
func WithWorkers(workers, queueSize int) GatewayBuilderOption {
	return func(g *gateway) {
		g.executor = NewPoolExecutor(workers, queueSize)
	}
}

// WithLogger sets the logger used for load failures.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - GatewayBuilderOption: a function that applies the logger option to a gateway
func WithLogger(logger *slog.Logger) GatewayBuilderOption {
	return func(g *gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}
