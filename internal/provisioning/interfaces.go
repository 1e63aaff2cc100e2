package provisioning

// Logger is the minimal printf-style logging surface phases may use for
// free-form progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Phase is one step of the provisioning workflow. Phases are run
// sequentially by RunPhases and communicate through Context.State.
type Phase interface {
	// Name identifies the phase in logs and events.
	Name() string

	// Provision brings the phase's resources to their desired state.
	// Implementations must be idempotent: re-running against already
	// provisioned infrastructure is a no-op.
	Provision(ctx *Context) error
}
