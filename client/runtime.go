package client

// Runtime turns a verified chunk payload into a usable unit. Implementations
// must expose only the bindings passed in globals to the executed code; the
// payload is third-party code even after verification and never gets ambient
// access to the host environment.
type Runtime interface {
	Instantiate(chunkID string, src string, globals map[string]any) (any, error)
}

// Unit is the instantiation produced by StaticRuntime: the verified source plus
// the bindings it is allowed to see. Hosts that execute chunks plug in their
// own Runtime (an embedded interpreter, a plugin loader) instead.
type Unit struct {
	ID      string
	Source  string
	Globals map[string]any
}

// StaticRuntime wraps the verified payload without executing it.
type StaticRuntime struct{}

// Instantiate returns a Unit carrying the source and allow-listed globals.
func (StaticRuntime) Instantiate(chunkID string, src string, globals map[string]any) (any, error) {
	return &Unit{ID: chunkID, Source: src, Globals: globals}, nil
}
