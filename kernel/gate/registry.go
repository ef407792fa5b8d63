package gate

// Handler is invoked with the register snapshot of the interrupt being
// serviced. The snapshot lives on the interrupt stack and must not be
// retained once the handler returns.
type Handler func(*Registers)

// Registry maps each of the 256 interrupt slots to at most one Handler.
//
// Registry does not lock: handlers are expected to be registered while
// interrupts are still disabled during boot. Code that needs to rebind a
// vector after interrupts are enabled must wrap the call with
// DisableInterrupts/EnableInterrupts.
type Registry struct {
	handlers [256]Handler
}

// Register binds handler to num, replacing any previously registered
// handler. Passing a nil handler clears the slot.
func (r *Registry) Register(num InterruptNumber, handler Handler) {
	r.handlers[num] = handler
}

// Lookup returns the handler bound to num or nil if the slot is empty.
func (r *Registry) Lookup(num InterruptNumber) Handler {
	return r.handlers[num]
}

// handlers is the registry consulted by the IRQ dispatcher.
var handlers Registry

// HandleInterrupt ensures that the provided handler will be invoked when a
// particular interrupt number occurs. Registering a handler on a slot that
// already has one silently replaces it.
func HandleInterrupt(num InterruptNumber, handler Handler) {
	handlers.Register(num, handler)
}

// Lookup returns the handler currently registered for num or nil.
func Lookup(num InterruptNumber) Handler {
	return handlers.Lookup(num)
}
