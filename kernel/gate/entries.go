package gate

//go:generate go run ../../tools/genentries -arch amd64 -out entries_amd64.s
//go:generate go run ../../tools/genentries -arch 386 -out entries_386.s
//go:generate go run ../../tools/genentries -decls -out entries_decl.go

// entryStubCount is the number of vectors with a dedicated entry stub.
const entryStubCount = ExceptionCount + IRQCount

// entryStubTable returns the addresses of the generated entry stubs, indexed
// by vector. Each stub tags the frame with its own vector number before
// jumping to the shared exception or IRQ save routine, which builds a
// Registers snapshot and calls dispatchException or dispatchIRQ.
func entryStubTable() *[entryStubCount]uintptr
