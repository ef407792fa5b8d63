package gate

import (
	"bytes"
	"panix/kernel/kfmt"
	"panix/kernel/pic"
	"strings"
	"testing"
)

// mockInstallEnv replaces the gate encoder, IDT loader and stub table with
// recorders that append to log and returns a function that restores them.
// The PIC collaborator is expected to be mocked separately.
func mockInstallEnv(log *eventLog) func() {
	origSetGate, origLoadIDT, origStubs, origPanic := setGateFn, loadIDTFn, entryStubsFn, kernelPanicFn

	var stubs [entryStubCount]uintptr
	for i := range stubs {
		stubs[i] = uintptr(0x1000 + i*0x10)
	}

	setGateFn = func(num InterruptNumber, addr uintptr) {
		if addr != stubs[num] {
			log.add("gate-bad-stub")
			return
		}
		log.add("gate")
	}
	loadIDTFn = func() { log.add("load-idt") }
	entryStubsFn = func() *[entryStubCount]uintptr { return &stubs }
	installed = false

	return func() {
		setGateFn, loadIDTFn, entryStubsFn, kernelPanicFn = origSetGate, origLoadIDT, origStubs, origPanic
		installed = false
	}
}

func TestInstall(t *testing.T) {
	var (
		log         eventLog
		panicFrames []Registers
		gatedSlots  []InterruptNumber
	)
	restore := mockDispatchEnv(&log, &panicFrames)
	restoreInstall := mockInstallEnv(&log)
	defer restore()
	defer restoreInstall()

	recordGate := setGateFn
	setGateFn = func(num InterruptNumber, addr uintptr) {
		gatedSlots = append(gatedSlots, num)
		recordGate(num, addr)
	}

	var buf bytes.Buffer
	kfmt.SetOutputSink(&buf)
	defer kfmt.SetOutputSink(nil)

	Install()

	var exp []string
	for i := 0; i < ExceptionCount; i++ {
		exp = append(exp, "gate")
	}
	for i := 0; i < 10; i++ {
		exp = append(exp, "pic-write")
	}
	for i := 0; i < IRQCount; i++ {
		exp = append(exp, "gate")
	}
	exp = append(exp, "load-idt")

	if !equalEvents(log.events, exp) {
		t.Fatalf("expected install events:\n%v\ngot:\n%v", exp, log.events)
	}

	for i, num := range gatedSlots {
		if InterruptNumber(i) != num {
			t.Fatalf("expected gate %d to be installed for vector %d; got vector %d", i, i, num)
		}
	}

	if !installed {
		t.Fatal("expected installed flag to be set")
	}

	for _, msg := range []string{
		"[ INFO ] [gate] installing exception gates\n",
		"[ INFO ] [gate] remapping PIC to vectors 0x20-0x2f\n",
		"[ INFO ] [gate] installing IRQ gates\n",
		"[  OK  ] [gate] loaded IDT\n",
	} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected install output to contain %q; got:\n%s", msg, buf.String())
		}
	}
}

func TestInstallRemapsPIC(t *testing.T) {
	var (
		log         eventLog
		panicFrames []Registers
		writes      [][2]uint16
	)
	restore := mockDispatchEnv(&log, &panicFrames)
	restoreInstall := mockInstallEnv(&log)
	defer restore()
	defer restoreInstall()

	picController = pic.New(func(port uint16, val uint8) {
		writes = append(writes, [2]uint16{port, uint16(val)})
	})

	Install()

	exp := [][2]uint16{
		{0x20, 0x11}, {0xA0, 0x11},
		{0x21, 0x20}, {0xA1, 0x28},
		{0x21, 0x04}, {0xA1, 0x02},
		{0x21, 0x01}, {0xA1, 0x01},
		{0x21, 0x00}, {0xA1, 0x00},
	}

	if len(writes) != len(exp) {
		t.Fatalf("expected %d PIC writes; got %d", len(exp), len(writes))
	}

	for i := range exp {
		if writes[i] != exp[i] {
			t.Errorf("[write %d] expected 0x%x -> port 0x%x; got 0x%x -> port 0x%x", i, exp[i][1], exp[i][0], writes[i][1], writes[i][0])
		}
	}
}

func TestInstallTwice(t *testing.T) {
	var (
		log         eventLog
		panicFrames []Registers
		panicErr    interface{}
	)
	restore := mockDispatchEnv(&log, &panicFrames)
	restoreInstall := mockInstallEnv(&log)
	defer restore()
	defer restoreInstall()

	kernelPanicFn = func(e interface{}) { panicErr = e }

	Install()
	log.events = nil
	Install()

	if panicErr != errGateAlreadyInstalled {
		t.Fatalf("expected second Install to panic with errGateAlreadyInstalled; got %v", panicErr)
	}

	if len(log.events) != 0 {
		t.Fatalf("expected second Install to leave the hardware untouched; got events %v", log.events)
	}
}
