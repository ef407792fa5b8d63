package hal

import (
	"bytes"
	"io"
	"panix/device"
	"panix/kernel"
	"panix/kernel/driver/video/console"
	"panix/kernel/gate"
	"panix/kernel/hal/multiboot"
	"panix/kernel/kfmt"
	"testing"
	"unsafe"
)

func TestTerminalGeometry(t *testing.T) {
	defer func() {
		getFramebufferInfoFn = multiboot.GetFramebufferInfo
	}()

	specs := []struct {
		fbInfo    *multiboot.FramebufferInfo
		expWidth  uint16
		expHeight uint16
		expAddr   uintptr
	}{
		{nil, 80, 25, 0xB8000},
		{&multiboot.FramebufferInfo{Type: multiboot.FramebufferTypeRGB, Width: 1024, Height: 768, PhysAddr: 0xFD000000}, 80, 25, 0xB8000},
		{&multiboot.FramebufferInfo{Type: multiboot.FramebufferTypeEGA, Width: 80, Height: 50, PhysAddr: 0xB8000}, 80, 50, 0xB8000},
	}

	for specIndex, spec := range specs {
		getFramebufferInfoFn = func() *multiboot.FramebufferInfo { return spec.fbInfo }

		w, h, addr := terminalGeometry()
		if w != spec.expWidth || h != spec.expHeight || addr != spec.expAddr {
			t.Errorf("[spec %d] expected geometry (%d, %d, 0x%x); got (%d, %d, 0x%x)", specIndex, spec.expWidth, spec.expHeight, spec.expAddr, w, h, addr)
		}
	}
}

func TestInitTerminal(t *testing.T) {
	defer func() {
		getFramebufferInfoFn = multiboot.GetFramebufferInfo
		kfmt.SetOutputSink(nil)
	}()

	fb := make([]uint16, 80*25)
	getFramebufferInfoFn = func() *multiboot.FramebufferInfo {
		return &multiboot.FramebufferInfo{
			Type:     multiboot.FramebufferTypeEGA,
			Width:    80,
			Height:   25,
			PhysAddr: uint64(uintptr(unsafe.Pointer(&fb[0]))),
		}
	}

	InitTerminal()
	ActiveTerminal.SetPosition(0, 0)
	kfmt.Printf("[hal] ok")

	if w, h := ActiveTerminal.Dimensions(); w != 80 || h != 25 {
		t.Fatalf("expected terminal dimensions to be 80x25; got %dx%d", w, h)
	}

	for i, exp := range []byte("[hal] ok") {
		if got := byte(fb[i] & 0xFF); got != exp {
			t.Fatalf("expected char %d on the console to be %q; got %q", i, exp, got)
		}
	}

	// Level tags are colored on the terminal.
	ActiveTerminal.SetPosition(0, 1)
	kfmt.Logf(kfmt.LevelOkay, "up")

	if exp, got := uint16(console.LightGreen)<<8|' ', fb[80+1]; got != exp {
		t.Fatalf("expected the tag to be drawn light green (0x%x); got 0x%x", exp, got)
	}

	if exp, got := uint16(console.LightGrey)<<8|'u', fb[80+len("[  OK  ] ")]; got != exp {
		t.Fatalf("expected the message to use the default color (0x%x); got 0x%x", exp, got)
	}
}

func TestBindIndicator(t *testing.T) {
	defer func() {
		cmdLineValueFn = multiboot.CmdLineValue
		setIndicatorFn = gate.SetIndicator
		egaConsole = &console.Ega{}
	}()

	fb := make([]uint16, 80*25)
	egaConsole = &console.Ega{}
	egaConsole.Init(80, 25, uintptr(unsafe.Pointer(&fb[0])))

	var bound func(gate.IndicatorState)
	cmdLineValueFn = func(string) (string, bool) { return "", false }
	setIndicatorFn = func(fn func(gate.IndicatorState)) { bound = fn }

	BindIndicator()

	if bound == nil {
		t.Fatal("expected BindIndicator to install an indicator callback")
	}

	if exp := uint16(0x2220); fb[79] != exp {
		t.Fatalf("expected indicator cell to be painted green (0x%x) after binding; got 0x%x", exp, fb[79])
	}

	specs := []struct {
		state gate.IndicatorState
		exp   uint16
	}{
		{gate.IndicatorAcknowledging, 0x4420},
		{gate.IndicatorDispatching, 0xEE20},
		{gate.IndicatorIdle, 0x2220},
	}

	for specIndex, spec := range specs {
		bound(spec.state)
		if fb[79] != spec.exp {
			t.Errorf("[spec %d] expected indicator cell to be 0x%x; got 0x%x", specIndex, spec.exp, fb[79])
		}
	}
}

func TestBindIndicatorDisabled(t *testing.T) {
	defer func() {
		cmdLineValueFn = multiboot.CmdLineValue
		setIndicatorFn = gate.SetIndicator
	}()

	cmdLineValueFn = func(key string) (string, bool) { return key, key == "noindicator" }
	setIndicatorFn = func(func(gate.IndicatorState)) {
		t.Fatal("unexpected call to SetIndicator")
	}

	BindIndicator()
}

type mockDriver struct {
	name    string
	initErr *kernel.Error
	inits   int
}

func (d *mockDriver) DriverName() string                      { return d.name }
func (d *mockDriver) DriverVersion() (uint16, uint16, uint16) { return 1, 2, 3 }
func (d *mockDriver) DriverInit(w io.Writer) *kernel.Error {
	d.inits++
	if d.initErr != nil {
		return d.initErr
	}

	kfmt.Fprintf(w, "probing\n")
	return nil
}

func TestProbe(t *testing.T) {
	defer kfmt.SetOutputSink(nil)

	var buf bytes.Buffer
	kfmt.SetOutputSink(&buf)
	buf.Reset()

	var (
		okDrv     = &mockDriver{name: "ok"}
		brokenDrv = &mockDriver{name: "broken", initErr: &kernel.Error{Module: "test", Message: "no such device"}}
	)

	probe(device.DriverInfoList{
		{Probe: func() device.Driver { return nil }},
		{Probe: func() device.Driver { return brokenDrv }},
		{Probe: func() device.Driver { return okDrv }},
	})

	if okDrv.inits != 1 || brokenDrv.inits != 1 {
		t.Fatalf("expected each detected driver to be initialized once; got ok=%d, broken=%d", okDrv.inits, brokenDrv.inits)
	}

	exp := "[ FAIL ] [hal] broken(1.2.3): init failed: no such device\n" +
		"[ INFO ] [hal] ok(1.2.3): probing\n" +
		"[  OK  ] [hal] ok(1.2.3): initialized\n"

	if got := buf.String(); got != exp {
		t.Fatalf("expected probe output:\n%q\ngot:\n%q", exp, got)
	}
}

func TestPrefixBuffer(t *testing.T) {
	var b prefixBuffer

	b.Write([]byte("[hal] "))
	b.Write([]byte("pit: "))
	if exp, got := "[hal] pit: ", string(b.Bytes()); got != exp {
		t.Fatalf("expected %q; got %q", exp, got)
	}

	b.Reset()
	n, err := b.Write(bytes.Repeat([]byte{'x'}, 100))
	if n != 100 || err != nil {
		t.Fatalf("expected Write to report (100, nil); got (%d, %v)", n, err)
	}

	if got := len(b.Bytes()); got != len(b.data) {
		t.Fatalf("expected buffer to be truncated at %d bytes; got %d", len(b.data), got)
	}
}
