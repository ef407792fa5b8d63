package kfmt

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestFprintf(t *testing.T) {
	// Calling through a variable keeps vet from checking the deliberately
	// malformed formats below.
	fprintf := Fprintf

	specs := []struct {
		format string
		args   []interface{}
		exp    string
	}{
		{"no args", nil, "no args"},
		{"", nil, ""},
		{"100%%", nil, "100%"},

		{"%t", []interface{}{true}, "true"},
		{"%41t", []interface{}{false}, "false"},

		{"%s arg", []interface{}{"STRING"}, "STRING arg"},
		{"%s arg", []interface{}{[]byte("BYTE SLICE")}, "BYTE SLICE arg"},
		{"'%4s'", []interface{}{"ABC"}, "' ABC'"},
		{"'%4s'", []interface{}{[]byte("AB")}, "'  AB'"},
		{"'%4s'", []interface{}{"ABCDE"}, "'ABCDE'"},

		{"%d", []interface{}{uint8(10)}, "10"},
		{"%d", []interface{}{uint(0)}, "0"},
		{"%o", []interface{}{uint16(0777)}, "777"},
		{"0x%x", []interface{}{uint32(0xbadf00d)}, "0xbadf00d"},
		{"0x%x", []interface{}{uintptr(0xb8000)}, "0xb8000"},
		{"%x", []interface{}{uint64(math.MaxUint64)}, "ffffffffffffffff"},
		{"'%10d'", []interface{}{uint64(123)}, "'       123'"},
		{"'%4o'", []interface{}{uint64(0777)}, "'0777'"},
		{"'0x%10x'", []interface{}{uint64(0xbadf00d)}, "'0x000badf00d'"},
		{"'0x%5x'", []interface{}{int64(0xbadf00d)}, "'0xbadf00d'"},

		{"%d", []interface{}{int8(-10)}, "-10"},
		{"%o", []interface{}{int16(0777)}, "777"},
		{"%x", []interface{}{int32(-0xbadf00d)}, "-badf00d"},
		{"%d", []interface{}{int64(math.MinInt64)}, "-9223372036854775808"},
		{"'%10d'", []interface{}{int64(-12345678)}, "' -12345678'"},
		{"'%10d'", []interface{}{int64(-123456789)}, "'-123456789'"},
		{"'%10d'", []interface{}{int64(-1234567890)}, "'-1234567890'"},
		{"'%5x'", []interface{}{int(-0xbadf00d)}, "'-badf00d'"},
		{"'%8x'", []interface{}{int(-0xf00d)}, "'-0000f00d'"},
		{"'%128x'", []interface{}{int(-0xbadf00d)}, "'-" + strings.Repeat("0", maxBufSize-8) + "badf00d'"},
		{"'%128d'", []interface{}{7}, "'" + strings.Repeat(" ", maxBufSize-2) + "7'"},

		{"%%%s%d%t", []interface{}{"foo", 123, true}, "%foo123true"},
		{"vector %d (%s)", []interface{}{13, "general protection fault"}, "vector 13 (general protection fault)"},

		{"more args", []interface{}{"foo", "bar", "baz"}, "more args%!(EXTRA)%!(EXTRA)%!(EXTRA)"},
		{"missing args %s", nil, "missing args (MISSING)"},
		{"missing %d and %x", []interface{}{1}, "missing 1 and (MISSING)"},
		{"bad verb %Q", nil, "bad verb %!(NOVERB)"},
		{"bad verb %Q then text", nil, "bad verb %!(NOVERB) then text"},
		{"trailing %", nil, "trailing %!(NOVERB)"},
		{"trailing %12", nil, "trailing %!(NOVERB)"},
		{"not bool %t", []interface{}{"foo"}, "not bool %!(WRONGTYPE)"},
		{"not int %d", []interface{}{"foo"}, "not int %!(WRONGTYPE)"},
		{"not string %s", []interface{}{123}, "not string %!(WRONGTYPE)"},
	}

	var buf bytes.Buffer
	for specIndex, spec := range specs {
		buf.Reset()
		fprintf(&buf, spec.format, spec.args...)

		if got := buf.String(); got != spec.exp {
			t.Errorf("[spec %d] format %q: expected to get\n%q\ngot:\n%q", specIndex, spec.format, spec.exp, got)
		}
	}
}

func TestPrintfUsesActiveSink(t *testing.T) {
	defer func() {
		SetOutputSink(nil)
		earlyPrintBuffer = ringBuffer{}
	}()

	earlyPrintBuffer = ringBuffer{}
	SetOutputSink(nil)

	early := "[gate] installing exception gates\n"
	Printf(early)

	if got := GetOutputSink(); got != &earlyPrintBuffer {
		t.Fatal("expected GetOutputSink to return the early ring buffer while no sink is attached")
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if got := buf.String(); got != early {
		t.Fatalf("expected the early output to be replayed:\n%q\ngot:\n%q", early, got)
	}

	if earlyPrintBuffer.Len() != 0 {
		t.Fatalf("expected the early buffer to be drained; %d bytes left", earlyPrintBuffer.Len())
	}

	if got := GetOutputSink(); got != &buf {
		t.Fatal("expected GetOutputSink to return the attached sink")
	}

	buf.Reset()
	Printf("[gate] loaded %s\n", "IDT")
	if exp, got := "[gate] loaded IDT\n", buf.String(); got != exp {
		t.Fatalf("expected:\n%q\ngot:\n%q", exp, got)
	}
}

func TestSetOutputSinkReportsDroppedOutput(t *testing.T) {
	defer func() {
		SetOutputSink(nil)
		earlyPrintBuffer = ringBuffer{}
	}()

	earlyPrintBuffer = ringBuffer{}
	SetOutputSink(nil)

	Printf("%s", strings.Repeat("x", ringBufferSize+10))

	var buf bytes.Buffer
	SetOutputSink(&buf)

	exp := strings.Repeat("x", ringBufferSize) + "[ WARN ] [kfmt] dropped 10 bytes of early output\n"
	if got := buf.String(); got != exp {
		t.Fatalf("expected %d bytes of replayed output followed by a warning; got %d bytes:\n%q", len(exp), len(got), got)
	}

	if earlyPrintBuffer.dropped != 0 {
		t.Fatal("expected the dropped counter to be reset after it is reported")
	}
}
