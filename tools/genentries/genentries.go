// Command genentries generates the per-vector interrupt entry stubs used by
// the gate package.
//
// Every exception vector (0-31) and every remapped IRQ vector (32-47) needs a
// distinct entry point so the frame can be tagged with the vector that fired.
// The stubs only differ in the vector they push and in whether they push a
// placeholder error code, so they are generated instead of written by hand.
//
// With -decls the tool emits the matching Go file of bodyless declarations
// instead. The linker needs a Go declaration for every assembly TEXT symbol
// to build its argument stack map.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io/ioutil"
	"os"
	"text/template"
)

const (
	exceptionCount = 32
	irqCount       = 16
)

// errorCodeVectors lists the exceptions for which the CPU pushes an error
// code. All other stubs push a zero in its place.
var errorCodeVectors = map[int]bool{
	8:  true, // double fault
	10: true, // invalid TSS
	11: true, // segment not present
	12: true, // stack-segment fault
	13: true, // general protection fault
	14: true, // page fault
	17: true, // alignment check
	21: true, // control protection exception
	29: true, // VMM communication exception
	30: true, // security exception
}

type stub struct {
	Name         string
	Vector       int
	Common       string
	HasErrorCode bool
}

type common struct {
	Name     string
	Dispatch string
}

type archSpec struct {
	Arch    string
	Push    string
	PtrSize int
	Save    string
	Restore string
	Table   string
}

type templateData struct {
	archSpec
	Stubs   []stub
	Commons []common
}

var archs = map[string]archSpec{
	"amd64": {
		Arch:    "amd64",
		Push:    "PUSHQ",
		PtrSize: 8,
		Save:    amd64Save,
		Restore: amd64Restore,
		Table:   amd64Table,
	},
	"386": {
		Arch:    "386",
		Push:    "PUSHL",
		PtrSize: 4,
		Save:    i386Save,
		Restore: i386Restore,
		Table:   i386Table,
	},
}

// The amd64 save routine builds a Registers frame below the vector and error
// code pushed by the stub. The CPU-pushed RIP, CS, RFLAGS, RSP and SS sit
// right above the error code at 248(SP) once the frame is allocated.
const amd64Save = `	SUBQ $232, SP
	MOVQ AX, 0(SP)
	MOVQ BX, 8(SP)
	MOVQ CX, 16(SP)
	MOVQ DX, 24(SP)
	MOVQ SI, 32(SP)
	MOVQ DI, 40(SP)
	MOVQ 272(SP), AX
	MOVQ AX, 48(SP)
	MOVQ BP, 56(SP)
	MOVQ R8, 64(SP)
	MOVQ R9, 72(SP)
	MOVQ R10, 80(SP)
	MOVQ R11, 88(SP)
	MOVQ R12, 96(SP)
	MOVQ R13, 104(SP)
	MOVQ R14, 112(SP)
	MOVQ R15, 120(SP)
	MOVQ 248(SP), AX
	MOVQ AX, 128(SP)
	MOVQ 256(SP), AX
	MOVQ AX, 136(SP)
	// MOVL DS, AX
	BYTE $0x8C; BYTE $0xD8
	MOVQ AX, 144(SP)
	MOVQ 280(SP), AX
	MOVQ AX, 152(SP)
	// MOVL ES, AX
	BYTE $0x8C; BYTE $0xC0
	MOVQ AX, 160(SP)
	// MOVL FS, AX
	BYTE $0x8C; BYTE $0xE0
	MOVQ AX, 168(SP)
	// MOVL GS, AX
	BYTE $0x8C; BYTE $0xE8
	MOVQ AX, 176(SP)
	MOVQ 264(SP), AX
	MOVQ AX, 184(SP)
	// MOVQ CR0, AX
	BYTE $0x0F; BYTE $0x20; BYTE $0xC0
	MOVQ AX, 192(SP)
	// MOVQ CR2, AX
	BYTE $0x0F; BYTE $0x20; BYTE $0xD0
	MOVQ AX, 200(SP)
	// MOVQ CR3, AX
	BYTE $0x0F; BYTE $0x20; BYTE $0xD8
	MOVQ AX, 208(SP)
	// MOVQ CR4, AX
	BYTE $0x0F; BYTE $0x20; BYTE $0xE0
	MOVQ AX, 216(SP)
	// MOVQ CR8, AX
	BYTE $0x44; BYTE $0x0F; BYTE $0x20; BYTE $0xC0
	MOVQ AX, 224(SP)
	MOVQ SP, AX
	SUBQ $8, SP
	MOVQ AX, 0(SP)`

// Handlers may rewrite RIP and RFLAGS; both are copied back into the IRETQ
// frame before the general purpose registers are restored.
const amd64Restore = `	ADDQ $8, SP
	MOVQ 128(SP), AX
	MOVQ AX, 248(SP)
	MOVQ 184(SP), AX
	MOVQ AX, 264(SP)
	MOVQ 0(SP), AX
	MOVQ 8(SP), BX
	MOVQ 16(SP), CX
	MOVQ 24(SP), DX
	MOVQ 32(SP), SI
	MOVQ 40(SP), DI
	MOVQ 56(SP), BP
	MOVQ 64(SP), R8
	MOVQ 72(SP), R9
	MOVQ 80(SP), R10
	MOVQ 88(SP), R11
	MOVQ 96(SP), R12
	MOVQ 104(SP), R13
	MOVQ 112(SP), R14
	MOVQ 120(SP), R15
	ADDQ $248, SP
	IRETQ`

const amd64Table = `TEXT ·entryStubTable(SB),NOSPLIT,$0-8
	LEAQ ·entryStubs(SB), AX
	MOVQ AX, ret+0(FP)
	RET`

// The 386 save routine pushes the general purpose registers with PUSHAL and
// the data segment selector, then switches DS/ES to the kernel data segment.
// FS and GS are left untouched as the runtime uses GS for TLS.
const i386Save = `	PUSHAL
	XORL AX, AX
	// MOVL DS, AX
	BYTE $0x8C; BYTE $0xD8
	PUSHL AX
	MOVL $0x10, AX
	// MOVL AX, DS
	BYTE $0x8E; BYTE $0xD8
	// MOVL AX, ES
	BYTE $0x8E; BYTE $0xC0
	MOVL SP, AX
	PUSHL AX`

const i386Restore = `	ADDL $4, SP
	POPL AX
	// MOVL AX, DS
	BYTE $0x8E; BYTE $0xD8
	// MOVL AX, ES
	BYTE $0x8E; BYTE $0xC0
	POPAL
	ADDL $8, SP
	IRETL`

const i386Table = `TEXT ·entryStubTable(SB),NOSPLIT,$0-4
	LEAL ·entryStubs(SB), AX
	MOVL AX, ret+0(FP)
	RET`

var outputTemplate = template.Must(template.New("entries").Funcs(template.FuncMap{
	"mul": func(a, b int) int { return a * b },
}).Parse(`// Code generated by genentries -arch {{.Arch}}; DO NOT EDIT.

#include "textflag.h"
{{range .Stubs}}
TEXT ·{{.Name}}(SB),NOSPLIT,$0
{{- if not .HasErrorCode}}
	{{$.Push}} $0
{{- end}}
	{{$.Push}} ${{.Vector}}
	JMP ·{{.Common}}(SB)
{{end}}{{range .Commons}}
TEXT ·{{.Name}}(SB),NOSPLIT,$0
{{$.Save}}
	CALL ·{{.Dispatch}}(SB)
{{$.Restore}}
{{end}}{{range $i, $stub := .Stubs}}
DATA ·entryStubs+{{mul $i $.PtrSize}}(SB)/{{$.PtrSize}}, $·{{$stub.Name}}(SB)
{{- end}}
GLOBL ·entryStubs(SB), RODATA|NOPTR, ${{mul (len .Stubs) .PtrSize}}

{{.Table}}
`))

var declTemplate = template.Must(template.New("decls").Parse(`// Code generated by genentries -decls; DO NOT EDIT.

package gate

// The entry stubs are never called from Go. The IDT points at them and each
// one jumps to the save routine of its class.
{{range .Stubs}}
func {{.Name}}()
{{- end}}

// exceptionCommon saves the CPU state and calls dispatchException.
func exceptionCommon()

// irqCommon saves the CPU state and calls dispatchIRQ.
func irqCommon()
`))

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[genentries] error: %s\n", err.Error())
	os.Exit(1)
}

func buildTemplateData(spec archSpec) templateData {
	data := templateData{
		archSpec: spec,
		Commons: []common{
			{Name: "exceptionCommon", Dispatch: "dispatchException"},
			{Name: "irqCommon", Dispatch: "dispatchIRQ"},
		},
	}

	for vector := 0; vector < exceptionCount; vector++ {
		data.Stubs = append(data.Stubs, stub{
			Name:         fmt.Sprintf("exceptionEntry%d", vector),
			Vector:       vector,
			Common:       "exceptionCommon",
			HasErrorCode: errorCodeVectors[vector],
		})
	}

	for line := 0; line < irqCount; line++ {
		data.Stubs = append(data.Stubs, stub{
			Name:   fmt.Sprintf("irqEntry%d", line),
			Vector: exceptionCount + line,
			Common: "irqCommon",
		})
	}

	return data
}

func genEntries(arch string) ([]byte, error) {
	spec, ok := archs[arch]
	if !ok {
		return nil, fmt.Errorf("unsupported arch %q", arch)
	}

	var buf bytes.Buffer
	if err := outputTemplate.Execute(&buf, buildTemplateData(spec)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// genDecls returns the gofmt-ed Go declarations for the symbols defined by
// the generated assembly. The declarations are shared by all archs.
func genDecls() ([]byte, error) {
	var buf bytes.Buffer
	if err := declTemplate.Execute(&buf, buildTemplateData(archSpec{})); err != nil {
		return nil, err
	}

	return format.Source(buf.Bytes())
}

func runTool() error {
	arch := flag.String("arch", "amd64", "the target architecture (amd64 or 386)")
	decls := flag.Bool("decls", false, "emit the Go declarations of the entry symbols instead of assembly")
	out := flag.String("out", "", "the output file; if not specified the output is written to STDOUT")
	flag.Parse()

	var (
		src []byte
		err error
	)
	if *decls {
		src, err = genDecls()
	} else {
		src, err = genEntries(*arch)
	}
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}

	return ioutil.WriteFile(*out, src, 0644)
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
